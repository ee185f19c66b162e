// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"porthodom/internal/cmdutil"
	"porthodom/internal/fileio"
	nbh "porthodom/internal/neighborhood"
	"porthodom/internal/output"
	"porthodom/internal/pipeline"
	"porthodom/internal/porthodom"
	"porthodom/internal/simgraph"
	"porthodom/internal/writers"
)

// Exit codes shared by every command.
const (
	ExitOK       = 0
	ExitInput    = 2
	ExitOutput   = 3
	ExitCanceled = 130
)

type Options struct {
	NeighborhoodFiles []string
	SimilarityFile    string

	Method                 string
	ProteinStringency      float64
	NeighborhoodStringency float64

	ComponentsFile     string
	ComponentThreshold float64

	Threads int

	Output   string
	Pairings string
}

// Inputs are the loaded, read-only data of one run.
type Inputs struct {
	Hoods []*nbh.Neighborhood
	Graph *simgraph.ProteinGraph
}

// Load parses the neighborhood files and builds the similarity graph. Every
// neighborhood protein is registered before the edges are read.
func Load(ctx context.Context, o Options, log *cmdutil.Logger) (Inputs, error) {
	hoods, err := nbh.LoadFiles(o.NeighborhoodFiles)
	if err != nil {
		return Inputs{}, err
	}
	for _, f := range o.NeighborhoodFiles {
		log.DebugContext(ctx, "neighborhood file", "path", f)
	}
	log.LogLoad(ctx, "neighborhoods", fmt.Sprint(o.NeighborhoodFiles), len(hoods))

	pids := nbh.UniqueProteins(hoods)
	g := simgraph.NewWithCapacity[string](len(pids))
	for _, id := range pids {
		g.AddNode(id)
	}
	st, err := simgraph.LoadEdgesFile(o.SimilarityFile, g)
	if err != nil {
		return Inputs{}, err
	}
	log.LogLoad(ctx, "similarities", o.SimilarityFile, st.Edges)
	if st.NewNodes > 0 {
		log.Warnf("%d proteins in %s do not occur in any neighborhood", st.NewNodes, o.SimilarityFile)
	}
	return Inputs{Hoods: hoods, Graph: g}, nil
}

// Run loads the inputs, compares all neighborhood pairs and writes the
// requested outputs. It returns the process exit code.
func Run(parent context.Context, stdout io.Writer, o Options, wf WriterFactory, log *cmdutil.Logger) int {
	variant, err := porthodom.ParseVariant(o.Method)
	if err != nil {
		log.Error(err.Error())
		return ExitInput
	}

	in, err := Load(parent, o, log)
	if err != nil {
		log.Error("cannot load input", "error", err)
		return ExitInput
	}

	if o.ComponentsFile != "" && o.ComponentsFile != fileio.Disabled {
		if err := writeComponents(o.ComponentsFile, stdout, in.Graph, o.ComponentThreshold); err != nil {
			if writers.IsBrokenPipe(err) {
				return ExitOK
			}
			log.Error("cannot write components", "path", o.ComponentsFile, "error", err)
			return ExitOutput
		}
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	sinks := &stopOnError{cancel: cancel}

	scores, err := fileio.Create(o.Output, stdout)
	if err != nil {
		log.Error("cannot open output", "path", o.Output, "error", err)
		return ExitOutput
	}
	scoresW := bufio.NewWriter(sinks.wrap(scores))

	var (
		pairings  io.WriteCloser
		pairingsW *bufio.Writer
	)
	if wf.NeedPairings() {
		pairings, err = fileio.Create(o.Pairings, stdout)
		if err != nil {
			_ = scores.Close()
			log.Error("cannot open pairings output", "path", o.Pairings, "error", err)
			return ExitOutput
		}
		pairingsW = bufio.NewWriter(sinks.wrap(pairings))
	}

	thr := o.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	eng := porthodom.New(porthodom.Config{Variant: variant, ProteinStringency: o.ProteinStringency}, in.Graph)

	var pw io.Writer
	if pairingsW != nil {
		pw = pairingsW
	}
	inCh, writeErr := wf.Start(scoresW, pw, thr*4)

	st, perr := cmdutil.RunStream(ctx,
		pipeline.Config{Threads: thr, NeighborhoodStringency: o.NeighborhoodStringency},
		in.Hoods,
		eng,
		func(c porthodom.Comparison) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case inCh <- c:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)
	close(inCh)
	log.LogRun(ctx, variant.String(), st, perr)

	werr := <-writeErr
	werr = errors.Join(werr, flushClose(scoresW, scores))
	if pairingsW != nil {
		werr = errors.Join(werr, flushClose(pairingsW, pairings))
	}
	if werr == nil {
		// the JSONL writer drops broken pipes; the sink still saw them
		werr = sinks.Err()
	}

	if writers.IsBrokenPipe(werr) {
		return ExitOK
	} else if werr != nil {
		log.Error("write failed", "error", werr)
		return ExitOutput
	}
	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return ExitCanceled
		}
		log.Error("comparison failed", "error", perr)
		return ExitOutput
	}
	return ExitOK
}

// stopOnError cancels the run on the first failed write to any output, so
// no more pairs are scored once results can no longer be delivered.
type stopOnError struct {
	cancel context.CancelFunc

	mu  sync.Mutex
	err error
}

func (s *stopOnError) wrap(w io.Writer) io.Writer { return sinkWriter{w: w, s: s} }

func (s *stopOnError) fail(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
	s.cancel()
}

// Err returns the first write error seen.
func (s *stopOnError) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

type sinkWriter struct {
	w io.Writer
	s *stopOnError
}

func (w sinkWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	if err != nil {
		w.s.fail(err)
	}
	return n, err
}

func flushClose(w *bufio.Writer, c io.Closer) error {
	return errors.Join(w.Flush(), c.Close())
}

func writeComponents(path string, stdout io.Writer, g *simgraph.ProteinGraph, threshold float64) error {
	wc, err := fileio.Create(path, stdout)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(wc)
	werr := output.WriteComponents(bw, g.ConnectedComponents(threshold))
	return errors.Join(werr, flushClose(bw, wc))
}
