// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"porthodom/internal/appcore"
	"porthodom/internal/cli"
	"porthodom/internal/cmdutil"
	"porthodom/internal/fileio"
	"porthodom/internal/version"
	"porthodom/internal/writers"
)

// usage prints help text to stdout and maps the flush outcome to an exit code.
func usage(fs *flag.FlagSet, stdout, stderr io.Writer, code int) int {
	outw := bufio.NewWriter(stdout)
	fs.SetOutput(outw)
	fs.Usage()
	if err := outw.Flush(); writers.IsBrokenPipe(err) {
		return appcore.ExitOK
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return appcore.ExitOutput
	}
	return code
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet("porthodom")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		return usage(fs, stdout, stderr, appcore.ExitOK)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return usage(fs, stdout, stderr, appcore.ExitOK)
		}
		_, _ = fmt.Fprintln(stderr, err)
		return usage(fs, stdout, stderr, appcore.ExitInput)
	}

	if opts.Version {
		outw := bufio.NewWriter(stdout)
		_, _ = fmt.Fprintf(outw, "porthodom version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return appcore.ExitOK
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return appcore.ExitOutput
		}
		return appcore.ExitOK
	}

	log := cmdutil.NewLogger(stderr, opts.Quiet, opts.Verbose)
	coreOpts := appcore.Options{
		NeighborhoodFiles:      opts.NeighborhoodFiles,
		SimilarityFile:         opts.SimilarityFile,
		Method:                 opts.Method,
		ProteinStringency:      opts.ProteinStringency,
		NeighborhoodStringency: opts.NeighborhoodStringency,
		ComponentsFile:         opts.ComponentsFile,
		ComponentThreshold:     opts.ComponentThreshold,
		Threads:                opts.Threads,
		Output:                 opts.Output,
		Pairings:               opts.Pairings,
	}
	wf := appcore.NewComparisonWriterFactory(opts.Format, opts.Pairings != fileio.Disabled)
	return appcore.Run(parent, stdout, coreOpts, wf, log)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
