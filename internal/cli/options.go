// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"porthodom/internal/cliutil"
	"porthodom/internal/fileio"
	"porthodom/internal/output"
	"porthodom/internal/porthodom"
	"porthodom/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	NeighborhoodFiles []string
	SimilarityFile    string

	// Scoring
	Method                 string
	ProteinStringency      float64
	NeighborhoodStringency float64

	// Graph clustering
	ComponentsFile     string
	ComponentThreshold float64 // defaults to ProteinStringency

	// Performance
	Threads int

	// Output
	Output   string
	Pairings string
	Format   string

	// Logging
	Quiet   bool
	Verbose bool

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: genomic neighborhood comparison (porthodom scoring)

Version: %s

Usage of %s: [flags] [neighborhood files...]
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
// Positional arguments (globs allowed) are neighborhood files appended after
// any given with --neighborhoods.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	var hoods stringSlice
	fs.Var(&hoods, "neighborhoods", "neighborhood file(s) (repeatable, '-' for stdin, .gz/.zst/.lz4 ok) [*]")
	fs.StringVar(&opt.SimilarityFile, "similarities", "", "protein similarity edges: pidA pidB weight [*]")

	fs.StringVar(&opt.Method, "method", porthodom.MethodSingle, "clustering method: "+porthodom.MethodSingle+" | "+porthodom.MethodPair+" ["+porthodom.MethodSingle+"]")
	fs.Float64Var(&opt.ProteinStringency, "protein-stringency", 0, "minimum protein similarity used in a matching [0]")
	fs.Float64Var(&opt.NeighborhoodStringency, "neighborhood-stringency", 0, "minimum neighborhood score reported (inclusive) [0]")

	fs.StringVar(&opt.ComponentsFile, "components", fileio.Disabled, "write similarity graph components to FILE ('&' = off) [&]")
	fs.Float64Var(&opt.ComponentThreshold, "component-threshold", 0, "edge weight joining components, must be > 0 with --components [--protein-stringency]")

	fs.IntVar(&opt.Threads, "threads", 0, "number of concurrent comparisons (0 = all CPUs) [0]")

	fs.StringVar(&opt.Output, "output", fileio.Stdio, "score file ('-' = stdout) [-]")
	fs.StringVar(&opt.Pairings, "pairings", fileio.Disabled, "pairings file ('&' = off) [&]")
	fs.StringVar(&opt.Format, "format", output.FormatTSV, "score format: tsv | jsonl [tsv]")

	fs.BoolVar(&opt.Quiet, "quiet", false, "only log warnings and errors [false]")
	fs.BoolVar(&opt.Verbose, "verbose", false, "log debug detail [false]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	posArgs = append(posArgs, fs.Args()...)
	files, err := cliutil.ExpandPositionals(posArgs)
	if err != nil {
		return opt, err
	}
	opt.NeighborhoodFiles = append([]string(hoods), files...)

	thresholdSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "component-threshold" {
			thresholdSet = true
		}
	})
	if !thresholdSet {
		opt.ComponentThreshold = opt.ProteinStringency
	}

	// Validation
	if len(opt.NeighborhoodFiles) == 0 {
		return opt, errors.New("at least one neighborhood file is required (--neighborhoods or positional)")
	}
	if opt.SimilarityFile == "" {
		return opt, errors.New("--similarities is required")
	}
	if _, err := porthodom.ParseVariant(opt.Method); err != nil {
		return opt, err
	}
	if opt.ProteinStringency < 0 {
		return opt, errors.New("--protein-stringency must be ≥ 0")
	}
	if opt.NeighborhoodStringency < 0 {
		return opt, errors.New("--neighborhood-stringency must be ≥ 0")
	}
	if opt.Threads < 0 {
		return opt, errors.New("--threads must be ≥ 0")
	}
	if opt.Format != output.FormatTSV && opt.Format != output.FormatJSONL {
		return opt, fmt.Errorf("invalid --format %q", opt.Format)
	}
	if opt.Output == fileio.Disabled {
		return opt, errors.New("--output cannot be disabled")
	}
	if opt.Quiet && opt.Verbose {
		return opt, errors.New("--quiet conflicts with --verbose")
	}
	stdins := 0
	for _, f := range append(opt.NeighborhoodFiles, opt.SimilarityFile) {
		if f == fileio.Stdio {
			stdins++
		}
	}
	if stdins > 1 {
		return opt, errors.New("only one input may be read from stdin")
	}
	stdouts := 0
	for _, f := range []string{opt.Output, opt.Pairings, opt.ComponentsFile} {
		if f == fileio.Stdio {
			stdouts++
		}
	}
	if stdouts > 1 {
		return opt, errors.New("only one of --output, --pairings and --components may write to stdout")
	}
	if opt.ComponentsFile != fileio.Disabled && opt.ComponentThreshold <= 0 {
		return opt, errors.New("--components needs --component-threshold (or --protein-stringency) > 0")
	}
	return opt, nil
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
