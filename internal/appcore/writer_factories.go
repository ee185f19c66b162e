package appcore

import (
	"io"

	"porthodom/internal/output"
	"porthodom/internal/porthodom"
	"porthodom/internal/writers"
)

// WriterFactory starts the goroutine that serializes kept comparisons.
type WriterFactory interface {
	// NeedPairings reports whether the writer will consume a pairings stream.
	NeedPairings() bool
	Start(scores, pairings io.Writer, bufSize int) (chan<- porthodom.Comparison, <-chan error)
}

// ComparisonWriterFactory selects the score format and whether pairings are
// written.
type ComparisonWriterFactory struct {
	Format   string
	Pairings bool
}

func NewComparisonWriterFactory(format string, pairings bool) ComparisonWriterFactory {
	if format == "" {
		format = output.FormatTSV
	}
	return ComparisonWriterFactory{Format: format, Pairings: pairings}
}

func (w ComparisonWriterFactory) NeedPairings() bool { return w.Pairings }

func (w ComparisonWriterFactory) Start(scores, pairings io.Writer, bufSize int) (chan<- porthodom.Comparison, <-chan error) {
	if !w.Pairings {
		pairings = nil
	}
	return writers.StartComparisonWriter(scores, pairings, w.Format, bufSize)
}
