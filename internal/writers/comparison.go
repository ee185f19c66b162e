package writers

import (
	"encoding/json"
	"fmt"
	"io"

	"porthodom/internal/jsonlutil"
	"porthodom/internal/output"
	"porthodom/internal/porthodom"
)

// StartComparisonWriter spins up a writer goroutine for scored comparisons.
// Each comparison becomes one score record on scores (TSV row or JSONL object)
// and, when pairings is non-nil, one TSV detail block on pairings.
//
// The goroutine drains its input after a failure; the first error is delivered
// on the returned channel once the input is closed.
func StartComparisonWriter(scores, pairings io.Writer, format string, bufSize int) (chan<- porthodom.Comparison, <-chan error) {
	if format == output.FormatJSONL {
		return StartComparisonJSONLWriter(scores, pairings, bufSize)
	}
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan porthodom.Comparison, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var err error
		if format != output.FormatTSV {
			err = fmt.Errorf("unsupported output format %q", format)
		}
		for c := range in {
			if err != nil {
				continue
			}
			err = writeTSV(scores, pairings, c)
		}
		errCh <- err
	}()
	return in, errCh
}

func writeTSV(scores, pairings io.Writer, c porthodom.Comparison) error {
	if err := output.WriteScoreTSV(scores, c); err != nil {
		return err
	}
	if pairings == nil {
		return nil
	}
	return output.WritePairingsTSV(pairings, c)
}

// StartComparisonJSONLWriter streams each comparison as one JSON line (v1).
func StartComparisonJSONLWriter(scores, pairings io.Writer, bufSize int) (chan<- porthodom.Comparison, <-chan error) {
	return jsonlutil.Start[porthodom.Comparison](scores, bufSize,
		func(enc *json.Encoder, c porthodom.Comparison) error {
			v, err := output.ToAPIComparison(c)
			if err != nil {
				return err
			}
			if err := enc.Encode(v); err != nil {
				return err
			}
			if pairings == nil {
				return nil
			}
			return output.WritePairingsTSV(pairings, c)
		},
		IsBrokenPipe,
	)
}
