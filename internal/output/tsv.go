// internal/output/tsv.go
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	nbh "porthodom/internal/neighborhood"
	"porthodom/internal/porthodom"
)

// Formats accepted for the score stream.
const (
	FormatTSV   = "tsv"
	FormatJSONL = "jsonl"
)

// FormatFloat prints x with 6 significant digits, trailing zeros trimmed.
func FormatFloat(x float64) string { return strconv.FormatFloat(x, 'g', 6, 64) }

func locator(a, b *nbh.Neighborhood) string {
	return fmt.Sprintf("%s\t%d\t%d\t%s\t%d\t%d",
		a.Accession, a.FirstCDS(), a.LastCDS(),
		b.Accession, b.FirstCDS(), b.LastCDS())
}

// WriteScoreTSV writes
// accA firstA lastA accB firstB lastB score
func WriteScoreTSV(w io.Writer, c porthodom.Comparison) error {
	_, err := fmt.Fprintf(w, "%s\t%s\n", locator(c.A, c.B), FormatFloat(c.Score))
	return err
}

// WritePairingsTSV writes a ">"-prefixed locator header followed by one line
// per matched slot: the pids of A, the pids of B, then the similarity.
func WritePairingsTSV(w io.Writer, c porthodom.Comparison) error {
	ps, err := c.Pairings()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, ">%s\n", locator(c.A, c.B)); err != nil {
		return err
	}
	for _, p := range ps {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n",
			strings.Join(p.A, "\t"), strings.Join(p.B, "\t"), FormatFloat(p.Similarity)); err != nil {
			return err
		}
	}
	return nil
}

// WriteComponents writes one "index<TAB>member" line per node.
func WriteComponents(w io.Writer, comps [][]string) error {
	for i, c := range comps {
		for _, id := range c {
			if _, err := fmt.Fprintf(w, "%d\t%s\n", i, id); err != nil {
				return err
			}
		}
	}
	return nil
}
