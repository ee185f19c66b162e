// Package neighborhood models a genomic neighborhood: the ordered proteins
// flanking one or more seed genes in a single accession.
package neighborhood

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// CDS is a coding-sequence span as written in the input ("begin..end").
type CDS struct {
	Begin int
	End   int
}

// Protein is one gene product of a neighborhood.
type Protein struct {
	Locus string
	PID   string
	CDS   CDS
}

// CDSError reports a coding-sequence token that is not two dot-separated
// integers.
type CDSError struct {
	Token string
}

func (e *CDSError) Error() string { return fmt.Sprintf("malformed cds %q", e.Token) }

// IndexOutOfRangeError reports a protein lookup past the end of a neighborhood.
type IndexOutOfRangeError struct {
	Index, Len int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("protein index %d out of range [0,%d)", e.Index, e.Len)
}

// ParseCDS splits a token like "534..1345" into its two coordinates.
func ParseCDS(tok string) (CDS, error) {
	parts := strings.FieldsFunc(tok, func(r rune) bool { return r == '.' })
	if len(parts) != 2 {
		return CDS{}, &CDSError{Token: tok}
	}
	b, err := strconv.Atoi(parts[0])
	if err != nil {
		return CDS{}, &CDSError{Token: tok}
	}
	e, err := strconv.Atoi(parts[1])
	if err != nil {
		return CDS{}, &CDSError{Token: tok}
	}
	return CDS{Begin: b, End: e}, nil
}

// Neighborhood is built once by a parser and read-only afterwards.
type Neighborhood struct {
	Accession string
	Organism  string

	proteins []Protein
	seeds    []Protein
}

// New returns an empty neighborhood.
func New(accession, organism string) *Neighborhood {
	return &Neighborhood{Accession: accession, Organism: organism}
}

// AddProtein appends a protein in genomic order.
func (n *Neighborhood) AddProtein(locus, pid, cds string) error {
	p, err := newProtein(locus, pid, cds)
	if err != nil {
		return err
	}
	n.proteins = append(n.proteins, p)
	return nil
}

// AddSeed records an anchor protein. The caller adds it to the ordered
// sequence separately with AddProtein.
func (n *Neighborhood) AddSeed(locus, pid, cds string) error {
	p, err := newProtein(locus, pid, cds)
	if err != nil {
		return err
	}
	n.seeds = append(n.seeds, p)
	return nil
}

func newProtein(locus, pid, cds string) (Protein, error) {
	c, err := ParseCDS(cds)
	if err != nil {
		return Protein{}, err
	}
	return Protein{Locus: locus, PID: pid, CDS: c}, nil
}

// Len returns the number of proteins.
func (n *Neighborhood) Len() int { return len(n.proteins) }

// PID returns the identifier of the i-th protein.
func (n *Neighborhood) PID(i int) (string, error) {
	if i < 0 || i >= len(n.proteins) {
		return "", &IndexOutOfRangeError{Index: i, Len: len(n.proteins)}
	}
	return n.proteins[i].PID, nil
}

// FirstCDS is the begin coordinate of the first protein (0 when empty).
func (n *Neighborhood) FirstCDS() int {
	if len(n.proteins) == 0 {
		return 0
	}
	return n.proteins[0].CDS.Begin
}

// LastCDS is the end coordinate of the last protein (0 when empty).
func (n *Neighborhood) LastCDS() int {
	if len(n.proteins) == 0 {
		return 0
	}
	return n.proteins[len(n.proteins)-1].CDS.End
}

// All iterates proteins in insertion order.
func (n *Neighborhood) All() iter.Seq2[int, Protein] {
	return func(yield func(int, Protein) bool) {
		for i, p := range n.proteins {
			if !yield(i, p) {
				return
			}
		}
	}
}

// Proteins returns a copy of the ordered protein list.
func (n *Neighborhood) Proteins() []Protein { return append([]Protein(nil), n.proteins...) }

// Seeds returns a copy of the seed list.
func (n *Neighborhood) Seeds() []Protein { return append([]Protein(nil), n.seeds...) }

// UniqueProteins returns the distinct protein identifiers across hoods in
// first-seen order.
func UniqueProteins(hoods []*Neighborhood) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, h := range hoods {
		for _, p := range h.All() {
			if _, ok := seen[p.PID]; ok {
				continue
			}
			seen[p.PID] = struct{}{}
			out = append(out, p.PID)
		}
	}
	return out
}
