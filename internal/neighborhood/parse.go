package neighborhood

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"porthodom/internal/fileio"
)

// Line markers of the neighborhood file format.
const (
	markOrganism = "ORGANISM"
	markProtein  = "."
	markSeed     = "-->"
	markCDSHead  = "cds"
	keyAccession = "accession"
)

// Field positions (0-based) on protein and seed lines.
const (
	fieldCDS   = 1
	fieldPID   = 4
	fieldLocus = 7
)

var (
	ErrNoAccession  = errors.New("ORGANISM line without accession value")
	ErrNoOrganism   = errors.New("protein line before any ORGANISM line")
	ErrShortProtein = errors.New("protein line has too few fields")
)

// ParseError locates a failure in a neighborhood file.
type ParseError struct {
	File string
	Line int
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// LoadFile parses the neighborhood file at path ("-" for stdin, compressed by
// suffix).
func LoadFile(path string) ([]*Neighborhood, error) {
	rc, err := fileio.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Parse(rc, path)
}

// LoadFiles parses every path and concatenates the results in order.
func LoadFiles(paths []string) ([]*Neighborhood, error) {
	var all []*Neighborhood
	for _, p := range paths {
		hs, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		all = append(all, hs...)
	}
	return all, nil
}

// Parse reads neighborhoods from r. name is used in error messages only.
//
// An ORGANISM line starts a neighborhood; its accession is the token three
// positions after the literal "accession" and the organism name is the text in
// between ORGANISM and "accession". Lines starting with "." (unless the second
// token is "cds") are proteins, lines starting with "-->" are seeds, which are
// recorded both as proteins and as seeds. Other lines are ignored.
func Parse(r io.Reader, name string) ([]*Neighborhood, error) {
	var (
		hoods []*Neighborhood
		cur   *Neighborhood
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	ln := 0
	fail := func(err error) error { return &ParseError{File: name, Line: ln, Err: err} }

	for sc.Scan() {
		ln++
		f := strings.Fields(sc.Text())
		if len(f) == 0 {
			continue
		}
		switch {
		case f[0] == markOrganism:
			h, err := organismLine(f)
			if err != nil {
				return nil, fail(err)
			}
			hoods = append(hoods, h)
			cur = h

		case f[0] == markProtein && len(f) > 1 && f[1] == markCDSHead:
			// column header

		case f[0] == markProtein || f[0] == markSeed:
			if cur == nil {
				return nil, fail(ErrNoOrganism)
			}
			if len(f) <= fieldLocus {
				return nil, fail(fmt.Errorf("%w: got %d, want %d", ErrShortProtein, len(f), fieldLocus+1))
			}
			locus, pid, cds := f[fieldLocus], f[fieldPID], f[fieldCDS]
			if err := cur.AddProtein(locus, pid, cds); err != nil {
				return nil, fail(err)
			}
			if f[0] == markSeed {
				if err := cur.AddSeed(locus, pid, cds); err != nil {
					return nil, fail(err)
				}
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return hoods, nil
}

func organismLine(f []string) (*Neighborhood, error) {
	for i, tok := range f {
		if tok != keyAccession {
			continue
		}
		if i+3 >= len(f) {
			return nil, ErrNoAccession
		}
		return New(f[i+3], strings.Join(f[1:i], " ")), nil
	}
	return nil, ErrNoAccession
}
