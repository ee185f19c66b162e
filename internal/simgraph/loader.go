package simgraph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"porthodom/internal/fileio"
)

// LoadStats summarizes one edge file.
type LoadStats struct {
	Edges    int // edge lines applied
	NewNodes int // endpoints that were not registered before the load
}

// LoadEdgesFile reads path (see LoadEdges) into g.
func LoadEdgesFile(path string, g *ProteinGraph) (LoadStats, error) {
	rc, err := fileio.Open(path)
	if err != nil {
		return LoadStats{}, err
	}
	defer rc.Close()
	return LoadEdges(rc, path, g)
}

// LoadEdges reads whitespace-separated lines of
// pidA pidB weight
// and connects the two proteins in g. Blank lines and lines starting with '#'
// are ignored. Endpoints missing from g are added and counted.
func LoadEdges(r io.Reader, name string, g *ProteinGraph) (LoadStats, error) {
	var st LoadStats
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if len(f) != 3 {
			return st, fmt.Errorf("%s:%d bad field count %d (want 3)", name, ln, len(f))
		}
		w, err := strconv.ParseFloat(f[2], 64)
		if err != nil {
			return st, fmt.Errorf("%s:%d bad weight %q: %w", name, ln, f[2], err)
		}
		for _, id := range f[:2] {
			if !g.Has(id) {
				g.AddNode(id)
				st.NewNodes++
			}
		}
		if err := g.AddEdge(f[0], f[1], w); err != nil {
			return st, fmt.Errorf("%s:%d %w", name, ln, err)
		}
		st.Edges++
	}
	if err := sc.Err(); err != nil {
		return st, err
	}
	return st, nil
}
