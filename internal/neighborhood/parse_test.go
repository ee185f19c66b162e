package neighborhood

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `ORGANISM	Escherichia coli K-12	accession no is	NC_000913
.	cds	x	x	pid	x	x	locus
.	100..400	+	x	WP_001	x	x	b0001
-->	450..900	+	x	WP_002	x	x	b0002
.	950..1200	-	x	WP_003	x	x	b0003

ORGANISM Bacillus subtilis accession no is NC_000964
.	10..20	+	x	WP_101	x	x	BSU1
`

func TestParse(t *testing.T) {
	hoods, err := Parse(strings.NewReader(sample), "sample.txt")
	require.NoError(t, err)
	require.Len(t, hoods, 2)

	a := hoods[0]
	assert.Equal(t, "NC_000913", a.Accession)
	assert.Equal(t, "Escherichia coli K-12", a.Organism)
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 100, a.FirstCDS())
	assert.Equal(t, 1200, a.LastCDS())
	pid, err := a.PID(1)
	require.NoError(t, err)
	assert.Equal(t, "WP_002", pid)
	require.Len(t, a.Seeds(), 1)
	assert.Equal(t, "b0002", a.Seeds()[0].Locus)

	b := hoods[1]
	assert.Equal(t, "NC_000964", b.Accession)
	assert.Equal(t, "Bacillus subtilis", b.Organism)
	assert.Equal(t, 1, b.Len())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		line int
		want error
	}{
		{"no accession", "ORGANISM x y\n", 1, ErrNoAccession},
		{"accession at end", "ORGANISM x accession no is\n", 1, ErrNoAccession},
		{"orphan protein", ".\t1..2\t+\tx\tWP\tx\tx\tL\n", 1, ErrNoOrganism},
		{"short protein", "ORGANISM x accession no is A\n.\t1..2\tx\n", 2, ErrShortProtein},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.in), "f.txt")
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, "f.txt", pe.File)
			assert.Equal(t, tc.line, pe.Line)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParse_MalformedCDSNamesTokenAndLine(t *testing.T) {
	in := "ORGANISM x accession no is A\n.\t1..2\t+\tx\tWP_1\tx\tx\tL1\n-->\t5-9\t+\tx\tWP_2\tx\tx\tL2\n"
	_, err := Parse(strings.NewReader(in), "bad.txt")
	require.Error(t, err)
	var ce *CDSError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "5-9", ce.Token)
	assert.Contains(t, err.Error(), "bad.txt:3")
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "a.txt")
	p2 := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(p1, []byte(sample), 0o644))
	require.NoError(t, os.WriteFile(p2, []byte("ORGANISM z accession no is NC_9\n.\t1..5\t+\tx\tWP_9\tx\tx\tZ1\n"), 0o644))

	hoods, err := LoadFiles([]string{p1, p2})
	require.NoError(t, err)
	require.Len(t, hoods, 3)
	assert.Equal(t, "NC_9", hoods[2].Accession)

	_, err = LoadFiles([]string{filepath.Join(dir, "missing.txt")})
	require.Error(t, err)
}
