package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nbh "porthodom/internal/neighborhood"
	"porthodom/internal/porthodom"
	"porthodom/internal/simgraph"
)

// Compile-time check: the concrete engine satisfies the minimal contract.
var _ Comparer = (*porthodom.Engine)(nil)

// fakeCmp scores pairs from a table keyed by "A|B"; missing keys are skipped.
type fakeCmp struct {
	scores map[string]float64
	err    error
}

func (f fakeCmp) Compare(a, b *nbh.Neighborhood) (porthodom.Result, bool, error) {
	if f.err != nil {
		return porthodom.Result{}, false, f.err
	}
	s, ok := f.scores[a.Accession+"|"+b.Accession]
	return porthodom.Result{Score: s}, ok, nil
}

func hoods(accs ...string) []*nbh.Neighborhood {
	out := make([]*nbh.Neighborhood, len(accs))
	for i, a := range accs {
		out[i] = nbh.New(a, "")
	}
	return out
}

func keys(cs []porthodom.Comparison) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.A.Accession + "|" + c.B.Accession
	}
	return out
}

func TestForEachComparison_OrderAndFilter(t *testing.T) {
	cmp := fakeCmp{scores: map[string]float64{
		"A|B": 0.5, "A|C": 0.49, "A|D": 0.9,
		"B|C": 1.0, "B|D": 0.5,
		// C|D skipped
	}}
	for _, threads := range []int{0, 1, 3, 16} {
		t.Run(fmt.Sprint(threads), func(t *testing.T) {
			got, st, err := Collect(context.Background(),
				Config{Threads: threads, NeighborhoodStringency: 0.5},
				hoods("A", "B", "C", "D"), cmp)
			require.NoError(t, err)
			assert.Equal(t, []string{"A|B", "A|D", "B|C", "B|D"}, keys(got))
			assert.Equal(t, Stats{Compared: 5, Skipped: 1, Filtered: 1, Emitted: 4}, st)
		})
	}
}

func TestForEachComparison_NoSelfComparison(t *testing.T) {
	seen := map[string]bool{}
	_, err := ForEachComparison(context.Background(), Config{}, hoods("A", "B", "C"),
		fakeCmp{scores: map[string]float64{"A|A": 1, "A|B": 1, "A|C": 1, "B|C": 1, "B|A": 1}},
		func(c porthodom.Comparison) error {
			seen[c.A.Accession+"|"+c.B.Accession] = true
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"A|B": true, "A|C": true, "B|C": true}, seen)
}

func TestForEachComparison_Errors(t *testing.T) {
	boom := errors.New("boom")
	_, err := ForEachComparison(context.Background(), Config{Threads: 2}, hoods("A", "B"),
		fakeCmp{err: boom}, func(porthodom.Comparison) error { return nil })
	assert.ErrorIs(t, err, boom)

	stop := errors.New("stop")
	st, err := ForEachComparison(context.Background(), Config{}, hoods("A", "B", "C"),
		fakeCmp{scores: map[string]float64{"A|B": 1, "A|C": 1, "B|C": 1}},
		func(porthodom.Comparison) error { return stop })
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 0, st.Emitted)
}

func TestForEachComparison_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n := 0
	_, err := ForEachComparison(ctx, Config{}, hoods("A", "B"),
		fakeCmp{scores: map[string]float64{"A|B": 1}},
		func(porthodom.Comparison) error { n++; return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, n)
}

func TestForEachComparison_EmptyAndSingle(t *testing.T) {
	for _, hs := range [][]*nbh.Neighborhood{nil, hoods("A")} {
		got, st, err := Collect(context.Background(), Config{}, hs, fakeCmp{})
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Equal(t, Stats{}, st)
	}
}

func TestForEachComparison_WithEngine(t *testing.T) {
	g := simgraph.New[string]()
	require.NoError(t, g.AddConnected("p1", "p3", 0.9))
	require.NoError(t, g.AddConnected("p2", "p4", 0.8))

	mk := func(acc string, pids ...string) *nbh.Neighborhood {
		n := nbh.New(acc, "")
		for i, p := range pids {
			require.NoError(t, n.AddProtein("L", p, fmt.Sprintf("%d..%d", i+1, i+2)))
		}
		return n
	}
	hs := []*nbh.Neighborhood{mk("A", "p1", "p2"), mk("B", "p3", "p4"), mk("C", "p9")}

	single := porthodom.New(porthodom.Config{Variant: porthodom.VariantSingle, ProteinStringency: 0.5}, g)
	got, st, err := Collect(context.Background(), Config{Threads: 2, NeighborhoodStringency: 0.85}, hs, single)
	require.NoError(t, err)
	require.Equal(t, []string{"A|B"}, keys(got), "score exactly at the stringency is kept")
	assert.InDelta(t, 0.85, got[0].Score, 1e-12)
	assert.Equal(t, 3, st.Compared)

	pair := porthodom.New(porthodom.Config{Variant: porthodom.VariantPair, ProteinStringency: 0.5}, g)
	got, st, err = Collect(context.Background(), Config{}, hs, pair)
	require.NoError(t, err)
	assert.Equal(t, []string{"A|B"}, keys(got))
	assert.Equal(t, 2, st.Skipped, "C has a single protein")
	assert.InDelta(t, 0.72, got[0].Score, 1e-12)
}
