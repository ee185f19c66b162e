// internal/pipeline/pipeline.go
package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	nbh "porthodom/internal/neighborhood"
	"porthodom/internal/porthodom"
)

// Config controls the comparison pipeline.
type Config struct {
	Threads                int     // concurrent comparisons per row (>=1)
	NeighborhoodStringency float64 // minimum score kept (inclusive)
}

// Stats counts what happened to the N*(N-1)/2 candidate pairs.
type Stats struct {
	Compared int // pairs scored
	Skipped  int // pairs the comparer could not score
	Filtered int // scored pairs below the neighborhood stringency
	Emitted  int // pairs passed to visit
}

type slot struct {
	res porthodom.Result
	ok  bool
}

// ForEachComparison compares every pair (m, n) with m < n and calls visit for
// each pair scoring at least cfg.NeighborhoodStringency, in m then n order.
//
// The comparisons of one row m run concurrently on up to cfg.Threads
// goroutines; results are buffered per row and emitted in order, so the output
// does not depend on cfg.Threads. It returns the first error encountered
// (including context cancellation).
func ForEachComparison(
	ctx context.Context,
	cfg Config,
	hoods []*nbh.Neighborhood,
	cmp Comparer,
	visit func(porthodom.Comparison) error,
) (Stats, error) {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	var st Stats

	for m := 0; m < len(hoods); m++ {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		rest := hoods[m+1:]
		slots := make([]slot, len(rest))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Threads)
		for k := range rest {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				res, ok, err := cmp.Compare(hoods[m], rest[k])
				if err != nil {
					return err
				}
				slots[k] = slot{res: res, ok: ok}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return st, err
		}

		for k, s := range slots {
			if !s.ok {
				st.Skipped++
				continue
			}
			st.Compared++
			if s.res.Score < cfg.NeighborhoodStringency {
				st.Filtered++
				continue
			}
			if err := visit(porthodom.Comparison{A: hoods[m], B: rest[k], Result: s.res}); err != nil {
				return st, err
			}
			st.Emitted++
		}
	}
	return st, ctx.Err()
}

// Collect runs ForEachComparison and returns the kept comparisons in order.
func Collect(ctx context.Context, cfg Config, hoods []*nbh.Neighborhood, cmp Comparer) ([]porthodom.Comparison, Stats, error) {
	var out []porthodom.Comparison
	st, err := ForEachComparison(ctx, cfg, hoods, cmp, func(c porthodom.Comparison) error {
		out = append(out, c)
		return nil
	})
	return out, st, err
}
