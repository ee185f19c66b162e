package cmdutil

import (
	"context"

	nbh "porthodom/internal/neighborhood"
	"porthodom/internal/pipeline"
	"porthodom/internal/porthodom"
)

// RunStream runs the comparison pipeline and streams kept comparisons via send.
// It returns the pipeline stats and the first error encountered.
func RunStream(
	ctx context.Context,
	cfg pipeline.Config,
	hoods []*nbh.Neighborhood,
	cmp pipeline.Comparer,
	send func(porthodom.Comparison) error,
) (pipeline.Stats, error) {
	return pipeline.ForEachComparison(ctx, cfg, hoods, cmp, func(c porthodom.Comparison) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return send(c)
	})
}
