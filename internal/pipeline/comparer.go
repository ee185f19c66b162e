package pipeline

import (
	nbh "porthodom/internal/neighborhood"
	"porthodom/internal/porthodom"
)

// Comparer is the minimal capability the pipeline needs.
// Any engine (including fakes in tests) can satisfy this.
type Comparer interface {
	Compare(a, b *nbh.Neighborhood) (porthodom.Result, bool, error)
}
