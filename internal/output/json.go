// internal/output/json.go
package output

import (
	nbh "porthodom/internal/neighborhood"
	"porthodom/internal/porthodom"
	"porthodom/pkg/api"
)

func toAPINeighborhood(n *nbh.Neighborhood) api.NeighborhoodV1 {
	return api.NeighborhoodV1{
		Accession: n.Accession,
		Organism:  n.Organism,
		FirstCDS:  n.FirstCDS(),
		LastCDS:   n.LastCDS(),
		Proteins:  n.Len(),
	}
}

// ToAPIComparison converts a domain Comparison to the stable wire schema (v1).
func ToAPIComparison(c porthodom.Comparison) (api.ComparisonV1, error) {
	ps, err := c.Pairings()
	if err != nil {
		return api.ComparisonV1{}, err
	}
	v := api.ComparisonV1{
		Method:     c.Variant.String(),
		A:          toAPINeighborhood(c.A),
		B:          toAPINeighborhood(c.B),
		Score:      c.Score,
		Normalizer: c.Normalizer,
	}
	for _, p := range ps {
		v.Pairings = append(v.Pairings, api.PairingV1{A: p.A, B: p.B, Similarity: p.Similarity})
	}
	return v, nil
}
