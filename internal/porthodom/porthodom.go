package porthodom

import (
	"fmt"
	"math"

	"porthodom/internal/matching"
	nbh "porthodom/internal/neighborhood"
)

// Variant selects how neighborhoods are matched.
type Variant int

const (
	VariantSingle Variant = iota
	VariantPair
)

// Method names as accepted on the command line.
const (
	MethodSingle = "porthodom"
	MethodPair   = "porthodomO2"
)

// Integer scale factors applied to similarities before matching.
const (
	ScaleSingle = 100
	ScalePair   = 1_000_000
)

// ParseVariant maps a method name to its Variant.
func ParseVariant(method string) (Variant, error) {
	switch method {
	case MethodSingle:
		return VariantSingle, nil
	case MethodPair:
		return VariantPair, nil
	}
	return 0, fmt.Errorf("unknown clustering method %q (want %s or %s)", method, MethodSingle, MethodPair)
}

func (v Variant) String() string {
	if v == VariantPair {
		return MethodPair
	}
	return MethodSingle
}

// Scale is the factor dividing a matrix entry back to a similarity.
func (v Variant) Scale() float64 {
	if v == VariantPair {
		return ScalePair
	}
	return ScaleSingle
}

// Normalizer is the number of slots in the larger of two neighborhoods of p
// and q proteins.
func (v Variant) Normalizer(p, q int) int {
	n := max(p, q)
	if v == VariantPair {
		return n - 1
	}
	return n
}

// Comparable reports whether a and b can be scored. The pair variant needs at
// least one adjacent pair on each side.
func (v Variant) Comparable(a, b *nbh.Neighborhood) bool {
	if v == VariantPair {
		return a.Len() >= 2 && b.Len() >= 2
	}
	return true
}

// Similarity is the weight lookup the builder needs; unknown proteins weigh 0.
type Similarity interface {
	Weight(a, b string) float64
}

// BuildUtility returns the integer utility matrix of a against b.
func BuildUtility(v Variant, a, b *nbh.Neighborhood, sim Similarity, stringency float64) [][]int64 {
	pa, pb := a.Proteins(), b.Proteins()
	if v == VariantPair {
		return pairUtility(pa, pb, sim, stringency)
	}
	return singleUtility(pa, pb, sim, stringency)
}

func singleUtility(pa, pb []nbh.Protein, sim Similarity, stringency float64) [][]int64 {
	m := make([][]int64, len(pa))
	for i, x := range pa {
		m[i] = make([]int64, len(pb))
		for j, y := range pb {
			if w := sim.Weight(x.PID, y.PID); w >= stringency {
				m[i][j] = scaled(w, ScaleSingle)
			}
		}
	}
	return m
}

func pairUtility(pa, pb []nbh.Protein, sim Similarity, stringency float64) [][]int64 {
	if len(pa) < 2 || len(pb) < 2 {
		return nil
	}
	m := make([][]int64, len(pa)-1)
	for i := range m {
		m[i] = make([]int64, len(pb)-1)
		for j := range m[i] {
			w1 := sim.Weight(pa[i].PID, pb[j].PID)
			if w1 < stringency {
				continue
			}
			w2 := sim.Weight(pa[i+1].PID, pb[j+1].PID)
			if w2 < stringency {
				continue
			}
			m[i][j] = scaled(w1*w2, ScalePair)
		}
	}
	return m
}

func scaled(w, scale float64) int64 {
	if w <= 0 {
		return 0
	}
	return int64(math.Round(w * scale))
}

// Score sums the matched utilities, undoes scale and divides by normalizer.
// A non-positive normalizer scores 0.
func Score(a matching.Assignment, scale float64, normalizer int) float64 {
	if normalizer <= 0 {
		return 0
	}
	return float64(a.Total()) / scale / float64(normalizer)
}
