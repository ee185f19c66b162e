package porthodom

import (
	"porthodom/internal/matching"
	nbh "porthodom/internal/neighborhood"
)

// Config is fixed for the lifetime of an Engine.
type Config struct {
	Variant           Variant
	ProteinStringency float64
}

// Engine compares neighborhoods against one similarity source. It holds no
// mutable state and is safe for concurrent use when sim is.
type Engine struct {
	cfg Config
	sim Similarity
}

func New(cfg Config, sim Similarity) *Engine { return &Engine{cfg: cfg, sim: sim} }

// Variant returns the configured variant.
func (e *Engine) Variant() Variant { return e.cfg.Variant }

// Result is the outcome of one comparison.
type Result struct {
	Variant    Variant
	Assignment matching.Assignment // scaled utilities
	Normalizer int
	Score      float64
}

// Compare scores a against b. ok is false when the pair cannot be compared
// under the configured variant.
func (e *Engine) Compare(a, b *nbh.Neighborhood) (res Result, ok bool, err error) {
	v := e.cfg.Variant
	if !v.Comparable(a, b) {
		return Result{}, false, nil
	}
	util := BuildUtility(v, a, b, e.sim, e.cfg.ProteinStringency)
	asg, err := matching.Solve(util, matching.Maximize)
	if err != nil {
		return Result{}, false, err
	}
	norm := v.Normalizer(a.Len(), b.Len())
	return Result{
		Variant:    v,
		Assignment: asg,
		Normalizer: norm,
		Score:      Score(asg, v.Scale(), norm),
	}, true, nil
}

// Comparison is a scored neighborhood pair.
type Comparison struct {
	A, B *nbh.Neighborhood
	Result
}

// Pairing is one matched slot with its similarity. A and B hold one protein
// each for the single variant and an adjacent pair each for the pair variant.
type Pairing struct {
	A, B       []string
	Similarity float64
}

// Pairings resolves the assignment to protein identifiers.
func (c Comparison) Pairings() ([]Pairing, error) {
	width := 1
	if c.Variant == VariantPair {
		width = 2
	}
	scale := c.Variant.Scale()
	out := make([]Pairing, 0, len(c.Assignment))
	for _, m := range c.Assignment {
		pa, err := pids(c.A, m.Row, width)
		if err != nil {
			return nil, err
		}
		pb, err := pids(c.B, m.Col, width)
		if err != nil {
			return nil, err
		}
		out = append(out, Pairing{A: pa, B: pb, Similarity: float64(m.Utility) / scale})
	}
	return out, nil
}

func pids(n *nbh.Neighborhood, start, width int) ([]string, error) {
	out := make([]string, width)
	for k := range out {
		id, err := n.PID(start + k)
		if err != nil {
			return nil, err
		}
		out[k] = id
	}
	return out, nil
}
