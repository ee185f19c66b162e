// Package simgraph holds the protein similarity graph: an undirected graph with
// non-negative edge weights stored in a dense adjacency matrix.
//
// The graph is built once (nodes, then edges) and afterwards only read. Reads
// never mutate state, so a built graph may be shared by concurrent comparers.
package simgraph

import (
	"errors"
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

var (
	// ErrUnknownNode is matched by every *UnknownNodeError.
	ErrUnknownNode = errors.New("unknown node")

	// ErrNegativeWeight is returned when an edge weight is below zero.
	ErrNegativeWeight = errors.New("negative edge weight")

	// ErrNonFiniteWeight is returned for NaN or infinite edge weights.
	ErrNonFiniteWeight = errors.New("non-finite edge weight")
)

// UnknownNodeError reports an edge endpoint that was never added.
type UnknownNodeError struct {
	Node any
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("unknown node %v", e.Node)
}

func (e *UnknownNodeError) Is(target error) bool { return target == ErrUnknownNode }

// Graph is an undirected edge-weighted graph keyed by K.
type Graph[K comparable] struct {
	index map[K]int
	keys  []K
	adj   [][]float64 // square, side >= len(keys)
}

// ProteinGraph is the graph keyed by protein identifier.
type ProteinGraph = Graph[string]

// New returns an empty graph.
func New[K comparable]() *Graph[K] { return NewWithCapacity[K](0) }

// NewWithCapacity preallocates the adjacency matrix for n nodes.
func NewWithCapacity[K comparable](n int) *Graph[K] {
	if n < 0 {
		n = 0
	}
	g := &Graph[K]{
		index: make(map[K]int, n),
		keys:  make([]K, 0, n),
	}
	g.resize(n)
	return g
}

// Len returns the number of nodes.
func (g *Graph[K]) Len() int { return len(g.keys) }

// Has reports whether id was added.
func (g *Graph[K]) Has(id K) bool {
	_, ok := g.index[id]
	return ok
}

// Nodes returns the node keys in insertion order.
func (g *Graph[K]) Nodes() []K {
	out := make([]K, len(g.keys))
	copy(out, g.keys)
	return out
}

// AddNode registers id. Adding an existing node is a no-op.
func (g *Graph[K]) AddNode(id K) {
	if _, ok := g.index[id]; ok {
		return
	}
	i := len(g.keys)
	g.index[id] = i
	g.keys = append(g.keys, id)
	if len(g.adj) < len(g.keys) {
		side := 2 * len(g.adj)
		if side < 8 {
			side = 8
		}
		g.resize(side)
	}
}

// AddEdge sets the symmetric weight between two existing nodes.
func (g *Graph[K]) AddEdge(a, b K, w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return fmt.Errorf("%v-%v: %w", a, b, ErrNonFiniteWeight)
	}
	if w < 0 {
		return fmt.Errorf("%v-%v: %w", a, b, ErrNegativeWeight)
	}
	x, ok := g.index[a]
	if !ok {
		return &UnknownNodeError{Node: a}
	}
	y, ok := g.index[b]
	if !ok {
		return &UnknownNodeError{Node: b}
	}
	g.adj[x][y] = w
	g.adj[y][x] = w
	return nil
}

// AddConnected registers a and b when missing and connects them.
func (g *Graph[K]) AddConnected(a, b K, w float64) error {
	g.AddNode(a)
	g.AddNode(b)
	return g.AddEdge(a, b, w)
}

// Weight returns the edge weight, or 0 when there is no edge or either node is
// unknown.
func (g *Graph[K]) Weight(a, b K) float64 {
	x, ok := g.index[a]
	if !ok {
		return 0
	}
	y, ok := g.index[b]
	if !ok {
		return 0
	}
	return g.adj[x][y]
}

// Connected reports whether a and b share an edge of positive weight.
func (g *Graph[K]) Connected(a, b K) bool { return g.Weight(a, b) > 0 }

// ConnectedComponents partitions all nodes into groups joined by paths whose
// edges all weigh at least threshold. Absent edges weigh 0, so a threshold <= 0
// puts every node in one component.
//
// Components are discovered in node insertion order; members appear in DFS
// visit order.
func (g *Graph[K]) ConnectedComponents(threshold float64) [][]K {
	n := len(g.keys)
	visited := roaring.New()
	var (
		comps [][]K
		stack []int
	)
	for start := 0; start < n; start++ {
		if visited.Contains(uint32(start)) {
			continue
		}
		var comp []K
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited.Contains(uint32(v)) {
				continue
			}
			visited.Add(uint32(v))
			comp = append(comp, g.keys[v])
			row := g.adj[v]
			for u := 0; u < n; u++ {
				if row[u] >= threshold && !visited.Contains(uint32(u)) {
					stack = append(stack, u)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

func (g *Graph[K]) resize(side int) {
	if side <= len(g.adj) {
		return
	}
	adj := make([][]float64, side)
	for i := range adj {
		row := make([]float64, side)
		if i < len(g.adj) {
			copy(row, g.adj[i])
		}
		adj[i] = row
	}
	g.adj = adj
}
