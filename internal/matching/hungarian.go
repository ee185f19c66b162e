// Package matching solves the rectangular assignment problem on non-negative
// integer utility matrices (Hungarian method, O(n^3) in the larger side).
package matching

import (
	"cmp"
	"errors"
	"math"
	"slices"
)

// Mode selects the objective.
type Mode int

const (
	Maximize Mode = iota
	Minimize
)

var (
	ErrRagged   = errors.New("matching: utility matrix rows differ in length")
	ErrNegative = errors.New("matching: negative utility")
)

// Match pairs row Row with column Col; Utility is the matrix entry.
type Match struct {
	Row, Col int
	Utility  int64
}

// Assignment is a one-to-one set of matches ordered by row.
type Assignment []Match

// Total sums the utilities.
func (a Assignment) Total() int64 {
	var s int64
	for _, m := range a {
		s += m.Utility
	}
	return s
}

// Solve returns an optimal one-to-one assignment between rows and columns of
// util. A non-square matrix leaves max(R,C)-min(R,C) indices unmatched.
//
// In Maximize mode pairs of zero utility are not reported: they add nothing to
// the objective and do not denote a real pairing.
func Solve(util [][]int64, mode Mode) (Assignment, error) {
	rows := len(util)
	if rows == 0 {
		return nil, nil
	}
	cols := len(util[0])
	var maxU int64
	for _, r := range util {
		if len(r) != cols {
			return nil, ErrRagged
		}
		for _, x := range r {
			if x < 0 {
				return nil, ErrNegative
			}
			maxU = max(maxU, x)
		}
	}
	if cols == 0 {
		return nil, nil
	}

	n := max(rows, cols)
	// 1-indexed square cost matrix; padding is a zero-utility cell.
	cost := make([][]int64, n+1)
	for i := 1; i <= n; i++ {
		cost[i] = make([]int64, n+1)
		for j := 1; j <= n; j++ {
			var u int64
			if i <= rows && j <= cols {
				u = util[i-1][j-1]
			}
			if mode == Maximize {
				cost[i][j] = maxU - u
			} else {
				cost[i][j] = u
			}
		}
	}

	colOwner := solveSquare(cost, n)

	var out Assignment
	for j := 1; j <= n; j++ {
		i := colOwner[j]
		if i == 0 || i > rows || j > cols {
			continue
		}
		u := util[i-1][j-1]
		if mode == Maximize && u == 0 {
			continue
		}
		out = append(out, Match{Row: i - 1, Col: j - 1, Utility: u})
	}
	slices.SortFunc(out, func(a, b Match) int {
		if c := cmp.Compare(a.Row, b.Row); c != 0 {
			return c
		}
		return cmp.Compare(a.Col, b.Col)
	})
	return out, nil
}

// solveSquare minimizes total cost on the 1-indexed n×n matrix a using row and
// column potentials. It returns p where p[j] is the row assigned to column j.
func solveSquare(a [][]int64, n int) []int {
	const inf = math.MaxInt64 / 4
	u := make([]int64, n+1)
	v := make([]int64, n+1)
	p := make([]int, n+1)
	way := make([]int, n+1)
	minv := make([]int64, n+1)
	used := make([]bool, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		for j := range minv {
			minv[j] = inf
			used[j] = false
		}
		for {
			used[j0] = true
			i0 := p[j0]
			delta := int64(inf)
			j1 := 0
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				if cur := a[i0][j] - u[i0] - v[j]; cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}
		// augment along the alternating path
		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}
	return p
}
