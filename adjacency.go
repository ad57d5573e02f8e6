package localint

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Adjacency is the interaction network: a sparse N×N matrix of non-negative
// weights in compressed sparse row form. Entry (i, j) is the weight with
// which agent i observes agent j; a zero entry means no influence. Self-loops
// and asymmetry are permitted. An Adjacency is immutable after construction.
type Adjacency struct {
	n       int
	rowPtr  []int
	colIdx  []int
	weights []float64
}

// NewAdjacency builds an Adjacency from any gonum matrix, dense or sparse.
// Zero entries are dropped. It fails if the matrix is not square or contains
// a negative weight.
func NewAdjacency(m mat.Matrix) (*Adjacency, error) {
	r, c := m.Dims()
	if r != c {
		return nil, fmt.Errorf("adjacency matrix must be square: got %dx%d", r, c)
	}
	if r < 1 {
		return nil, fmt.Errorf("adjacency matrix must have at least one node")
	}

	a := &Adjacency{
		n:      r,
		rowPtr: make([]int, r+1),
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			w := m.At(i, j)
			if w == 0 {
				continue
			}
			if w < 0 {
				return nil, fmt.Errorf("adjacency weights must be non-negative: entry (%d,%d) is %v", i, j, w)
			}
			a.colIdx = append(a.colIdx, j)
			a.weights = append(a.weights, w)
		}
		a.rowPtr[i+1] = len(a.colIdx)
	}
	return a, nil
}

// NewAdjacencyCOO builds an Adjacency from coordinate-form triplets: entry k
// adds weights[k] at (rows[k], cols[k]). Duplicate coordinates accumulate.
// Zero weights are dropped; negative weights and out-of-range indices fail.
func NewAdjacencyCOO(n int, rows, cols []int, weights []float64) (*Adjacency, error) {
	if n < 1 {
		return nil, fmt.Errorf("adjacency matrix must have at least one node, got n=%d", n)
	}
	if len(rows) != len(cols) || len(cols) != len(weights) {
		return nil, fmt.Errorf("rows, cols, and weights must have equal length: got %d, %d, %d",
			len(rows), len(cols), len(weights))
	}

	type entry struct {
		col int
		w   float64
	}
	perRow := make([][]entry, n)
	for k := range rows {
		i, j, w := rows[k], cols[k], weights[k]
		if i < 0 || i >= n || j < 0 || j >= n {
			return nil, fmt.Errorf("adjacency entry (%d,%d) out of range for n=%d", i, j, n)
		}
		if w < 0 {
			return nil, fmt.Errorf("adjacency weights must be non-negative: entry (%d,%d) is %v", i, j, w)
		}
		if w == 0 {
			continue
		}
		perRow[i] = append(perRow[i], entry{col: j, w: w})
	}

	a := &Adjacency{
		n:      n,
		rowPtr: make([]int, n+1),
	}
	for i, row := range perRow {
		sort.Slice(row, func(x, y int) bool { return row[x].col < row[y].col })
		for _, e := range row {
			// Merge duplicates into the previously stored entry for this row.
			last := len(a.colIdx) - 1
			if last >= a.rowPtr[i] && a.colIdx[last] == e.col {
				a.weights[last] += e.w
				continue
			}
			a.colIdx = append(a.colIdx, e.col)
			a.weights = append(a.weights, e.w)
		}
		a.rowPtr[i+1] = len(a.colIdx)
	}
	return a, nil
}

// N returns the number of agents (nodes).
func (a *Adjacency) N() int { return a.n }

// NNZ returns the number of stored (nonzero) weights.
func (a *Adjacency) NNZ() int { return len(a.colIdx) }

// Visit calls fn for every stored weight, in row order: agent i observes
// agent j with weight w.
func (a *Adjacency) Visit(fn func(i, j int, w float64)) {
	for i := 0; i < a.n; i++ {
		for p := a.rowPtr[i]; p < a.rowPtr[i+1]; p++ {
			fn(i, a.colIdx[p], a.weights[p])
		}
	}
}

// At returns the weight at (i, j). Together with Dims and T it implements
// mat.Matrix, so an Adjacency can be handed back to gonum operations.
func (a *Adjacency) At(i, j int) float64 {
	if i < 0 || i >= a.n || j < 0 || j >= a.n {
		panic("localint: adjacency index out of range")
	}
	for p := a.rowPtr[i]; p < a.rowPtr[i+1]; p++ {
		if a.colIdx[p] == j {
			return a.weights[p]
		}
	}
	return 0
}

// Dims returns the matrix dimensions (N, N).
func (a *Adjacency) Dims() (r, c int) { return a.n, a.n }

// T returns the transpose via gonum's lazy wrapper.
func (a *Adjacency) T() mat.Matrix { return mat.Transpose{Matrix: a} }

// mulOneHot writes the full product of the adjacency with the one-hot state
// into dst, an n×numActions dense matrix. Row i of the result is agent i's
// opponent action distribution: the weighted tally of its neighbours'
// current actions.
func (a *Adjacency) mulOneHot(dst *mat.Dense, s *ActionState) {
	dst.Zero()
	for i := 0; i < a.n; i++ {
		row := dst.RawRowView(i)
		for p := a.rowPtr[i]; p < a.rowPtr[i+1]; p++ {
			row[s.actions[a.colIdx[p]]] += a.weights[p]
		}
	}
}

// rowMulOneHot writes agent i's opponent action distribution into dst,
// which must have length numActions.
func (a *Adjacency) rowMulOneHot(dst []float64, i int, s *ActionState) {
	for k := range dst {
		dst[k] = 0
	}
	for p := a.rowPtr[i]; p < a.rowPtr[i+1]; p++ {
		dst[s.actions[a.colIdx[p]]] += a.weights[p]
	}
}
