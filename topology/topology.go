// Package topology builds standard interaction networks as adjacency
// structures for the engine. All builders use unit weights and are
// deterministic except Random, which draws from an injected random source.
//
// Edge convention follows the engine: entry (i, j) means agent i observes
// agent j. Undirected families store both directions.
package topology

import (
	"fmt"
	"math/rand"

	"github.com/graphgames/localint"
)

// Cycle returns a directed ring over n agents in which agent i observes its
// predecessor i-1 (mod n). Cycle(1) is a single self-observing agent.
func Cycle(n int) (*localint.Adjacency, error) {
	if n < 1 {
		return nil, fmt.Errorf("cycle needs at least 1 node, got %d", n)
	}
	rows := make([]int, n)
	cols := make([]int, n)
	weights := make([]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = i
		cols[i] = (i + n - 1) % n
		weights[i] = 1
	}
	return localint.NewAdjacencyCOO(n, rows, cols, weights)
}

// Path returns an undirected chain 0-1-...-(n-1).
func Path(n int) (*localint.Adjacency, error) {
	if n < 1 {
		return nil, fmt.Errorf("path needs at least 1 node, got %d", n)
	}
	var rows, cols []int
	var weights []float64
	for i := 0; i < n-1; i++ {
		rows = append(rows, i, i+1)
		cols = append(cols, i+1, i)
		weights = append(weights, 1, 1)
	}
	return localint.NewAdjacencyCOO(n, rows, cols, weights)
}

// Star returns an undirected hub-and-spokes graph with node 0 as the hub.
func Star(n int) (*localint.Adjacency, error) {
	if n < 1 {
		return nil, fmt.Errorf("star needs at least 1 node, got %d", n)
	}
	var rows, cols []int
	var weights []float64
	for i := 1; i < n; i++ {
		rows = append(rows, 0, i)
		cols = append(cols, i, 0)
		weights = append(weights, 1, 1)
	}
	return localint.NewAdjacencyCOO(n, rows, cols, weights)
}

// Complete returns the complete graph: every agent observes every other.
func Complete(n int) (*localint.Adjacency, error) {
	if n < 1 {
		return nil, fmt.Errorf("complete graph needs at least 1 node, got %d", n)
	}
	var rows, cols []int
	var weights []float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			rows = append(rows, i)
			cols = append(cols, j)
			weights = append(weights, 1)
		}
	}
	return localint.NewAdjacencyCOO(n, rows, cols, weights)
}

// Grid returns an undirected rows×cols lattice with 4-neighbour
// connectivity. Node (r, c) has index r*cols + c.
func Grid(rows, cols int) (*localint.Adjacency, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("grid needs positive dimensions, got %dx%d", rows, cols)
	}
	n := rows * cols
	var ris, cis []int
	var weights []float64
	link := func(a, b int) {
		ris = append(ris, a, b)
		cis = append(cis, b, a)
		weights = append(weights, 1, 1)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			id := r*cols + c
			if c+1 < cols {
				link(id, id+1)
			}
			if r+1 < rows {
				link(id, id+cols)
			}
		}
	}
	return localint.NewAdjacencyCOO(n, ris, cis, weights)
}

// Random returns a directed Erdős–Rényi graph: each ordered pair (i, j)
// with i ≠ j gets an edge independently with probability p. The random
// source must be supplied so draws are reproducible.
func Random(n int, p float64, rng *rand.Rand) (*localint.Adjacency, error) {
	if n < 1 {
		return nil, fmt.Errorf("random graph needs at least 1 node, got %d", n)
	}
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("edge probability must be in [0, 1], got %v", p)
	}
	if rng == nil {
		return nil, fmt.Errorf("random graph requires a random source")
	}
	var rows, cols []int
	var weights []float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if rng.Float64() < p {
				rows = append(rows, i)
				cols = append(cols, j)
				weights = append(weights, 1)
			}
		}
	}
	return localint.NewAdjacencyCOO(n, rows, cols, weights)
}
