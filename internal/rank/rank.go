// Package rank scores agents by how much the network observes them.
package rank

import (
	"fmt"
	"math"

	"github.com/graphgames/localint"
)

// Config holds configuration for influence computation.
type Config struct {
	// Damping (d) is the probability of following an observation edge vs.
	// teleporting. Standard value: 0.85.
	Damping float64

	// MaxIterations is the maximum number of power iteration steps. Default: 100.
	MaxIterations int

	// Tolerance is the convergence threshold. Default: 1e-6.
	Tolerance float64
}

// DefaultConfig returns the default influence configuration.
func DefaultConfig() Config {
	return Config{
		Damping:       0.85,
		MaxIterations: 100,
		Tolerance:     1e-6,
	}
}

// Influence calculates a PageRank-style influence score per agent,
// normalized so the most influential agent scores 1.0.
//
// An edge i->j means agent i observes agent j, so score flows from
// observers to the observed: an agent is influential when many agents
// (or influential agents) watch it. Weighted edges split an observer's
// score proportionally.
//
// Algorithm: standard power iteration
//  1. Initialize all agents with score = 1/N
//  2. For each iteration:
//     inf(v) = (1-d)/N + d * sum(inf(u) * w(u,v)/outWeight(u)) over observers u
//  3. Converge when max change < Tolerance
//  4. Normalize to [0, 1] by the max score
func Influence(adj *localint.Adjacency, cfg Config) ([]float64, error) {
	if adj == nil {
		return nil, fmt.Errorf("adjacency must not be nil")
	}
	if cfg.Damping < 0 || cfg.Damping >= 1 {
		return nil, fmt.Errorf("damping factor must be in [0, 1), got %g", cfg.Damping)
	}
	if cfg.MaxIterations < 1 {
		return nil, fmt.Errorf("max iterations must be at least 1, got %d", cfg.MaxIterations)
	}

	n := adj.N()
	nf := float64(n)

	// Total observation weight each agent spends
	outWeight := make([]float64, n)
	adj.Visit(func(i, j int, w float64) {
		outWeight[i] += w
	})

	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 1.0 / nf
	}

	next := make([]float64, n)
	for iter := 0; iter < cfg.MaxIterations; iter++ {
		base := (1.0 - cfg.Damping) / nf
		for v := range next {
			next[v] = base
		}

		// Score flows along each edge from observer to observed
		adj.Visit(func(u, v int, w float64) {
			if outWeight[u] > 0 {
				next[v] += cfg.Damping * scores[u] * w / outWeight[u]
			}
		})

		maxDelta := 0.0
		for v := range next {
			delta := math.Abs(next[v] - scores[v])
			if delta > maxDelta {
				maxDelta = delta
			}
		}

		scores, next = next, scores

		if maxDelta < cfg.Tolerance {
			break
		}
	}

	// Normalize to [0, 1] by dividing by the max score
	maxScore := 0.0
	for _, score := range scores {
		if score > maxScore {
			maxScore = score
		}
	}
	if maxScore > 0 {
		for i := range scores {
			scores[i] /= maxScore
		}
	}

	return scores, nil
}
