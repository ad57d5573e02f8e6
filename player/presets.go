package player

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Coordination returns the k×k pure coordination payoff matrix: payoff 1
// for matching the opponent's action, 0 otherwise. Under it, best response
// always follows the weighted majority of neighbour actions.
func Coordination(k int) (*mat.Dense, error) {
	if k < 1 {
		return nil, fmt.Errorf("coordination payoff needs at least one action, got %d", k)
	}
	m := mat.NewDense(k, k, nil)
	for a := 0; a < k; a++ {
		m.Set(a, a, 1)
	}
	return m, nil
}

// AntiCoordination returns the k×k payoff matrix rewarding mismatches:
// payoff 1 against any differing action, 0 against the same one.
func AntiCoordination(k int) (*mat.Dense, error) {
	if k < 1 {
		return nil, fmt.Errorf("anticoordination payoff needs at least one action, got %d", k)
	}
	m := mat.NewDense(k, k, nil)
	for a := 0; a < k; a++ {
		for b := 0; b < k; b++ {
			if a != b {
				m.Set(a, b, 1)
			}
		}
	}
	return m, nil
}

// RockPaperScissors returns the standard 3-action zero-sum payoff matrix
// (win 1, lose -1, draw 0) with actions ordered rock, paper, scissors.
func RockPaperScissors() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		0, -1, 1,
		1, 0, -1,
		-1, 1, 0,
	})
}
