// Package player implements the best-response capability used by the
// interaction engine. A Player holds the payoff matrix shared by every
// agent and answers one question: given a weighted distribution over
// opponent actions, which action maximises expected payoff?
//
// Tie-breaking is part of this package's contract, not the engine's. The
// default Player is deterministic: among maximisers it picks the smallest
// action index. WithRandomTieBreak switches to a uniform choice among
// maximisers, drawn from the supplied random source.
package player

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Player evaluates best responses against a fixed square payoff matrix,
// where entry (a, b) is the payoff of playing a against an opponent playing
// b. A Player reuses internal scratch buffers and is not safe for
// concurrent use.
type Player struct {
	payoff *mat.Dense
	k      int
	tieRng *rand.Rand // nil means smallest-index tie-break

	scratch []float64
	ties    []int
}

// Option configures a Player at construction.
type Option func(*Player)

// WithRandomTieBreak makes BestResponse choose uniformly at random among
// payoff-maximising actions instead of taking the smallest index.
func WithRandomTieBreak(rng *rand.Rand) Option {
	return func(p *Player) { p.tieRng = rng }
}

// New constructs a Player from a square payoff matrix. The matrix is
// copied; the caller may reuse its input.
func New(payoff mat.Matrix, opts ...Option) (*Player, error) {
	r, c := payoff.Dims()
	if r != c {
		return nil, fmt.Errorf("payoff matrix must be square: got %dx%d", r, c)
	}
	if r < 1 {
		return nil, fmt.Errorf("payoff matrix must cover at least one action")
	}
	p := &Player{
		payoff:  mat.DenseCopyOf(payoff),
		k:       r,
		scratch: make([]float64, r),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// NumActions returns the order of the payoff matrix.
func (p *Player) NumActions() int { return p.k }

// Payoff returns the payoff of playing action a against action b.
func (p *Player) Payoff(a, b int) float64 { return p.payoff.At(a, b) }

// ExpectedPayoffs writes the expected payoff of each action against the
// opponent distribution into dst (allocated when nil) and returns it.
// opponents must have length NumActions.
func (p *Player) ExpectedPayoffs(dst, opponents []float64) []float64 {
	if len(opponents) != p.k {
		panic(fmt.Sprintf("player: opponent distribution has length %d, want %d", len(opponents), p.k))
	}
	if dst == nil {
		dst = make([]float64, p.k)
	}
	for a := 0; a < p.k; a++ {
		row := p.payoff.RawRowView(a)
		var sum float64
		for b, w := range opponents {
			sum += row[b] * w
		}
		dst[a] = sum
	}
	return dst
}

// BestResponse returns the action maximising expected payoff against the
// opponent distribution. With the default tie-break the smallest maximising
// index wins, so the result is fully deterministic; with WithRandomTieBreak
// the result is uniform over all maximisers.
func (p *Player) BestResponse(opponents []float64) int {
	payoffs := p.ExpectedPayoffs(p.scratch, opponents)

	best := 0
	for a := 1; a < p.k; a++ {
		if payoffs[a] > payoffs[best] {
			best = a
		}
	}
	if p.tieRng == nil {
		return best
	}

	p.ties = p.ties[:0]
	for a := 0; a < p.k; a++ {
		if payoffs[a] == payoffs[best] {
			p.ties = append(p.ties, a)
		}
	}
	return p.ties[p.tieRng.Intn(len(p.ties))]
}
