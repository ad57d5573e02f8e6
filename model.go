package localint

import (
	"fmt"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/graphgames/localint/player"
)

// BestResponder supplies the best-response capability: given an opponent
// action distribution of length NumActions, it returns one action index in
// [0, NumActions). Tie-breaking among equally good actions is the
// implementation's documented business; the engine treats it as opaque.
// The player package provides the standard implementation.
type BestResponder interface {
	NumActions() int
	BestResponse(opponents []float64) int
}

// Model is a local interaction model: N homogeneous agents on an Adjacency,
// sharing one payoff matrix, revising actions by best response. The model
// owns its ActionState and random source and is not safe for concurrent use.
type Model struct {
	adj   *Adjacency
	br    BestResponder
	state *ActionState
	rng   *rand.Rand

	// Scratch buffers reused across revisions.
	dist *mat.Dense
	row  []float64
	next []int
}

// Option configures a Model at construction.
type Option func(*Model)

// WithSeed seeds the model's random source deterministically.
func WithSeed(seed int64) Option {
	return func(m *Model) { m.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand injects a random source. The model assumes exclusive use of it.
func WithRand(rng *rand.Rand) Option {
	return func(m *Model) { m.rng = rng }
}

// WithBestResponder replaces the default payoff-derived player, e.g. with
// one using a random tie-break. Its NumActions must match the payoff order.
func WithBestResponder(br BestResponder) Option {
	return func(m *Model) { m.br = br }
}

// New constructs a Model from a square payoff matrix (its order is the
// number of actions) and an adjacency structure. The default best-response
// capability is player.New(payoff) with its smallest-index tie-break.
func New(payoff mat.Matrix, adj *Adjacency, opts ...Option) (*Model, error) {
	if adj == nil {
		return nil, fmt.Errorf("adjacency must not be nil")
	}
	p, err := player.New(payoff)
	if err != nil {
		return nil, err
	}

	numActions := p.NumActions()
	state, err := NewActionState(adj.N(), numActions)
	if err != nil {
		return nil, err
	}

	m := &Model{
		adj:   adj,
		br:    p,
		state: state,
		dist:  mat.NewDense(adj.N(), numActions, nil),
		row:   make([]float64, numActions),
		next:  make([]int, adj.N()),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.br.NumActions() != numActions {
		return nil, fmt.Errorf("best responder covers %d actions, payoff matrix has %d",
			m.br.NumActions(), numActions)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return m, nil
}

// N returns the number of agents.
func (m *Model) N() int { return m.adj.n }

// NumActions returns the size of the shared action set.
func (m *Model) NumActions() int { return m.state.numActions }

// Adjacency returns the model's interaction network.
func (m *Model) Adjacency() *Adjacency { return m.adj }

// State returns the model's action state. Mutating it directly bypasses the
// revision protocol; most callers want SetInitialActions and Play.
func (m *Model) State() *ActionState { return m.state }

// Actions returns the live compact view of the current action profile.
func (m *Model) Actions() []int { return m.state.Compact() }

// SetInitialActions seeds the action profile: a non-nil slice of length N is
// adopted verbatim, nil draws every agent's action uniformly at random from
// the model's random source.
func (m *Model) SetInitialActions(actions []int) error {
	return m.state.SetInitial(actions, m.rng)
}
