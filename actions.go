package localint

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// ActionState holds the current action of every agent in two views over one
// storage: a compact integer sequence (entry i is agent i's action) and a
// sparse one-hot matrix (row i has a single 1 in the column of agent i's
// action). The one-hot view reads the same underlying slice as the compact
// view, so any mutation is visible through both without reallocation.
type ActionState struct {
	actions    []int
	numActions int
	mixed      OneHot
}

// NewActionState creates an ActionState for n agents and numActions actions,
// with every agent starting at action 0.
func NewActionState(n, numActions int) (*ActionState, error) {
	if n < 1 {
		return nil, fmt.Errorf("action state must cover at least one agent, got n=%d", n)
	}
	if numActions < 1 {
		return nil, fmt.Errorf("action state must allow at least one action, got %d", numActions)
	}
	s := &ActionState{
		actions:    make([]int, n),
		numActions: numActions,
	}
	s.mixed = OneHot{state: s}
	return s, nil
}

// N returns the number of agents.
func (s *ActionState) N() int { return len(s.actions) }

// NumActions returns the size of the action set.
func (s *ActionState) NumActions() int { return s.numActions }

// SetInitial overwrites every agent's action in place. A non-nil actions
// slice is copied in and only its length is validated; entries are expected
// to lie in [0, NumActions). A nil slice draws each agent's action
// independently and uniformly at random from rng.
func (s *ActionState) SetInitial(actions []int, rng *rand.Rand) error {
	if actions == nil {
		if rng == nil {
			return fmt.Errorf("random initial actions require a random source")
		}
		for i := range s.actions {
			s.actions[i] = rng.Intn(s.numActions)
		}
		return nil
	}
	if len(actions) != len(s.actions) {
		return fmt.Errorf("initial actions must have length %d, got %d", len(s.actions), len(actions))
	}
	copy(s.actions, actions)
	return nil
}

// Set updates agent i's action. Both views reflect the change immediately.
func (s *ActionState) Set(i, action int) {
	s.actions[i] = action
}

// Compact returns the live integer view: entry i is agent i's current
// action. The slice is not a copy; callers must not hold it across
// mutations expecting stability, and must not resize it.
func (s *ActionState) Compact() []int { return s.actions }

// Mixed returns the live one-hot view backed by the same storage.
func (s *ActionState) Mixed() *OneHot { return &s.mixed }

// OneHot is the sparse mixed-action view of an ActionState: an N×numActions
// matrix whose row i is the one-hot indicator of agent i's current action.
// It implements mat.Matrix and always reflects the state it was taken from.
type OneHot struct {
	state *ActionState
}

// At returns 1 if agent i currently plays action j, else 0.
func (o *OneHot) At(i, j int) float64 {
	if o.state.actions[i] == j {
		return 1
	}
	return 0
}

// Dims returns (N, numActions).
func (o *OneHot) Dims() (r, c int) {
	return len(o.state.actions), o.state.numActions
}

// T returns the transpose via gonum's lazy wrapper.
func (o *OneHot) T() mat.Matrix { return mat.Transpose{Matrix: o} }
