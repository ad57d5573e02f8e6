package localint

import "fmt"

// Trajectory is a lazy cursor over a fixed-length run of the dynamics. Each
// Next call records the current action profile, then applies one revision.
// A Trajectory is finite and not restartable: once exhausted, a new one must
// be constructed, which reseeds initial actions just as construction did.
type Trajectory struct {
	m         *Model
	step      func()
	remaining int
}

// Trajectory seeds initial actions (explicit slice or nil for uniform
// random) and returns a cursor that will yield exactly length profiles.
// The revision mode and length are validated before any state changes.
func (m *Model) Trajectory(length int, init []int, rev Revision) (*Trajectory, error) {
	if length < 0 {
		return nil, fmt.Errorf("trajectory length must be non-negative, got %d", length)
	}
	var step func()
	switch rev {
	case RevisionSimultaneous:
		step = m.playSimultaneous
	case RevisionSequential:
		step = m.playSequential
	default:
		return nil, errInvalidRevision(string(rev))
	}
	if err := m.SetInitialActions(init); err != nil {
		return nil, err
	}
	return &Trajectory{m: m, step: step, remaining: length}, nil
}

// Next returns a copy of the current action profile and advances the
// dynamics by one revision. It returns false once the trajectory has
// produced its full length.
func (t *Trajectory) Next() ([]int, bool) {
	if t.remaining == 0 {
		return nil, false
	}
	t.remaining--

	profile := make([]int, len(t.m.state.actions))
	copy(profile, t.m.state.actions)
	t.step()
	return profile, true
}

// Remaining returns how many profiles the trajectory has yet to yield.
func (t *Trajectory) Remaining() int { return t.remaining }

// Simulate runs a fresh fixed-length trajectory eagerly: it seeds initial
// actions, then records the action profile before each of the length
// revision steps. The result has exactly length rows of width N.
func (m *Model) Simulate(length int, init []int, rev Revision) ([][]int, error) {
	tr, err := m.Trajectory(length, init, rev)
	if err != nil {
		return nil, err
	}
	out := make([][]int, 0, length)
	for {
		profile, ok := tr.Next()
		if !ok {
			return out, nil
		}
		out = append(out, profile)
	}
}
