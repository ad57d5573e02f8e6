package localint

import "fmt"

// Revision names an update protocol for a single step of the dynamics.
type Revision string

const (
	// RevisionSimultaneous revises every agent against the same pre-update
	// snapshot and commits all new actions at once.
	RevisionSimultaneous Revision = "simultaneous"

	// RevisionSequential revises exactly one agent, chosen uniformly at
	// random, per step.
	RevisionSequential Revision = "sequential"
)

// ParseRevision validates a revision-mode identifier.
func ParseRevision(s string) (Revision, error) {
	switch Revision(s) {
	case RevisionSimultaneous, RevisionSequential:
		return Revision(s), nil
	}
	return "", errInvalidRevision(s)
}

func errInvalidRevision(s string) error {
	return fmt.Errorf("revision must be %q or %q, got %q",
		RevisionSimultaneous, RevisionSequential, s)
}

// Play advances the dynamics by one revision step under the given protocol.
// An unknown revision fails before any agent's action is touched.
func (m *Model) Play(rev Revision) error {
	switch rev {
	case RevisionSimultaneous:
		m.playSimultaneous()
	case RevisionSequential:
		m.playSequential()
	default:
		return errInvalidRevision(string(rev))
	}
	return nil
}

// playSimultaneous computes every agent's opponent distribution from the
// pre-update state, stages all best responses, then commits them together.
// New actions are written into a separate buffer so that responses within a
// single step cannot see each other (synchronous update); the processing
// order of agents therefore cannot affect the outcome.
func (m *Model) playSimultaneous() {
	m.adj.mulOneHot(m.dist, m.state)
	for i := 0; i < m.adj.n; i++ {
		m.next[i] = m.br.BestResponse(m.dist.RawRowView(i))
	}
	copy(m.state.actions, m.next)
}

// playSequential draws one agent uniformly at random, recomputes only that
// agent's opponent distribution from its adjacency row, and updates only
// that agent's action.
func (m *Model) playSequential() {
	i := m.rng.Intn(m.adj.n)
	m.adj.rowMulOneHot(m.row, i, m.state)
	m.state.Set(i, m.br.BestResponse(m.row))
}
