package localint

import (
	"strings"
	"testing"
)

func TestSimulateLengthAndWidth(t *testing.T) {
	m, err := New(coordinationPayoff(2), completeGraph(t, 5), WithSeed(3))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	out, err := m.Simulate(10, nil, RevisionSequential)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if len(out) != 10 {
		t.Fatalf("Simulate returned %d profiles, want 10", len(out))
	}
	for step, profile := range out {
		if len(profile) != 5 {
			t.Fatalf("step %d profile has width %d, want 5", step, len(profile))
		}
		for i, a := range profile {
			if a < 0 || a >= 2 {
				t.Errorf("step %d agent %d action %d outside [0,2)", step, i, a)
			}
		}
	}
}

func TestSimulateRecordsBeforeRevision(t *testing.T) {
	m, err := New(coordinationPayoff(2), directedCycle(t, 3))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	out, err := m.Simulate(3, []int{0, 1, 0}, RevisionSimultaneous)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	want := [][]int{
		{0, 1, 0},
		{0, 0, 1},
		{1, 0, 0},
	}
	for step := range want {
		for i := range want[step] {
			if out[step][i] != want[step][i] {
				t.Fatalf("trajectory = %v, want %v", out, want)
			}
		}
	}
}

func TestSimulateZeroLength(t *testing.T) {
	m, err := New(coordinationPayoff(2), directedCycle(t, 3), WithSeed(1))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	out, err := m.Simulate(0, nil, RevisionSimultaneous)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("Simulate(0, ...) returned %d profiles, want 0", len(out))
	}
}

func TestSimulateNegativeLength(t *testing.T) {
	m, err := New(coordinationPayoff(2), directedCycle(t, 3), WithSeed(1))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := m.Simulate(-1, nil, RevisionSimultaneous); err == nil {
		t.Fatal("expected error for negative length")
	}
}

func TestSimulateInvalidRevision(t *testing.T) {
	m, err := New(coordinationPayoff(2), directedCycle(t, 3), WithSeed(1))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := m.SetInitialActions([]int{1, 1, 0}); err != nil {
		t.Fatalf("SetInitialActions failed: %v", err)
	}
	_, err = m.Simulate(5, []int{0, 0, 0}, Revision("bogus"))
	if err == nil {
		t.Fatal("expected error for unknown revision")
	}
	if !strings.Contains(err.Error(), "revision must be") {
		t.Errorf("unexpected error: %v", err)
	}
	// The failed call must not have touched the configured actions.
	want := []int{1, 1, 0}
	for i, a := range m.Actions() {
		if a != want[i] {
			t.Fatalf("state mutated on failed Simulate: got %v, want %v", m.Actions(), want)
		}
	}
}

func TestTrajectoryIteratorMatchesSimulate(t *testing.T) {
	init := []int{2, 0, 1, 1, 0, 2}
	eager, err := func() ([][]int, error) {
		m, err := New(coordinationPayoff(3), completeGraph(t, 6), WithSeed(42))
		if err != nil {
			return nil, err
		}
		return m.Simulate(20, init, RevisionSequential)
	}()
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}

	m, err := New(coordinationPayoff(3), completeGraph(t, 6), WithSeed(42))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	traj, err := m.Trajectory(20, init, RevisionSequential)
	if err != nil {
		t.Fatalf("Trajectory failed: %v", err)
	}
	var lazy [][]int
	for {
		profile, ok := traj.Next()
		if !ok {
			break
		}
		lazy = append(lazy, profile)
	}
	if len(lazy) != len(eager) {
		t.Fatalf("iterator yielded %d profiles, eager run %d", len(lazy), len(eager))
	}
	for step := range eager {
		for i := range eager[step] {
			if lazy[step][i] != eager[step][i] {
				t.Fatalf("step %d: iterator %v, eager %v", step, lazy[step], eager[step])
			}
		}
	}
}

func TestTrajectoryExhaustion(t *testing.T) {
	m, err := New(coordinationPayoff(2), directedCycle(t, 3), WithSeed(1))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	traj, err := m.Trajectory(2, []int{0, 1, 0}, RevisionSimultaneous)
	if err != nil {
		t.Fatalf("Trajectory failed: %v", err)
	}
	if got := traj.Remaining(); got != 2 {
		t.Errorf("Remaining() = %d, want 2", got)
	}
	for i := 0; i < 2; i++ {
		if _, ok := traj.Next(); !ok {
			t.Fatalf("Next() ended after %d profiles, want 2", i)
		}
	}
	if got := traj.Remaining(); got != 0 {
		t.Errorf("Remaining() after drain = %d, want 0", got)
	}
	for i := 0; i < 3; i++ {
		if _, ok := traj.Next(); ok {
			t.Fatal("Next() yielded a profile after exhaustion")
		}
	}
}

func TestTrajectoryProfilesAreCopies(t *testing.T) {
	m, err := New(coordinationPayoff(2), directedCycle(t, 3))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	traj, err := m.Trajectory(2, []int{0, 1, 0}, RevisionSimultaneous)
	if err != nil {
		t.Fatalf("Trajectory failed: %v", err)
	}
	first, ok := traj.Next()
	if !ok {
		t.Fatal("Next() ended early")
	}
	second, ok := traj.Next()
	if !ok {
		t.Fatal("Next() ended early")
	}
	want := []int{0, 1, 0}
	for i := range want {
		if first[i] != want[i] {
			t.Fatalf("first profile %v changed after later steps, want %v", first, want)
		}
	}
	if second[0] != 0 || second[1] != 0 || second[2] != 1 {
		t.Fatalf("second profile = %v, want [0 0 1]", second)
	}
}

// Two models configured with the same seed walk the same sequential path, and
// a fresh trajectory from a reconstructed model reproduces the first one.
func TestSeededRunsReproduce(t *testing.T) {
	run := func() [][]int {
		m, err := New(coordinationPayoff(3), completeGraph(t, 7), WithSeed(2026))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		out, err := m.Simulate(30, nil, RevisionSequential)
		if err != nil {
			t.Fatalf("Simulate failed: %v", err)
		}
		return out
	}
	a, b := run(), run()
	for step := range a {
		for i := range a[step] {
			if a[step][i] != b[step][i] {
				t.Fatalf("step %d diverged: %v vs %v", step, a[step], b[step])
			}
		}
	}
}

func TestSimulateExplicitInitLeadsRun(t *testing.T) {
	m, err := New(coordinationPayoff(2), completeGraph(t, 4), WithSeed(5))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	init := []int{1, 0, 1, 1}
	out, err := m.Simulate(6, init, RevisionSequential)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	for i := range init {
		if out[0][i] != init[i] {
			t.Fatalf("first recorded profile = %v, want the initial condition %v", out[0], init)
		}
	}
}
