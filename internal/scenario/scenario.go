// Package scenario loads YAML run descriptions and turns them into
// configured models. A scenario names a topology, a payoff matrix (preset
// or explicit), and the simulation parameters, so a run is reproducible
// from one file.
package scenario

import (
	"fmt"
	"os"

	"github.com/graphgames/localint"
	"github.com/graphgames/localint/internal/constants"
	"github.com/graphgames/localint/internal/store"
	"github.com/graphgames/localint/player"
	"github.com/graphgames/localint/topology"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

// Payoff presets accepted in scenario files.
const (
	PresetCoordination      = "coordination"
	PresetAntiCoordination  = "anticoordination"
	PresetRockPaperScissors = "rps"
)

// Payoff selects the shared payoff matrix: either a named preset or an
// explicit square matrix. Actions sizes the preset matrices that take a
// dimension; rps is always 3x3.
type Payoff struct {
	Preset  string      `yaml:"preset,omitempty" json:"preset,omitempty"`
	Actions int         `yaml:"actions,omitempty" json:"actions,omitempty"`
	Matrix  [][]float64 `yaml:"matrix,omitempty" json:"matrix,omitempty"`
}

// Scenario is a complete, reproducible run description.
type Scenario struct {
	Name     string        `yaml:"name" json:"name"`
	Topology topology.Spec `yaml:"topology" json:"topology"`
	Payoff   Payoff        `yaml:"payoff,omitempty" json:"payoff,omitempty"`
	Steps    int           `yaml:"steps,omitempty" json:"steps,omitempty"`
	Revision string        `yaml:"revision,omitempty" json:"revision,omitempty"`
	Seed     int64         `yaml:"seed,omitempty" json:"seed,omitempty"`
	Init     []int         `yaml:"init,omitempty" json:"init,omitempty"`
}

// Parse decodes a YAML scenario, fills defaults, and validates it.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	s.ApplyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ApplyDefaults fills unset fields with the shared defaults. Parse calls it
// automatically; callers that build a Scenario in code should call it before
// Validate.
func (s *Scenario) ApplyDefaults() {
	if s.Payoff.Preset == "" && s.Payoff.Matrix == nil {
		s.Payoff.Preset = PresetCoordination
	}
	if s.Payoff.Preset != "" && s.Payoff.Preset != PresetRockPaperScissors && s.Payoff.Actions == 0 {
		s.Payoff.Actions = constants.DefaultNumActions
	}
	if s.Steps == 0 {
		s.Steps = constants.DefaultSteps
	}
	if s.Revision == "" {
		s.Revision = constants.DefaultRevision
	}
}

// Validate checks the scenario for problems that would only surface
// mid-run otherwise. The topology and payoff shapes are checked again by
// the engine at construction.
func (s *Scenario) Validate() error {
	if _, err := localint.ParseRevision(s.Revision); err != nil {
		return err
	}
	if s.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d", s.Steps)
	}
	if s.Steps > constants.MaxSteps {
		return fmt.Errorf("steps must be at most %d, got %d", constants.MaxSteps, s.Steps)
	}

	if s.Payoff.Preset != "" && s.Payoff.Matrix != nil {
		return fmt.Errorf("payoff sets both preset and matrix; pick one")
	}
	if s.Payoff.Preset != "" {
		switch s.Payoff.Preset {
		case PresetCoordination, PresetAntiCoordination, PresetRockPaperScissors:
		default:
			return fmt.Errorf("unknown payoff preset %q (use coordination, anticoordination, or rps)", s.Payoff.Preset)
		}
	}
	if s.Payoff.Matrix != nil {
		rows := len(s.Payoff.Matrix)
		for i, row := range s.Payoff.Matrix {
			if len(row) != rows {
				return fmt.Errorf("payoff matrix must be square: row %d has %d entries, want %d", i, len(row), rows)
			}
		}
	}

	numActions, err := s.numActions()
	if err != nil {
		return err
	}
	for i, a := range s.Init {
		if a < 0 || a >= numActions {
			return fmt.Errorf("init action %d for agent %d is outside [0,%d)", a, i, numActions)
		}
	}
	return nil
}

// numActions returns the action count the payoff section implies.
func (s *Scenario) numActions() (int, error) {
	if s.Payoff.Matrix != nil {
		if len(s.Payoff.Matrix) < 1 {
			return 0, fmt.Errorf("payoff matrix must cover at least one action")
		}
		return len(s.Payoff.Matrix), nil
	}
	if s.Payoff.Preset == PresetRockPaperScissors {
		return 3, nil
	}
	if s.Payoff.Actions < 1 {
		return 0, fmt.Errorf("payoff preset %q needs at least 1 action, got %d", s.Payoff.Preset, s.Payoff.Actions)
	}
	return s.Payoff.Actions, nil
}

// BuildPayoff constructs the payoff matrix the scenario describes.
func (s *Scenario) BuildPayoff() (*mat.Dense, error) {
	if s.Payoff.Matrix != nil {
		k := len(s.Payoff.Matrix)
		m := mat.NewDense(k, k, nil)
		for i, row := range s.Payoff.Matrix {
			if len(row) != k {
				return nil, fmt.Errorf("payoff matrix must be square: row %d has %d entries, want %d", i, len(row), k)
			}
			for j, v := range row {
				m.Set(i, j, v)
			}
		}
		return m, nil
	}

	switch s.Payoff.Preset {
	case PresetCoordination:
		return player.Coordination(s.Payoff.Actions)
	case PresetAntiCoordination:
		return player.AntiCoordination(s.Payoff.Actions)
	case PresetRockPaperScissors:
		return player.RockPaperScissors(), nil
	}
	return nil, fmt.Errorf("unknown payoff preset %q", s.Payoff.Preset)
}

// BuildModel constructs the model the scenario describes, seeded from
// Scenario.Seed so repeated builds replay identically.
func (s *Scenario) BuildModel() (*localint.Model, error) {
	adj, err := topology.Build(s.Topology)
	if err != nil {
		return nil, fmt.Errorf("building topology: %w", err)
	}
	payoff, err := s.BuildPayoff()
	if err != nil {
		return nil, fmt.Errorf("building payoff: %w", err)
	}
	m, err := localint.New(payoff, adj, localint.WithSeed(s.Seed))
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Run builds the model and simulates the scenario, returning a run record
// ready for archiving together with the recorded trajectory.
func (s *Scenario) Run() (store.Run, [][]int, error) {
	m, err := s.BuildModel()
	if err != nil {
		return store.Run{}, nil, err
	}

	rev, err := localint.ParseRevision(s.Revision)
	if err != nil {
		return store.Run{}, nil, err
	}
	profiles, err := m.Simulate(s.Steps, s.Init, rev)
	if err != nil {
		return store.Run{}, nil, err
	}

	run := store.Run{
		Label:      s.Name,
		N:          m.N(),
		NumActions: m.NumActions(),
		Topology:   s.Topology.Kind,
		Revision:   string(rev),
		Seed:       s.Seed,
		Steps:      len(profiles),
	}
	return run, profiles, nil
}
