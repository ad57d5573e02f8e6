package player

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNewRejectsNonSquare(t *testing.T) {
	_, err := New(mat.NewDense(2, 3, nil))
	if err == nil {
		t.Fatal("expected error for non-square payoff")
	}
	if !strings.Contains(err.Error(), "payoff matrix must be square") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestExpectedPayoffs(t *testing.T) {
	p, err := New(mat.NewDense(2, 2, []float64{4, 0, 3, 2}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	got := p.ExpectedPayoffs(nil, []float64{0.5, 0.5})
	want := []float64{2, 2.5}
	for a := range want {
		if math.Abs(got[a]-want[a]) > 1e-12 {
			t.Errorf("expected payoff of action %d = %v, want %v", a, got[a], want[a])
		}
	}
}

func TestExpectedPayoffsPanicsOnBadLength(t *testing.T) {
	p, err := New(mat.NewDense(2, 2, nil))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for wrong-length distribution")
		}
	}()
	p.ExpectedPayoffs(nil, []float64{1, 0, 0})
}

func TestBestResponse(t *testing.T) {
	// Stag hunt: coordinating on action 0 pays most, action 1 is safe.
	p, err := New(mat.NewDense(2, 2, []float64{4, 0, 3, 2}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	tests := []struct {
		name      string
		opponents []float64
		want      int
	}{
		{name: "all stag", opponents: []float64{1, 0}, want: 0},
		{name: "all hare", opponents: []float64{0, 1}, want: 1},
		{name: "stag-leaning mix", opponents: []float64{0.8, 0.2}, want: 0},
		{name: "hare-leaning mix", opponents: []float64{0.5, 0.5}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.BestResponse(tt.opponents); got != tt.want {
				t.Errorf("BestResponse(%v) = %d, want %d", tt.opponents, got, tt.want)
			}
		})
	}
}

func TestBestResponseUnnormalisedWeights(t *testing.T) {
	// Weighted neighbourhood counts, not probabilities: three neighbours on
	// action 1 against one on action 0.
	p, err := New(mat.NewDense(2, 2, []float64{1, 0, 0, 1}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := p.BestResponse([]float64{1, 3}); got != 1 {
		t.Errorf("BestResponse = %d, want 1", got)
	}
}

func TestBestResponseDeterministicTieBreak(t *testing.T) {
	p, err := New(mat.NewDense(3, 3, nil))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		if got := p.BestResponse([]float64{1, 1, 1}); got != 0 {
			t.Fatalf("BestResponse under full tie = %d, want 0", got)
		}
	}
}

func TestBestResponseRandomTieBreak(t *testing.T) {
	// Actions 0 and 2 tie for the maximum; action 1 never does.
	payoff := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 0, 0,
		1, 0, 0,
	})
	p, err := New(payoff, WithRandomTieBreak(rand.New(rand.NewSource(11))))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	seen := make(map[int]int)
	for i := 0; i < 200; i++ {
		got := p.BestResponse([]float64{1, 0, 0})
		if got != 0 && got != 2 {
			t.Fatalf("BestResponse picked non-maximiser %d", got)
		}
		seen[got]++
	}
	if seen[0] == 0 || seen[2] == 0 {
		t.Errorf("random tie-break never hit one maximiser: counts %v", seen)
	}
}

func TestBestResponseZeroDistribution(t *testing.T) {
	p, err := New(mat.NewDense(4, 4, nil))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := p.BestResponse([]float64{0, 0, 0, 0}); got != 0 {
		t.Errorf("BestResponse against empty neighbourhood = %d, want 0", got)
	}
}

func TestRockPaperScissorsBestResponse(t *testing.T) {
	p, err := New(RockPaperScissors())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	tests := []struct {
		name      string
		opponents []float64
		want      int
	}{
		{name: "beats rock", opponents: []float64{1, 0, 0}, want: 1},
		{name: "beats paper", opponents: []float64{0, 1, 0}, want: 2},
		{name: "beats scissors", opponents: []float64{0, 0, 1}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.BestResponse(tt.opponents); got != tt.want {
				t.Errorf("BestResponse(%v) = %d, want %d", tt.opponents, got, tt.want)
			}
		})
	}
}

func TestCoordinationPreset(t *testing.T) {
	m, err := Coordination(3)
	if err != nil {
		t.Fatalf("Coordination failed: %v", err)
	}
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			want := 0.0
			if a == b {
				want = 1.0
			}
			if got := m.At(a, b); got != want {
				t.Errorf("Coordination(3).At(%d,%d) = %v, want %v", a, b, got, want)
			}
		}
	}
	if _, err := Coordination(0); err == nil {
		t.Error("expected error for zero actions")
	}
}

func TestAntiCoordinationPreset(t *testing.T) {
	m, err := AntiCoordination(2)
	if err != nil {
		t.Fatalf("AntiCoordination failed: %v", err)
	}
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			want := 1.0
			if a == b {
				want = 0.0
			}
			if got := m.At(a, b); got != want {
				t.Errorf("AntiCoordination(2).At(%d,%d) = %v, want %v", a, b, got, want)
			}
		}
	}
}
