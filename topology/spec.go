package topology

import (
	"fmt"
	"math/rand"

	"github.com/graphgames/localint"
)

// Kinds accepted by Build.
const (
	KindCycle    = "cycle"
	KindPath     = "path"
	KindStar     = "star"
	KindComplete = "complete"
	KindGrid     = "grid"
	KindRandom   = "random"
)

// Spec is a serializable description of a topology, used by scenario files
// and external interfaces. Rows/Cols apply to grid, P and Seed to random;
// N applies to everything else (and to random).
type Spec struct {
	Kind string  `yaml:"kind" json:"kind"`
	N    int     `yaml:"n,omitempty" json:"n,omitempty"`
	Rows int     `yaml:"rows,omitempty" json:"rows,omitempty"`
	Cols int     `yaml:"cols,omitempty" json:"cols,omitempty"`
	P    float64 `yaml:"p,omitempty" json:"p,omitempty"`
	Seed int64   `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// Build constructs the adjacency a Spec describes. Random topologies are
// seeded from Spec.Seed, so equal specs always build equal graphs.
func Build(spec Spec) (*localint.Adjacency, error) {
	switch spec.Kind {
	case KindCycle:
		return Cycle(spec.N)
	case KindPath:
		return Path(spec.N)
	case KindStar:
		return Star(spec.N)
	case KindComplete:
		return Complete(spec.N)
	case KindGrid:
		return Grid(spec.Rows, spec.Cols)
	case KindRandom:
		return Random(spec.N, spec.P, rand.New(rand.NewSource(spec.Seed)))
	}
	return nil, fmt.Errorf("unknown topology kind %q (use cycle, path, star, complete, grid, or random)", spec.Kind)
}
