package anneal

import (
	"github.com/matzehuels/gridlayout/pkg/cost"
	errs "github.com/matzehuels/gridlayout/pkg/errors"
	"github.com/matzehuels/gridlayout/pkg/grid"
	"github.com/matzehuels/gridlayout/pkg/topology"
)

// Default annealing parameters.
const (
	DefaultTMax         = 100.0
	DefaultTMin         = 10.0
	DefaultIterations   = 20
	DefaultCooling      = 0.9
	DefaultPerturbation = 0.6
	DefaultSeed         = uint64(42)
)

// Params configures an annealing run.
type Params struct {
	TMax         float64 `json:"tmax" toml:"tmax" bson:"tmax"`                         // initial temperature
	TMin         float64 `json:"tmin" toml:"tmin" bson:"tmin"`                         // freezing threshold
	Iterations   int     `json:"iterations" toml:"iterations" bson:"iterations"`       // candidates per temperature (ne)
	Cooling      float64 `json:"cooling" toml:"cooling" bson:"cooling"`                // cooling ratio (rc)
	Perturbation float64 `json:"perturbation" toml:"perturbation" bson:"perturbation"` // per-node relocation probability (p)
	DMax         int     `json:"dmax" toml:"dmax" bson:"dmax"`                         // repulsion distance cap
	Seed         uint64  `json:"seed" toml:"seed" bson:"seed"`
	Workers      int     `json:"workers,omitempty" toml:"workers" bson:"workers,omitempty"` // local search goroutines
}

// DefaultParams returns the parameters used when nothing is configured.
func DefaultParams() Params {
	return Params{
		TMax:         DefaultTMax,
		TMin:         DefaultTMin,
		Iterations:   DefaultIterations,
		Cooling:      DefaultCooling,
		Perturbation: DefaultPerturbation,
		DMax:         cost.DefaultDMax,
		Seed:         DefaultSeed,
	}
}

// Validate rejects parameters the annealing loop cannot run with.
// TMin must be positive so the acceptance probability never divides by zero.
func (p Params) Validate() error {
	if err := errs.ValidatePositive("tmax", p.TMax); err != nil {
		return err
	}
	if err := errs.ValidatePositive("tmin", p.TMin); err != nil {
		return err
	}
	if err := errs.ValidateMinInt("iterations", p.Iterations, 1); err != nil {
		return err
	}
	if err := errs.ValidateOpenUnit("cooling", p.Cooling); err != nil {
		return err
	}
	if err := errs.ValidateUnit("perturbation", p.Perturbation); err != nil {
		return err
	}
	if err := errs.ValidateMinInt("dmax", p.DMax, 1); err != nil {
		return err
	}
	return errs.ValidateMinInt("workers", p.Workers, 0)
}

// Levels returns how many temperatures the schedule visits before freezing,
// ceil(log(TMin/TMax)/log(Cooling)) for TMax > TMin. It replays the
// floating-point schedule so the count always matches Run.
func (p Params) Levels() int {
	if p.Cooling <= 0 || p.Cooling >= 1 || p.TMin <= 0 {
		return 0
	}
	n := 0
	for t := p.TMax; t > p.TMin; t *= p.Cooling {
		n++
	}
	return n
}

// Problem is the static input of a run.
type Problem struct {
	Nodes   int
	Edges   []topology.Edge
	Grid    grid.Grid
	Initial grid.Layout // optional starting layout; random when nil
}

// Validate checks feasibility before any matrix is built.
func (p Problem) Validate() error {
	if err := p.Grid.Validate(); err != nil {
		return err
	}
	if p.Nodes <= 0 {
		return errs.New(errs.ErrCodeInvalidInput, "node count must be positive, got %d", p.Nodes)
	}
	if err := p.Grid.CheckCapacity(p.Nodes); err != nil {
		return err
	}
	if p.Initial != nil {
		if len(p.Initial) != p.Nodes {
			return errs.New(errs.ErrCodeInvalidLayout, "initial layout has %d positions for %d nodes", len(p.Initial), p.Nodes)
		}
		if err := p.Initial.Validate(p.Grid); err != nil {
			return err
		}
	}
	return nil
}
