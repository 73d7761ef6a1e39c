package anneal

import (
	"context"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/gridlayout/pkg/cost"
	errs "github.com/matzehuels/gridlayout/pkg/errors"
	"github.com/matzehuels/gridlayout/pkg/grid"
	"github.com/matzehuels/gridlayout/pkg/topology"
)

func scenarioProblem() Problem {
	return Problem{
		Nodes:   4,
		Edges:   []topology.Edge{{From: 0, To: 2}, {From: 2, To: 3}},
		Grid:    grid.Grid{Width: 3, Height: 3},
		Initial: grid.Layout{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}},
	}
}

func scenarioParams() Params {
	return Params{TMax: 100, TMin: 10, Iterations: 20, Cooling: 0.9, Perturbation: 0.6, DMax: 2, Seed: 7}
}

func TestRunScenario(t *testing.T) {
	a := Annealer{Params: scenarioParams()}
	res, err := a.Run(context.Background(), scenarioProblem())
	require.NoError(t, err)

	wantLevels := int(math.Ceil(math.Log(10.0/100.0) / math.Log(0.9)))
	require.Equal(t, 22, wantLevels)
	require.Len(t, res.Levels, wantLevels)
	require.Equal(t, wantLevels*20, res.Iterations)
	require.LessOrEqual(t, res.Temperature, 10.0)

	require.LessOrEqual(t, res.Cost, res.InitialCost)
	require.LessOrEqual(t, res.InitialCost, res.StartCost)
	require.NoError(t, res.Layout.Validate(scenarioProblem().Grid))

	m, err := cost.NewModel(res.Topology.Weights(), 2)
	require.NoError(t, err)
	require.Equal(t, m.Total(res.Layout), res.Cost)
}

func TestBestNeverIncreases(t *testing.T) {
	var steps []Step
	a := Annealer{
		Params:   scenarioParams(),
		Progress: func(s Step) { steps = append(steps, s) },
	}
	res, err := a.Run(context.Background(), scenarioProblem())
	require.NoError(t, err)

	require.Equal(t, StateInitializing, steps[0].State)
	require.Equal(t, StateFrozen, steps[len(steps)-1].State)
	require.Len(t, steps, res.Iterations+2)

	best := steps[0].Best
	for _, s := range steps[1:] {
		require.LessOrEqual(t, s.Best, best)
		if s.Improved {
			require.Less(t, s.Best, best)
		}
		best = s.Best
	}
	require.Equal(t, res.Cost, best)

	for i := 1; i < len(res.Levels); i++ {
		require.LessOrEqual(t, res.Levels[i].Best, res.Levels[i-1].Best)
	}
}

func TestRunDeterministic(t *testing.T) {
	p := Problem{
		Nodes: 8,
		Edges: []topology.Edge{{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 3}, {From: 3, To: 4}, {From: 4, To: 5}, {From: 5, To: 6}, {From: 6, To: 7}, {From: 7, To: 0}},
		Grid:  grid.Grid{Width: 4, Height: 4},
	}
	params := scenarioParams()
	params.TMin = 50

	r1, err := (&Annealer{Params: params}).Run(context.Background(), p)
	require.NoError(t, err)
	r2, err := (&Annealer{Params: params}).Run(context.Background(), p)
	require.NoError(t, err)

	require.Equal(t, r1.Cost, r2.Cost)
	require.True(t, r1.Layout.Equal(r2.Layout))
	require.True(t, r1.Start.Equal(r2.Start))
	require.Equal(t, r1.Accepted, r2.Accepted)
}

func TestRunWorkersMatchSequential(t *testing.T) {
	p := Problem{
		Nodes: 7,
		Edges: []topology.Edge{{From: 0, To: 1}, {From: 0, To: 2}, {From: 0, To: 3}, {From: 3, To: 4}, {From: 4, To: 5}, {From: 5, To: 6}},
		Grid:  grid.Grid{Width: 4, Height: 3},
	}
	params := scenarioParams()
	params.TMin = 60

	seq, err := (&Annealer{Params: params}).Run(context.Background(), p)
	require.NoError(t, err)
	params.Workers = 3
	par, err := (&Annealer{Params: params}).Run(context.Background(), p)
	require.NoError(t, err)

	require.Equal(t, seq.Cost, par.Cost)
	require.True(t, seq.Layout.Equal(par.Layout))
}

func TestRunWithSource(t *testing.T) {
	p := scenarioProblem()
	p.Initial = nil
	a := Annealer{Params: scenarioParams(), Source: rand.NewPCG(1, 2)}
	res, err := a.Run(context.Background(), p)
	require.NoError(t, err)
	require.NoError(t, res.Start.Validate(p.Grid))
}

func TestRunFrozenImmediately(t *testing.T) {
	params := scenarioParams()
	params.TMax = params.TMin

	var steps []Step
	a := Annealer{Params: params, Progress: func(s Step) { steps = append(steps, s) }}
	res, err := a.Run(context.Background(), scenarioProblem())
	require.NoError(t, err)

	require.Empty(t, res.Levels)
	require.Zero(t, res.Iterations)
	require.Equal(t, res.InitialCost, res.Cost)
	require.Len(t, steps, 2)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := Annealer{
		Params: scenarioParams(),
		Progress: func(s Step) {
			if s.State == StateAnnealing {
				cancel()
			}
		},
	}
	res, err := a.Run(ctx, scenarioProblem())
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	require.Equal(t, 1, res.Iterations)
	require.NoError(t, res.Layout.Validate(scenarioProblem().Grid))
}

func TestRunRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		params func(*Params)
		prob   func(*Problem)
		code   errs.Code
	}{
		{"tmin zero", func(p *Params) { p.TMin = 0 }, nil, errs.ErrCodeInvalidConfig},
		{"tmin negative", func(p *Params) { p.TMin = -1 }, nil, errs.ErrCodeInvalidConfig},
		{"cooling one", func(p *Params) { p.Cooling = 1 }, nil, errs.ErrCodeInvalidConfig},
		{"no iterations", func(p *Params) { p.Iterations = 0 }, nil, errs.ErrCodeInvalidConfig},
		{"perturbation above one", func(p *Params) { p.Perturbation = 2 }, nil, errs.ErrCodeInvalidConfig},
		{"dmax zero", func(p *Params) { p.DMax = 0 }, nil, errs.ErrCodeInvalidConfig},
		{"too many nodes", nil, func(p *Problem) { p.Nodes = 10; p.Initial = nil }, errs.ErrCodeInfeasible},
		{"edge out of range", nil, func(p *Problem) { p.Edges = append(p.Edges, topology.Edge{From: 0, To: 9}) }, errs.ErrCodeInfeasible},
		{"initial wrong length", nil, func(p *Problem) { p.Initial = p.Initial[:2] }, errs.ErrCodeInvalidLayout},
		{"initial overlapping", nil, func(p *Problem) { p.Initial = grid.Layout{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}} }, errs.ErrCodeInvalidLayout},
		{"full grid", nil, func(p *Problem) { p.Nodes = 9; p.Initial = nil }, errs.ErrCodeNoVacancy},
		{"grid area wraps", nil, func(p *Problem) { p.Grid = grid.Grid{Width: 1<<62 + 1, Height: 4}; p.Initial = nil }, errs.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := scenarioParams()
			prob := scenarioProblem()
			if tt.params != nil {
				tt.params(&params)
			}
			if tt.prob != nil {
				tt.prob(&prob)
			}
			_, err := (&Annealer{Params: params}).Run(context.Background(), prob)
			require.Error(t, err)
			require.Equal(t, tt.code, errs.GetCode(err), "got %v", err)
		})
	}
}

func TestParamsLevels(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   int
	}{
		{"scenario", Params{TMax: 100, TMin: 10, Cooling: 0.9}, 22},
		{"half", Params{TMax: 8, TMin: 1, Cooling: 0.5}, 3},
		{"already frozen", Params{TMax: 1, TMin: 1, Cooling: 0.5}, 0},
		{"invalid cooling", Params{TMax: 100, TMin: 1, Cooling: 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.params.Levels())
		})
	}
}

func TestAccept(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	require.True(t, accept(10, 5, 1, rng), "improvements are always accepted")

	// A huge uphill step at low temperature is never accepted.
	for range 100 {
		require.False(t, accept(0, 1000, 0.01, rng))
	}

	// An equal-cost candidate has probability exp(0) = 1.
	for range 100 {
		require.True(t, accept(5, 5, 1, rng))
	}
}

func TestStateString(t *testing.T) {
	require.Equal(t, "initializing", StateInitializing.String())
	require.Equal(t, "annealing", StateAnnealing.String())
	require.Equal(t, "frozen", StateFrozen.String())
	require.Equal(t, "unknown", State(9).String())
}

func TestDefaultParamsValid(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())
}
