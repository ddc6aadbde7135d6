package stage

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/racesim/internal/dynamo"
	"github.com/san-kum/racesim/internal/integrators"
	"github.com/san-kum/racesim/internal/log"
	"github.com/san-kum/racesim/internal/metrics"
	"github.com/san-kum/racesim/internal/physics"
)

type Trajectory struct {
	Times  []float64
	States []dynamo.State
}

// Terminal is the first grid sample at which the stage's condition held.
// Position and velocity are in the stage's reported units.
type Terminal struct {
	Index    int
	Time     float64
	Position float64
	Velocity float64
}

// Curve is the reported position and velocity against time, truncated at the
// terminal sample when there is one.
type Curve struct {
	Times      []float64
	Positions  []float64
	Velocities []float64
}

type Outcome struct {
	Stage      ID
	Initial    dynamo.State
	Trajectory Trajectory
	Curve      Curve
	Terminal   *Terminal
	Metrics    map[string]float64
}

func (o *Outcome) Reached() bool { return o.Terminal != nil }

// Err is nil when the stage terminated and wraps ErrNotTerminated otherwise.
func (o *Outcome) Err() error {
	if o.Reached() {
		return nil
	}
	return fmt.Errorf("stage %s (%s): %w", o.Stage, o.Stage.Title(), ErrNotTerminated)
}

type Runner struct {
	Env        physics.Environment
	Integrator dynamo.AdaptiveIntegrator
	Solver     dynamo.Config
	Grids      [4]Grid
}

func NewRunner(env physics.Environment, solver dynamo.Config, grids [4]Grid) *Runner {
	return &Runner{
		Env:        env,
		Integrator: integrators.NewRK45(),
		Solver:     solver,
		Grids:      grids,
	}
}

// DefaultRunner uses the default environment, solver settings and grids.
func DefaultRunner() *Runner {
	return NewRunner(physics.DefaultEnvironment(), dynamo.DefaultConfig(), DefaultGrids())
}

// Run integrates stage id from x0 over the stage's grid and finds the first
// sample satisfying its terminal condition. A stage that never terminates is
// not an error here; check Outcome.Err. Integration failures are returned.
func (r *Runner) Run(id ID, p physics.Params, x0 dynamo.State) (*Outcome, error) {
	def := Lookup(id)

	times, err := r.Grids[id].Times()
	if err != nil {
		return nil, fmt.Errorf("stage %s: %w", id, err)
	}

	sys := def.System(r.Env, p)
	states, err := integrators.Solve(r.Integrator, sys, x0, times, r.Solver)
	if err != nil {
		return nil, fmt.Errorf("stage %s: %w", id, err)
	}

	out := &Outcome{
		Stage:      id,
		Initial:    x0.Clone(),
		Trajectory: Trajectory{Times: times, States: states},
	}

	last := len(states) - 1
	for i, x := range states {
		if def.Done(r.Env, x) {
			pos, vel := def.Report(r.Env, x)
			out.Terminal = &Terminal{Index: i, Time: times[i], Position: pos, Velocity: vel}
			last = i
			break
		}
	}

	out.Curve = r.curve(def, times, states, last)
	out.Metrics = metrics.ObserveAll(def.Metrics(r.Env), times, states, last)

	if out.Terminal != nil {
		log.Logger.Debug("stage terminated",
			zap.Stringer("stage", id),
			zap.Int("sample", out.Terminal.Index),
			zap.Float64("time", out.Terminal.Time),
			zap.Float64("position", out.Terminal.Position),
			zap.Float64("velocity", out.Terminal.Velocity))
	} else {
		log.Logger.Debug("stage did not terminate", zap.Stringer("stage", id), zap.Float64("span", times[len(times)-1]))
	}

	return out, nil
}

func (r *Runner) curve(def Definition, times []float64, states []dynamo.State, last int) Curve {
	c := Curve{
		Times:      times[:last+1],
		Positions:  make([]float64, last+1),
		Velocities: make([]float64, last+1),
	}
	for i := 0; i <= last; i++ {
		c.Positions[i], c.Velocities[i] = def.Report(r.Env, states[i])
	}
	return c
}
