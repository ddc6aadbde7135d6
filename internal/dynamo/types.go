package dynamo

import (
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// System is a first-order ODE dx/dt = f(x, t).
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

// AdaptiveIntegrator advances one trial step and proposes the next step
// size. A rejected step returns ErrStepRejected together with the smaller
// step to retry with.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, x State, t, dt float64, tol Tolerance) (State, float64, error)
}

// Tolerance is a mixed absolute/relative error bound applied per component.
type Tolerance struct {
	Abs float64 `yaml:"abs" mapstructure:"abs"`
	Rel float64 `yaml:"rel" mapstructure:"rel"`
}

type Config struct {
	Tolerance     Tolerance `yaml:"tolerance" mapstructure:"tolerance"`
	InitialDt     float64   `yaml:"initial_dt" mapstructure:"initial_dt"`
	MinDt         float64   `yaml:"min_dt" mapstructure:"min_dt"`
	MaxSteps      int       `yaml:"max_steps" mapstructure:"max_steps"`
	ValidateState bool      `yaml:"validate_state" mapstructure:"validate_state"`
}

func DefaultConfig() Config {
	return Config{
		Tolerance:     Tolerance{Abs: 1.49012e-8, Rel: 1.49012e-8},
		InitialDt:     1e-3,
		MinDt:         1e-12,
		MaxSteps:      500,
		ValidateState: true,
	}
}
