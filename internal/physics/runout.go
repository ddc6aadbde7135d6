package physics

import (
	"github.com/san-kum/racesim/internal/dynamo"
)

// RunOut is the flat sprint to the line after landing. State: [x, v].
type RunOut struct {
	Env    Environment
	Params Params
}

func NewRunOut(env Environment, p Params) *RunOut {
	return &RunOut{Env: env, Params: p}
}

func (s *RunOut) StateDim() int { return 2 }

func (s *RunOut) Derive(x dynamo.State, t float64) dynamo.State {
	v := x[1]
	acc := s.Params.Engine +
		s.Params.dragFactor(s.Env, s.Params.FrontalArea)*v*v -
		s.Params.Friction*s.Env.Gravity

	return dynamo.State{v, acc}
}
