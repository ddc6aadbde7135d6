package physics

import (
	"math"

	"github.com/san-kum/racesim/internal/dynamo"
)

// InclineLaunch is the standing start up the ramp. State: [x, v].
type InclineLaunch struct {
	Env    Environment
	Params Params
}

func NewInclineLaunch(env Environment, p Params) *InclineLaunch {
	return &InclineLaunch{Env: env, Params: p}
}

func (s *InclineLaunch) StateDim() int { return 2 }

func (s *InclineLaunch) Derive(x dynamo.State, t float64) dynamo.State {
	v := x[1]
	g := s.Env.Gravity
	alpha := s.Env.Incline

	acc := g*math.Sin(alpha) -
		s.Params.Friction*g*math.Cos(alpha) +
		s.Params.dragFactor(s.Env, s.Params.FrontalArea)*v*v +
		s.Params.Engine

	return dynamo.State{v, acc}
}
