package physics

import (
	"math"

	"github.com/san-kum/racesim/internal/dynamo"
)

// Cornering is the loop of radius Env.Radius reduced to its angle.
// State: [theta, omega].
type Cornering struct {
	Env    Environment
	Params Params
}

func NewCornering(env Environment, p Params) *Cornering {
	return &Cornering{Env: env, Params: p}
}

func (s *Cornering) StateDim() int { return 2 }

func (s *Cornering) Derive(x dynamo.State, t float64) dynamo.State {
	theta, omega := x[0], x[1]
	r := s.Env.Radius
	g := s.Env.Gravity
	mu := s.Params.Friction

	damping := -mu - s.Params.dragFactor(s.Env, s.Params.FrontalArea)*r
	alpha := omega*omega*damping -
		(math.Sin(theta)+math.Cos(theta))*g*(1+mu)/r +
		s.Params.Engine/r

	return dynamo.State{omega, alpha}
}
