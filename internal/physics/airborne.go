package physics

import (
	"math"

	"github.com/san-kum/racesim/internal/dynamo"
)

// Airborne is the jump: planar flight under drag and lift.
// State: [x, z, vx, vz].
type Airborne struct {
	Env    Environment
	Params Params
}

func NewAirborne(env Environment, p Params) *Airborne {
	return &Airborne{Env: env, Params: p}
}

func (s *Airborne) StateDim() int { return 4 }

func (s *Airborne) Derive(x dynamo.State, t float64) dynamo.State {
	vx, vz := x[2], x[3]
	speed := math.Hypot(vx, vz)

	rho := s.Env.AirDensity
	m2 := 2 * s.Params.Mass
	drag := rho * s.Params.FrontalArea * s.Params.Drag * speed
	lift := rho * s.Params.PlanformArea * s.Params.Lift * speed

	// drag opposes the velocity, lift acts along its normal
	ax := (-drag*vx - lift*vz) / m2
	az := -s.Env.Gravity + (-drag*vz+lift*vx)/m2

	return dynamo.State{vx, vz, ax, az}
}
