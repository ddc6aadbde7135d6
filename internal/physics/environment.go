package physics

import "math"

const (
	DefaultGravity    = 9.81
	DefaultAirDensity = 1.225
	DefaultRadius     = 6.0
)

// DefaultIncline is the ramp angle of the launch stage: 2 m of rise over
// the 31 m ramp.
var DefaultIncline = math.Asin(2.0 / 31.0)

// Environment holds the fixed constants every stage equation shares.
type Environment struct {
	Gravity    float64 `yaml:"gravity" mapstructure:"gravity"`
	AirDensity float64 `yaml:"air_density" mapstructure:"air_density"`
	Incline    float64 `yaml:"incline" mapstructure:"incline"`
	Radius     float64 `yaml:"radius" mapstructure:"radius"`
}

func DefaultEnvironment() Environment {
	return Environment{
		Gravity:    DefaultGravity,
		AirDensity: DefaultAirDensity,
		Incline:    DefaultIncline,
		Radius:     DefaultRadius,
	}
}

// Params are the vehicle coefficients one stage equation needs, already
// combined with the run's modifiers.
type Params struct {
	Mass         float64 // kg, including add-on mass
	Engine       float64 // m/s², boosted for the stage
	Drag         float64 // cx
	Lift         float64 // cz
	Friction     float64 // mu
	FrontalArea  float64 // m², width x height
	PlanformArea float64 // m², width x length plus wing area
}

// dragFactor is rho*cx*S/(2m), the coefficient of v² in the quadratic drag
// acceleration.
func (p Params) dragFactor(env Environment, area float64) float64 {
	return env.AirDensity * area * p.Drag / (2 * p.Mass)
}
