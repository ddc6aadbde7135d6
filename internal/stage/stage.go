package stage

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/racesim/internal/dynamo"
	"github.com/san-kum/racesim/internal/metrics"
	"github.com/san-kum/racesim/internal/physics"
)

// ErrNotTerminated is reported when no grid sample satisfies a stage's
// terminal condition.
var ErrNotTerminated = errors.New("stage: terminal condition never reached")

const (
	FinishA   = 31.0 // m, top of the ramp
	LoopAngle = 2 * math.Pi
	FinishD   = 10.0 // m, run-out length
)

// Start of the jump relative to the loop exit.
const (
	JumpStartX = -9.0
	JumpStartZ = 1.0
)

type ID int

const (
	A ID = iota
	B
	C
	D
)

var All = []ID{A, B, C, D}

func (id ID) String() string {
	switch id {
	case A:
		return "A"
	case B:
		return "B"
	case C:
		return "C"
	case D:
		return "D"
	default:
		return fmt.Sprintf("ID(%d)", int(id))
	}
}

func (id ID) Title() string {
	switch id {
	case A:
		return "incline launch"
	case B:
		return "cornering"
	case C:
		return "airborne"
	case D:
		return "run-out"
	default:
		return id.String()
	}
}

// Index is the zero-based position of the stage in the run order.
func (id ID) Index() int { return int(id) }

func (id ID) Valid() bool { return id >= A && id <= D }

// Definition binds a stage to its equation, its terminal predicate, and the
// way its state is reported as linear position and velocity.
type Definition struct {
	ID      ID
	System  func(env physics.Environment, p physics.Params) dynamo.System
	Done    func(env physics.Environment, x dynamo.State) bool
	Report  func(env physics.Environment, x dynamo.State) (pos, vel float64)
	Metrics func(env physics.Environment) []metrics.Metric
}

var definitions = [...]Definition{
	A: {
		ID: A,
		System: func(env physics.Environment, p physics.Params) dynamo.System {
			return physics.NewInclineLaunch(env, p)
		},
		Done:   func(_ physics.Environment, x dynamo.State) bool { return x[0] >= FinishA },
		Report: linear,
		Metrics: func(physics.Environment) []metrics.Metric {
			return []metrics.Metric{metrics.NewPeakSpeed(velocity)}
		},
	},
	B: {
		ID: B,
		System: func(env physics.Environment, p physics.Params) dynamo.System {
			return physics.NewCornering(env, p)
		},
		Done: func(_ physics.Environment, x dynamo.State) bool { return x[0] >= LoopAngle },
		// arc length and tangential speed
		Report: func(env physics.Environment, x dynamo.State) (float64, float64) {
			return x[0] * env.Radius, x[1] * env.Radius
		},
		Metrics: func(env physics.Environment) []metrics.Metric {
			return []metrics.Metric{metrics.NewPeakSpeed(func(x dynamo.State) float64 {
				return x[1] * env.Radius
			})}
		},
	},
	C: {
		ID: C,
		System: func(env physics.Environment, p physics.Params) dynamo.System {
			return physics.NewAirborne(env, p)
		},
		Done: func(_ physics.Environment, x dynamo.State) bool { return x[1] <= 0 },
		Report: func(_ physics.Environment, x dynamo.State) (float64, float64) {
			return x[0], x[2]
		},
		Metrics: func(physics.Environment) []metrics.Metric {
			return []metrics.Metric{
				metrics.NewPeakSpeed(func(x dynamo.State) float64 { return x[2:4].Norm() }),
				metrics.NewApex(1),
			}
		},
	},
	D: {
		ID: D,
		System: func(env physics.Environment, p physics.Params) dynamo.System {
			return physics.NewRunOut(env, p)
		},
		Done:   func(_ physics.Environment, x dynamo.State) bool { return x[0] >= FinishD },
		Report: linear,
		Metrics: func(physics.Environment) []metrics.Metric {
			return []metrics.Metric{metrics.NewPeakSpeed(velocity)}
		},
	},
}

func linear(_ physics.Environment, x dynamo.State) (float64, float64) { return x[0], x[1] }

func velocity(x dynamo.State) float64 { return x[1] }

// Lookup returns the definition of a stage. It panics on an unknown ID.
func Lookup(id ID) Definition {
	if !id.Valid() {
		panic(fmt.Sprintf("stage: unknown stage %d", int(id)))
	}
	return definitions[id]
}
