package physics

import (
	"math"
	"testing"

	"github.com/san-kum/racesim/internal/dynamo"
)

func dodgeParams() Params {
	return Params{
		Mass:         1760,
		Engine:       5.1,
		Drag:         0.38,
		Lift:         0.3,
		Friction:     0.1,
		FrontalArea:  1.95 * 1.35,
		PlanformArea: 1.95 * 5.28,
	}
}

func TestStageDimensions(t *testing.T) {
	env := DefaultEnvironment()
	p := dodgeParams()

	tests := []struct {
		name string
		sys  dynamo.System
		dim  int
	}{
		{"incline", NewInclineLaunch(env, p), 2},
		{"cornering", NewCornering(env, p), 2},
		{"airborne", NewAirborne(env, p), 4},
		{"runout", NewRunOut(env, p), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.sys.StateDim() != tt.dim {
				t.Errorf("expected state dim %d, got %d", tt.dim, tt.sys.StateDim())
			}
			x := make(dynamo.State, tt.dim)
			if got := len(tt.sys.Derive(x, 0)); got != tt.dim {
				t.Errorf("expected derivative dim %d, got %d", tt.dim, got)
			}
		})
	}
}

func TestDefaultIncline(t *testing.T) {
	if math.Abs(math.Sin(DefaultIncline)-2.0/31.0) > 1e-12 {
		t.Errorf("expected sin(incline) = 2/31, got %f", math.Sin(DefaultIncline))
	}
}

func TestInclineLaunchAtRest(t *testing.T) {
	env := DefaultEnvironment()
	p := dodgeParams()
	s := NewInclineLaunch(env, p)

	dx := s.Derive(dynamo.State{0, 0}, 0)

	expected := env.Gravity*math.Sin(env.Incline) - p.Friction*env.Gravity*math.Cos(env.Incline) + p.Engine
	if dx[0] != 0 {
		t.Errorf("expected zero velocity at rest, got %f", dx[0])
	}
	if math.Abs(dx[1]-expected) > 1e-12 {
		t.Errorf("expected acceleration %f, got %f", expected, dx[1])
	}
}

func TestInclineLaunchDragTerm(t *testing.T) {
	env := DefaultEnvironment()
	p := dodgeParams()
	s := NewInclineLaunch(env, p)

	v := 20.0
	still := s.Derive(dynamo.State{0, 0}, 0)[1]
	moving := s.Derive(dynamo.State{0, v}, 0)[1]

	want := env.AirDensity * p.FrontalArea * p.Drag * v * v / (2 * p.Mass)
	if math.Abs((moving-still)-want) > 1e-12 {
		t.Errorf("expected drag contribution %f, got %f", want, moving-still)
	}
}

func TestCorneringDerivative(t *testing.T) {
	env := DefaultEnvironment()
	p := dodgeParams()
	s := NewCornering(env, p)

	omega := 2.5
	dx := s.Derive(dynamo.State{0, omega}, 0)

	r := env.Radius
	damping := -p.Friction - p.Drag*p.FrontalArea*env.AirDensity*r/(2*p.Mass)
	want := omega*omega*damping - env.Gravity*(1+p.Friction)/r + p.Engine/r

	if dx[0] != omega {
		t.Errorf("expected dtheta = %f, got %f", omega, dx[0])
	}
	if math.Abs(dx[1]-want) > 1e-12 {
		t.Errorf("expected domega = %f, got %f", want, dx[1])
	}
}

func TestAirborneFreeFall(t *testing.T) {
	env := DefaultEnvironment()
	s := NewAirborne(env, dodgeParams())

	dx := s.Derive(dynamo.State{-9, 1, 0, 0}, 0)

	if dx[2] != 0 {
		t.Errorf("expected no horizontal acceleration at rest, got %f", dx[2])
	}
	if math.Abs(dx[3]+env.Gravity) > 1e-12 {
		t.Errorf("expected gravity only, got %f", dx[3])
	}
}

func TestAirborneDragAndLift(t *testing.T) {
	env := DefaultEnvironment()
	p := dodgeParams()
	s := NewAirborne(env, p)

	vx := 15.0
	dx := s.Derive(dynamo.State{0, 1, vx, 0}, 0)

	wantAx := -env.AirDensity * p.FrontalArea * p.Drag * vx * vx / (2 * p.Mass)
	wantAz := -env.Gravity + env.AirDensity*p.PlanformArea*p.Lift*vx*vx/(2*p.Mass)

	if dx[0] != vx || dx[1] != 0 {
		t.Errorf("expected position derivatives (%f, 0), got (%f, %f)", vx, dx[0], dx[1])
	}
	if math.Abs(dx[2]-wantAx) > 1e-12 {
		t.Errorf("expected ax %f, got %f", wantAx, dx[2])
	}
	if math.Abs(dx[3]-wantAz) > 1e-12 {
		t.Errorf("expected az %f, got %f", wantAz, dx[3])
	}
	if dx[3] <= -env.Gravity {
		t.Error("lift should reduce the net downward acceleration")
	}
}

func TestRunOutDerivative(t *testing.T) {
	env := DefaultEnvironment()
	p := dodgeParams()
	s := NewRunOut(env, p)

	v := 10.0
	dx := s.Derive(dynamo.State{3, v}, 0)

	want := p.Engine + env.AirDensity*p.FrontalArea*v*v*p.Drag/(2*p.Mass) - p.Friction*env.Gravity
	if math.Abs(dx[1]-want) > 1e-12 {
		t.Errorf("expected acceleration %f, got %f", want, dx[1])
	}
}

func TestEquationsArePure(t *testing.T) {
	env := DefaultEnvironment()
	s := NewAirborne(env, dodgeParams())
	x := dynamo.State{-9, 1, 17, -2}

	first := s.Derive(x, 0.3)
	second := s.Derive(x, 0.3)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("component %d differs between calls: %v vs %v", i, first[i], second[i])
		}
	}
	if x[0] != -9 || x[3] != -2 {
		t.Error("Derive mutated its input state")
	}
}
