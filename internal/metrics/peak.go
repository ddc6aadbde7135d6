package metrics

import (
	"math"

	"github.com/san-kum/racesim/internal/dynamo"
)

const (
	PeakSpeedName = "peak_speed"
	ApexName      = "apex"
)

// SpeedFunc extracts a linear speed in m/s from a stage state.
type SpeedFunc func(x dynamo.State) float64

type PeakSpeed struct {
	name  string
	speed SpeedFunc
	peak  float64
	seen  bool
}

func NewPeakSpeed(speed SpeedFunc) *PeakSpeed {
	return &PeakSpeed{
		name:  PeakSpeedName,
		speed: speed,
	}
}

func (p *PeakSpeed) Name() string {
	return p.name
}

func (p *PeakSpeed) Observe(x dynamo.State, t float64) {
	v := math.Abs(p.speed(x))
	if !p.seen || v > p.peak {
		p.peak = v
		p.seen = true
	}
}

func (p *PeakSpeed) Value() float64 {
	return p.peak
}

func (p *PeakSpeed) Reset() {
	p.peak = 0
	p.seen = false
}

// Apex tracks the highest value of one state component, e.g. the height of
// a jump.
type Apex struct {
	name      string
	component int
	max       float64
	seen      bool
}

func NewApex(component int) *Apex {
	return &Apex{
		name:      ApexName,
		component: component,
	}
}

func (a *Apex) Name() string {
	return a.name
}

func (a *Apex) Observe(x dynamo.State, t float64) {
	if a.component >= len(x) {
		return
	}
	if !a.seen || x[a.component] > a.max {
		a.max = x[a.component]
		a.seen = true
	}
}

func (a *Apex) Value() float64 {
	return a.max
}

func (a *Apex) Reset() {
	a.max = 0
	a.seen = false
}
