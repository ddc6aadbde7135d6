package metrics

import (
	"github.com/san-kum/racesim/internal/dynamo"
)

// Metric accumulates a scalar over the samples of one stage trajectory.
type Metric interface {
	Name() string
	Observe(x dynamo.State, t float64)
	Value() float64
	Reset()
}

// ObserveAll resets every metric and feeds it states[0..upto] inclusive.
// It returns the final values keyed by metric name.
func ObserveAll(ms []Metric, times []float64, states []dynamo.State, upto int) map[string]float64 {
	if upto >= len(states) {
		upto = len(states) - 1
	}

	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for i := 0; i <= upto; i++ {
			m.Observe(states[i], times[i])
		}
		out[m.Name()] = m.Value()
	}
	return out
}
