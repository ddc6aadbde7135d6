package integrators

import (
	"errors"
	"math"

	"github.com/san-kum/racesim/internal/dynamo"
)

// Solve integrates sys from x0 at grid[0] and returns the state at every
// grid sample. The integrator picks its own internal steps and always lands
// exactly on each sample.
func Solve(integ dynamo.AdaptiveIntegrator, sys dynamo.System, x0 dynamo.State, grid []float64, cfg dynamo.Config) ([]dynamo.State, error) {
	if len(grid) == 0 {
		return nil, dynamo.ErrInvalidGrid
	}
	if len(x0) != sys.StateDim() {
		return nil, dynamo.ErrDimensionMismatch
	}
	if cfg.ValidateState && !x0.IsValid() {
		return nil, &dynamo.IntegrationError{Sample: 0, Time: grid[0], State: x0.Clone(), Wrapped: dynamo.ErrInvalidState}
	}

	states := make([]dynamo.State, len(grid))
	states[0] = x0.Clone()

	x := x0.Clone()
	t := grid[0]
	dt := cfg.InitialDt

	for i := 1; i < len(grid); i++ {
		target := grid[i]
		if !(target > grid[i-1]) {
			return nil, dynamo.ErrInvalidGrid
		}

		steps := 0
		for t < target {
			if steps >= cfg.MaxSteps {
				return nil, &dynamo.IntegrationError{Sample: i, Time: t, State: x.Clone(), Wrapped: dynamo.ErrStepBudget}
			}
			steps++

			h := dt
			clamped := h >= target-t
			if clamped {
				h = target - t
			}

			xNew, dtNext, err := integ.StepAdaptive(sys, x, t, h, cfg.Tolerance)
			if errors.Is(err, dynamo.ErrStepRejected) {
				if dtNext < cfg.MinDt {
					return nil, &dynamo.IntegrationError{Sample: i, Time: t, State: x.Clone(), Wrapped: dynamo.ErrStepTooSmall}
				}
				dt = dtNext
				continue
			}
			if err != nil {
				return nil, &dynamo.IntegrationError{Sample: i, Time: t, State: x.Clone(), Wrapped: err}
			}
			if cfg.ValidateState && !xNew.IsValid() {
				return nil, &dynamo.IntegrationError{Sample: i, Time: t + h, State: xNew, Wrapped: dynamo.ErrInvalidState}
			}

			x = xNew
			if clamped {
				t = target
				// a step shortened to hit the sample says little about the
				// step size the next interval can afford
				dt = math.Max(dt, dtNext)
			} else {
				t += h
				dt = dtNext
			}
		}

		states[i] = x.Clone()
	}

	return states, nil
}

// Linspace returns n evenly spaced samples over [start, stop].
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	grid := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range grid {
		grid[i] = start + float64(i)*step
	}
	grid[n-1] = stop
	return grid
}
