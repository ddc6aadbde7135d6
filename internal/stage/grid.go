package stage

import (
	"errors"
	"fmt"

	"github.com/san-kum/racesim/internal/integrators"
)

const (
	DefaultSamples = 1000
	DefaultSpan    = 3.7 // s
)

var ErrInvalidGrid = errors.New("stage: invalid time grid")

// Grid is the evenly spaced output grid a stage is sampled on, starting at
// t=0.
type Grid struct {
	Samples int     `yaml:"samples" mapstructure:"samples"`
	Span    float64 `yaml:"span" mapstructure:"span"`
}

func DefaultGrid() Grid {
	return Grid{Samples: DefaultSamples, Span: DefaultSpan}
}

// DefaultGrids returns the default grid for every stage.
func DefaultGrids() [4]Grid {
	return [4]Grid{DefaultGrid(), DefaultGrid(), DefaultGrid(), DefaultGrid()}
}

func (g Grid) Validate() error {
	if g.Samples < 2 {
		return fmt.Errorf("%w: need at least 2 samples, got %d", ErrInvalidGrid, g.Samples)
	}
	if !(g.Span > 0) {
		return fmt.Errorf("%w: span must be positive, got %g", ErrInvalidGrid, g.Span)
	}
	return nil
}

func (g Grid) Times() ([]float64, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return integrators.Linspace(0, g.Span, g.Samples), nil
}
