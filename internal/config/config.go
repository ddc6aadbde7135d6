package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/racesim/internal/dynamo"
	"github.com/san-kum/racesim/internal/physics"
	"github.com/san-kum/racesim/internal/resolve"
	"github.com/san-kum/racesim/internal/stage"
)

const (
	DefaultChartWidth  = 48
	DefaultChartHeight = 12
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Selection   resolve.Selection   `yaml:"selection" mapstructure:"selection"`
	Catalog     string              `yaml:"catalog,omitempty" mapstructure:"catalog"`
	Environment physics.Environment `yaml:"environment" mapstructure:"environment"`
	Solver      dynamo.Config       `yaml:"solver" mapstructure:"solver"`
	Grids       GridsConfig         `yaml:"grids" mapstructure:"grids"`
	Chart       ChartConfig         `yaml:"chart" mapstructure:"chart"`
}

// GridsConfig holds one output grid per stage.
type GridsConfig struct {
	A stage.Grid `yaml:"a" mapstructure:"a"`
	B stage.Grid `yaml:"b" mapstructure:"b"`
	C stage.Grid `yaml:"c" mapstructure:"c"`
	D stage.Grid `yaml:"d" mapstructure:"d"`
}

type ChartConfig struct {
	Disabled bool   `yaml:"disabled" mapstructure:"disabled"`
	Width    int    `yaml:"width" mapstructure:"width"`
	Height   int    `yaml:"height" mapstructure:"height"`
	PNG      string `yaml:"png,omitempty" mapstructure:"png"`
}

func DefaultConfig() *Config {
	grid := stage.DefaultGrid()
	return &Config{
		Environment: physics.DefaultEnvironment(),
		Solver:      dynamo.DefaultConfig(),
		Grids:       GridsConfig{A: grid, B: grid, C: grid, D: grid},
		Chart: ChartConfig{
			Width:  DefaultChartWidth,
			Height: DefaultChartHeight,
		},
	}
}

// Load reads a yaml run configuration through viper on top of
// DefaultConfig, so a file only needs the keys it changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg := DefaultConfig()
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(cfg, hook); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (g GridsConfig) Array() [4]stage.Grid {
	return [4]stage.Grid{g.A, g.B, g.C, g.D}
}

func (c *Config) Validate() error {
	for i, g := range c.Grids.Array() {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("grid %s: %w", stage.All[i], err)
		}
	}
	if c.Solver.MaxSteps <= 0 {
		return fmt.Errorf("%w: solver max_steps must be positive, got %d", ErrInvalidConfig, c.Solver.MaxSteps)
	}
	if !(c.Solver.InitialDt > 0) || !(c.Solver.MinDt > 0) {
		return fmt.Errorf("%w: solver step sizes must be positive", ErrInvalidConfig)
	}
	if !(c.Solver.Tolerance.Abs > 0) || !(c.Solver.Tolerance.Rel >= 0) {
		return fmt.Errorf("%w: solver tolerance needs abs > 0 and rel >= 0", ErrInvalidConfig)
	}
	if !(c.Environment.Radius > 0) {
		return fmt.Errorf("%w: corner radius must be positive", ErrInvalidConfig)
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("%w: chart size must be positive", ErrInvalidConfig)
	}
	return nil
}

// Runner builds the stage runner this configuration describes.
func (c *Config) Runner() *stage.Runner {
	return stage.NewRunner(c.Environment, c.Solver, c.Grids.Array())
}
