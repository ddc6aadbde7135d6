package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

//go:embed vehicles.yaml
var defaultTable []byte

var (
	ErrUnknownVehicle = errors.New("catalog: unknown vehicle")
	ErrInvalidSpec    = errors.New("catalog: invalid vehicle spec")
)

// VehicleSpec is the fixed physical description of one vehicle.
type VehicleSpec struct {
	Name     string  `yaml:"name"`
	Mass     float64 `yaml:"mass"`     // kg
	Engine   float64 `yaml:"engine"`   // engine acceleration constant, m/s²
	Length   float64 `yaml:"length"`   // m
	Width    float64 `yaml:"width"`    // m
	Height   float64 `yaml:"height"`   // m
	Drag     float64 `yaml:"drag"`     // cx
	Lift     float64 `yaml:"lift"`     // cz
	Friction float64 `yaml:"friction"` // mu
}

// Values returns the eight physical scalars in catalog column order.
func (v VehicleSpec) Values() [8]float64 {
	return [8]float64{v.Mass, v.Engine, v.Length, v.Width, v.Height, v.Drag, v.Lift, v.Friction}
}

// Catalog is a read-only name -> VehicleSpec table.
type Catalog struct {
	specs map[string]VehicleSpec
	names []string
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultTable)
		if err != nil {
			panic(fmt.Sprintf("built-in vehicle table: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// rawSpec uses pointers so a missing column is distinguishable from zero.
type rawSpec struct {
	Name     string   `yaml:"name"`
	Mass     *float64 `yaml:"mass"`
	Engine   *float64 `yaml:"engine"`
	Length   *float64 `yaml:"length"`
	Width    *float64 `yaml:"width"`
	Height   *float64 `yaml:"height"`
	Drag     *float64 `yaml:"drag"`
	Lift     *float64 `yaml:"lift"`
	Friction *float64 `yaml:"friction"`
}

type table struct {
	Vehicles []rawSpec `yaml:"vehicles"`
}

func Parse(data []byte) (*Catalog, error) {
	var tbl table
	if err := yaml.Unmarshal(data, &tbl); err != nil {
		return nil, err
	}
	if len(tbl.Vehicles) == 0 {
		return nil, fmt.Errorf("%w: no vehicles defined", ErrInvalidSpec)
	}

	c := &Catalog{specs: make(map[string]VehicleSpec, len(tbl.Vehicles))}
	for i, raw := range tbl.Vehicles {
		spec, err := raw.build()
		if err != nil {
			return nil, fmt.Errorf("vehicle %d: %w", i, err)
		}
		if _, dup := c.specs[spec.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidSpec, spec.Name)
		}
		c.specs[spec.Name] = spec
	}

	c.names = lo.Keys(c.specs)
	sort.Strings(c.names)
	return c, nil
}

func (r rawSpec) build() (VehicleSpec, error) {
	name := strings.ToLower(strings.TrimSpace(r.Name))
	if name == "" {
		return VehicleSpec{}, fmt.Errorf("%w: missing name", ErrInvalidSpec)
	}

	fields := []struct {
		key string
		val *float64
	}{
		{"mass", r.Mass}, {"engine", r.Engine}, {"length", r.Length}, {"width", r.Width},
		{"height", r.Height}, {"drag", r.Drag}, {"lift", r.Lift}, {"friction", r.Friction},
	}
	for _, f := range fields {
		if f.val == nil {
			return VehicleSpec{}, fmt.Errorf("%w: %s: missing %s", ErrInvalidSpec, name, f.key)
		}
		if *f.val < 0 {
			return VehicleSpec{}, fmt.Errorf("%w: %s: negative %s", ErrInvalidSpec, name, f.key)
		}
	}
	if *r.Mass == 0 {
		return VehicleSpec{}, fmt.Errorf("%w: %s: mass must be positive", ErrInvalidSpec, name)
	}

	return VehicleSpec{
		Name:     name,
		Mass:     *r.Mass,
		Engine:   *r.Engine,
		Length:   *r.Length,
		Width:    *r.Width,
		Height:   *r.Height,
		Drag:     *r.Drag,
		Lift:     *r.Lift,
		Friction: *r.Friction,
	}, nil
}

// Lookup returns a copy of the named spec.
func (c *Catalog) Lookup(name string) (VehicleSpec, error) {
	spec, ok := c.specs[name]
	if !ok {
		return VehicleSpec{}, fmt.Errorf("%w: %s", ErrUnknownVehicle, name)
	}
	return spec, nil
}

func (c *Catalog) Has(name string) bool {
	_, ok := c.specs[name]
	return ok
}

// Names returns the vehicle names in sorted order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

func (c *Catalog) Len() int { return len(c.names) }
