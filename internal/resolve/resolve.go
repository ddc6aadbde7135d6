package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/san-kum/racesim/internal/catalog"
	"github.com/san-kum/racesim/internal/log"
	"github.com/san-kum/racesim/internal/physics"
)

const (
	BoostFactor = 1.3

	WingMass = 30.0
	WingLift = 1.1
	WingArea = 0.8

	SkirtMass = 15.0
	SkirtDrag = 0.95
)

var (
	ErrUnknownVehicle = errors.New("resolve: unknown vehicle")
	ErrNoVehicles     = errors.New("resolve: no vehicles selected")
	ErrInvalidBoost   = errors.New("resolve: invalid boost stage")
)

// Selection is the validated run choice.
type Selection struct {
	Vehicles []string `yaml:"vehicles" mapstructure:"vehicles"`
	Boost    Boost    `yaml:"boost" mapstructure:"boost"`
	Wing     bool     `yaml:"wing" mapstructure:"wing"`
	Skirt    bool     `yaml:"skirt" mapstructure:"skirt"`
}

// Modifiers apply identically to every vehicle of a run.
type Modifiers struct {
	MassPenalty float64
	DragFactor  float64
	LiftFactor  float64
	LateralArea float64
	Boost       [4]float64
}

func NeutralModifiers() Modifiers {
	return Modifiers{
		DragFactor: 1,
		LiftFactor: 1,
		Boost:      [4]float64{1, 1, 1, 1},
	}
}

func (s Selection) Modifiers() Modifiers {
	m := NeutralModifiers()
	if i, ok := s.Boost.Stage(); ok {
		m.Boost[i] = BoostFactor
	}
	if s.Wing {
		m.MassPenalty += WingMass
		m.LiftFactor = WingLift
		m.LateralArea = WingArea
	}
	if s.Skirt {
		m.MassPenalty += SkirtMass
		m.DragFactor = SkirtDrag
	}
	return m
}

// ResolvedVehicle is a copy of a catalog spec bound to the run's modifiers.
type ResolvedVehicle struct {
	Spec catalog.VehicleSpec
	Mods Modifiers
}

func (v ResolvedVehicle) Name() string      { return v.Spec.Name }
func (v ResolvedVehicle) Mass() float64     { return v.Spec.Mass + v.Mods.MassPenalty }
func (v ResolvedVehicle) Drag() float64     { return v.Spec.Drag * v.Mods.DragFactor }
func (v ResolvedVehicle) Lift() float64     { return v.Spec.Lift * v.Mods.LiftFactor }
func (v ResolvedVehicle) Friction() float64 { return v.Spec.Friction }

// Engine returns the engine constant for the zero-based stage index.
func (v ResolvedVehicle) Engine(stage int) float64 {
	return v.Spec.Engine * v.Mods.Boost[stage]
}

func (v ResolvedVehicle) FrontalArea() float64 {
	return v.Spec.Width * v.Spec.Height
}

func (v ResolvedVehicle) PlanformArea() float64 {
	return v.Spec.Width*v.Spec.Length + v.Mods.LateralArea
}

// Params returns the equation coefficients for the zero-based stage index.
func (v ResolvedVehicle) Params(stage int) physics.Params {
	return physics.Params{
		Mass:         v.Mass(),
		Engine:       v.Engine(stage),
		Drag:         v.Drag(),
		Lift:         v.Lift(),
		Friction:     v.Friction(),
		FrontalArea:  v.FrontalArea(),
		PlanformArea: v.PlanformArea(),
	}
}

type Resolution struct {
	Selection Selection
	Modifiers Modifiers
	Vehicles  []ResolvedVehicle
}

// Resolve validates sel against cat and binds every selected vehicle to the
// run's modifiers. Catalog entries are copied, never referenced.
func Resolve(sel Selection, cat *catalog.Catalog) (*Resolution, error) {
	names, err := validateNames(sel.Vehicles, cat)
	if err != nil {
		return nil, err
	}
	sel.Vehicles = names

	mods := sel.Modifiers()
	res := &Resolution{
		Selection: sel,
		Modifiers: mods,
		Vehicles:  make([]ResolvedVehicle, 0, len(names)),
	}
	for _, name := range names {
		spec, err := cat.Lookup(name)
		if err != nil {
			return nil, err
		}
		res.Vehicles = append(res.Vehicles, ResolvedVehicle{Spec: spec, Mods: mods})
	}
	return res, nil
}

func validateNames(names []string, cat *catalog.Catalog) ([]string, error) {
	clean := lo.Uniq(lo.Map(names, func(n string, _ int) string {
		return strings.ToLower(strings.TrimSpace(n))
	}))
	if len(clean) == 0 || (len(clean) == 1 && clean[0] == "") {
		return nil, ErrNoVehicles
	}

	unknown := lo.Reject(clean, func(n string, _ int) bool { return cat.Has(n) })
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s (choose from %s)", ErrUnknownVehicle,
			strings.Join(lo.Map(unknown, func(n string, _ int) string { return fmt.Sprintf("%q", n) }), ", "),
			strings.Join(cat.Names(), ", "))
	}
	return clean, nil
}

// ParseVehicles splits a comma-separated answer. Every token must name a
// catalog entry; nothing is dropped silently.
func ParseVehicles(input string, cat *catalog.Catalog) ([]string, error) {
	return validateNames(strings.Split(input, ","), cat)
}

// ParseAnswer reads a oui/non prompt answer. An empty answer declines.
// ok is false for anything unrecognized, which also declines.
func ParseAnswer(answer string) (yes bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "oui":
		return true, true
	case "non", "":
		return false, true
	default:
		return false, false
	}
}

// Answers are the raw prompt responses of one session.
type Answers struct {
	Vehicles string
	Boost    string
	Wing     string
	Skirt    string
}

// Selection turns raw answers into a Selection. An invalid vehicle list is
// an error; invalid boost or add-on answers are logged and fall back to
// their neutral choice.
func (a Answers) Selection(cat *catalog.Catalog) (Selection, error) {
	names, err := ParseVehicles(a.Vehicles, cat)
	if err != nil {
		return Selection{}, err
	}

	boost, ok := ParseBoost(a.Boost)
	if !ok {
		log.Logger.Warn("invalid boost choice, boost disabled", zap.String("answer", a.Boost))
	}
	wing, ok := ParseAnswer(a.Wing)
	if !ok {
		log.Logger.Warn("invalid answer, no wing fitted", zap.String("answer", a.Wing))
	}
	skirt, ok := ParseAnswer(a.Skirt)
	if !ok {
		log.Logger.Warn("invalid answer, no skirt fitted", zap.String("answer", a.Skirt))
	}

	return Selection{Vehicles: names, Boost: boost, Wing: wing, Skirt: skirt}, nil
}
