package config

import (
	"sort"

	"github.com/san-kum/racesim/internal/resolve"
)

type Preset struct {
	Description string
	Selection   resolve.Selection
}

var Presets = map[string]*Preset{
	"jdm": {
		Description: "Japanese line-up",
		Selection:   resolve.Selection{Vehicles: []string{"supra", "rx_7", "skyline", "lancer"}},
	},
	"muscle": {
		Description: "American muscle",
		Selection:   resolve.Selection{Vehicles: []string{"dodge", "camaro"}},
	},
	"all": {
		Description: "the whole garage",
		Selection:   resolve.Selection{Vehicles: []string{"dodge", "supra", "camaro", "rx_7", "skyline", "lancer"}},
	},
	"loop-boost": {
		Description: "boost through the loop, full aero kit",
		Selection: resolve.Selection{
			Vehicles: []string{"skyline", "camaro"},
			Boost:    resolve.BoostB,
			Wing:     true,
			Skirt:    true,
		},
	},
	"launch": {
		Description: "boost off the line",
		Selection:   resolve.Selection{Vehicles: []string{"dodge", "supra"}, Boost: resolve.BoostA},
	},
}

// GetPreset returns a copy of the named preset's selection.
func GetPreset(name string) (resolve.Selection, bool) {
	p, ok := Presets[name]
	if !ok {
		return resolve.Selection{}, false
	}
	sel := p.Selection
	sel.Vehicles = append([]string(nil), p.Selection.Vehicles...)
	return sel, true
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
