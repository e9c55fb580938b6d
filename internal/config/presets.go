package config

import "sort"

var Presets = map[string]map[string]*Config{
	"vertical": {
		"example": {
			Practical: "vertical", Mode: "example", Speed: 10,
		},
		"slow": {
			Practical: "vertical", Mode: "example", Speed: 5,
		},
		"diy": {
			Practical: "vertical", Mode: "diy", Speed: 10,
		},
		"moon": {
			Practical: "vertical", Mode: "diy", Speed: 10,
			Physics: PhysicsConfig{Gravity: 1.62},
		},
	},
	"ramp": {
		"example": {
			Practical: "ramp", Mode: "example", Speed: 10,
		},
		"slow": {
			Practical: "ramp", Mode: "example", Speed: 5,
		},
		"diy": {
			Practical: "ramp", Mode: "diy", Speed: 10,
		},
	},
	"planck": {
		"red": {
			Practical: "planck", Mode: "example", Speed: 10, LED: 700,
		},
		"blue": {
			Practical: "planck", Mode: "example", Speed: 10, LED: 450,
		},
		"diy": {
			Practical: "planck", Mode: "diy", Speed: 10, LED: 700,
		},
	},
}

// GetPreset returns a copy of the named preset with unset fields filled
// from DefaultConfig, or nil if there is no such preset.
func GetPreset(practical, preset string) *Config {
	practicalPresets, ok := Presets[practical]
	if !ok {
		return nil
	}
	p, ok := practicalPresets[preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Practical = p.Practical
	cfg.Mode = p.Mode
	if p.Speed != 0 {
		cfg.Speed = p.Speed
	}
	if p.LED != 0 {
		cfg.LED = p.LED
	}
	if p.Physics.Gravity != 0 {
		cfg.Physics.Gravity = p.Physics.Gravity
	}
	if p.Physics.Scale != 0 {
		cfg.Physics.Scale = p.Physics.Scale
	}
	return cfg
}

func ListPresets(practical string) []string {
	practicalPresets, ok := Presets[practical]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(practicalPresets))
	for name := range practicalPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
