package config

import (
	"sort"
	"time"
)

var Presets = map[string]*Config{
	"quick": {
		Items: 20, MinDelay: 20 * time.Millisecond, MaxDelay: 80 * time.Millisecond, LogEvery: 5,
		Bar: BarConfig{Length: 40, SweepSpeed: 1, Title: "Logs:"},
	},
	"batch": {
		Items: DefaultItems, MinDelay: DefaultMinDelay, MaxDelay: DefaultMaxDelay, LogEvery: DefaultLogEvery,
		Bar: BarConfig{Length: DefaultBarLength, SweepSpeed: DefaultSweepSpeed, Title: "Logs:"},
	},
	"steady": {
		Items: 50, MinDelay: 60 * time.Millisecond, MaxDelay: 60 * time.Millisecond,
		Bar: BarConfig{Length: 60, SweepSpeed: 2, Title: "Steady run"},
	},
	"jitter": {
		Items: 60, MinDelay: 10 * time.Millisecond, MaxDelay: 400 * time.Millisecond, LogEvery: 15,
		Bar: BarConfig{Length: 60, SweepSpeed: 1.5, GraphHeight: 6, Title: "Item latency"},
	},
	"failing": {
		Items: 30, MinDelay: 30 * time.Millisecond, MaxDelay: 120 * time.Millisecond, LogEvery: 5, FailAt: 21,
		Bar: BarConfig{Length: 40, SweepSpeed: 1, Title: "Logs:"},
	},
}

// GetPreset returns a copy of the named preset, or nil if it does not exist.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
