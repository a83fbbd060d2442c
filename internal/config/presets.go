package config

import "sort"

var Presets = map[string]*Config{
	"classroom": {
		Speed: DefaultSpeed, Size: DefaultSize, Generator: "random",
		Low: DefaultLow, High: DefaultHigh, Theme: DefaultTheme,
	},
	"tiny": {
		Speed: MaxSpeed, Size: MinSize, Generator: "random",
		Low: DefaultLow, High: DefaultHigh, Theme: DefaultTheme,
	},
	"quick": {
		Speed: MinSpeed, Size: 20, Generator: "random",
		Low: DefaultLow, High: DefaultHigh, Theme: DefaultTheme,
	},
	"large": {
		Speed: MinSpeed, Size: MaxSize, Generator: "random",
		Low: DefaultLow, High: DefaultHigh, Theme: "ocean",
	},
	"duplicates": {
		Speed: 300, Size: 15, Generator: "few-unique",
		Low: DefaultLow, High: DefaultHigh, Theme: DefaultTheme,
	},
	"worst": {
		Speed: 300, Size: 15, Generator: "reversed",
		Low: DefaultLow, High: DefaultHigh, Theme: "sunset",
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
