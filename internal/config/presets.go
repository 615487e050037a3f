package config

import "sort"

// Presets are named problems shipped with the tool.
var Presets = map[string]*Config{
	"lab": {
		Expression: DefaultExpression, X0: 1.0, Xn: 2.6, Y0: 2.0, H: 0.1,
	},
	"growth": {
		Expression: "y", X0: 0, Xn: 1, Y0: 1, H: 0.1,
	},
	"singular": {
		Expression: "1 / x", X0: -1, Xn: 1, Y0: 0, H: 0.5,
	},
	"gaussian": {
		Expression: "-2 * x * y", X0: 0, Xn: 2, Y0: 1, H: 0.1,
	},
	"oscillating": {
		Expression: "cos(x) - y", X0: 0, Xn: 10, Y0: 0, H: 0.25,
	},
	"logistic": {
		Expression: "y * (1 - y)", X0: 0, Xn: 8, Y0: 0.05, H: 0.5,
	},
	"decay": {
		Expression: "-15 * y", X0: 0, Xn: 1, Y0: 1, H: 0.1,
	},
}

// GetPreset returns a copy of the named preset with defaults filled in.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := p.Clone()
	cfg.Name = name
	if len(cfg.Methods) == 0 {
		cfg.Methods = []string{"euler", "rk4"}
	}
	if cfg.Theme == "" {
		cfg.Theme = DefaultTheme
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
