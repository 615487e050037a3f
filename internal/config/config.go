package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/odesolve/internal/dynamo"
)

const (
	DefaultExpression = "(1 - x**2) / (x * y)"
	DefaultX0         = 1.0
	DefaultXn         = 2.6
	DefaultY0         = 2.0
	DefaultH          = 0.1
	DefaultTheme      = "classic"
)

type Config struct {
	Name       string   `yaml:"name,omitempty"`
	Expression string   `yaml:"expression"`
	X0         float64  `yaml:"x0"`
	Xn         float64  `yaml:"xn"`
	Y0         float64  `yaml:"y0"`
	H          float64  `yaml:"h"`
	Methods    []string `yaml:"methods,omitempty"`
	Theme      string   `yaml:"theme,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Expression: DefaultExpression,
		X0:         DefaultX0,
		Xn:         DefaultXn,
		Y0:         DefaultY0,
		H:          DefaultH,
		Methods:    []string{"euler", "rk4"},
		Theme:      DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base, so keys missing from the
// file keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

func (c *Config) Problem() dynamo.Problem {
	return dynamo.Problem{X0: c.X0, Xn: c.Xn, Y0: c.Y0, H: c.H}
}

// Validate checks the scalar inputs. The expression is checked when it
// is compiled.
func (c *Config) Validate() error {
	if c.Expression == "" {
		return fmt.Errorf("config: expression is empty")
	}
	return c.Problem().Validate()
}

func (c *Config) Clone() *Config {
	cp := *c
	cp.Methods = append([]string(nil), c.Methods...)
	return &cp
}
