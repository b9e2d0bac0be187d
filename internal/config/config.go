package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gravlab/nbody/internal/gravity"
)

const (
	DefaultG           = 1.0
	DefaultDt          = 0.002
	DefaultSampleEvery = 10
)

// BodyConfig is one initial-condition tuple.
type BodyConfig struct {
	Mass float64 `yaml:"mass"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	VX   float64 `yaml:"vx"`
	VY   float64 `yaml:"vy"`
}

type Config struct {
	Name        string       `yaml:"name"`
	G           float64      `yaml:"g"`
	Dt          float64      `yaml:"dt"`
	Duration    float64      `yaml:"duration"`
	SampleEvery int          `yaml:"sample_every"`
	Seed        int64        `yaml:"seed"`
	Kernel      string       `yaml:"kernel"` // serial | parallel
	Strict      bool         `yaml:"strict"`
	Bodies      []BodyConfig `yaml:"bodies"`
}

// DefaultConfig is the figure-eight three-body preset.
func DefaultConfig() *Config {
	return GetPreset("figure8")
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		G:           DefaultG,
		Dt:          DefaultDt,
		SampleEvery: DefaultSampleEvery,
		Kernel:      "serial",
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// GravityBodies converts the configured initial conditions into
// simulation bodies.
func (c *Config) GravityBodies() []gravity.Body {
	bodies := make([]gravity.Body, len(c.Bodies))
	for i, b := range c.Bodies {
		bodies[i] = gravity.NewBody(b.Mass, b.X, b.Y, b.VX, b.VY)
	}
	return bodies
}
