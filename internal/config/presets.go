package config

import (
	"math"
	"math/rand"
	"sort"
)

// Figure8Period is the orbital period of the Chencimer-Montgomery
// figure-eight choreography. The published initial conditions require
// G == 1; any other value breaks the periodicity.
const Figure8Period = 6.32591398

// Astronomical constants for the Earth-Moon presets.
const (
	earthMass  = 5.972e24
	moonMass   = 7.34767309e22
	earthMoonD = 384400
	gravSI     = 6.67408313131313e-11
)

func figure8() *Config {
	return &Config{
		Name:        "figure8",
		G:           1,
		Dt:          DefaultDt,
		Duration:    Figure8Period * 6,
		SampleEvery: DefaultSampleEvery,
		Kernel:      "serial",
		Bodies: []BodyConfig{
			{Mass: 1, X: -0.97000436, Y: 0.24208753, VX: 0.4662036850, VY: 0.4323657300},
			{Mass: 1, X: 0, Y: 0, VX: -0.933240737, VY: -0.86473146},
			{Mass: 1, X: 0.97000436, Y: -0.24208753, VX: 0.4662036850, VY: 0.4323657300},
		},
	}
}

// binary is two unit masses on a circular orbit about their barycenter,
// one full period long.
func binary() *Config {
	v := math.Sqrt(0.5)
	return &Config{
		Name:        "binary",
		G:           1,
		Dt:          0.0002,
		Duration:    2 * math.Pi / math.Sqrt2,
		SampleEvery: 100,
		Kernel:      "serial",
		Bodies: []BodyConfig{
			{Mass: 1, X: 0.5, Y: 0, VX: 0, VY: v},
			{Mass: 1, X: -0.5, Y: 0, VX: 0, VY: -v},
		},
	}
}

func earthMoon() *Config {
	return &Config{
		Name:        "earthmoon",
		G:           gravSI,
		Dt:          DefaultDt,
		Duration:    60,
		SampleEvery: DefaultSampleEvery,
		Kernel:      "serial",
		Bodies: []BodyConfig{
			{Mass: earthMass},
			{Mass: moonMass, Y: earthMoonD, VX: -31410},
		},
	}
}

// ring places n equal masses on a unit circle with the tangential
// speed that keeps the polygon rotating rigidly: the inward pull of
// the other vertices is (G m / 4R^2) * sum csc(k pi / n).
func ring(n int) *Config {
	const radius = 1.0
	lattice := 0.0
	for k := 1; k < n; k++ {
		lattice += 1 / math.Sin(float64(k)*math.Pi/float64(n))
	}
	accel := lattice / (4 * radius * radius)
	v := math.Sqrt(accel * radius)

	bodies := make([]BodyConfig, n)
	for i := range bodies {
		angle := 2 * math.Pi * float64(i) / float64(n)
		bodies[i] = BodyConfig{
			Mass: 1,
			X:    radius * math.Cos(angle),
			Y:    radius * math.Sin(angle),
			VX:   -v * math.Sin(angle),
			VY:   v * math.Cos(angle),
		}
	}
	return &Config{
		Name:        "ring",
		G:           1,
		Dt:          0.001,
		Duration:    10,
		SampleEvery: DefaultSampleEvery,
		Kernel:      "serial",
		Bodies:      bodies,
	}
}

// asteroids is the Earth-Moon pair plus a seeded cloud of minor
// bodies, for stress runs with larger N.
func asteroids(seed int64) *Config {
	cfg := earthMoon()
	cfg.Name = "asteroids"
	cfg.Seed = seed
	cfg.Kernel = "parallel"

	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < 50; i++ {
		cfg.Bodies = append(cfg.Bodies, BodyConfig{
			Mass: rng.Float64() * 1e8,
			X:    rng.NormFloat64()*2.5e5 - 2.5e5,
			Y:    rng.NormFloat64()*2.5e5 - 2.5e5,
			VX:   (rng.Float64()*2 - 1) * 1e5,
			VY:   (rng.Float64()*2 - 1) * 1e5,
		})
	}
	return cfg
}

var presets = map[string]func() *Config{
	"figure8":   figure8,
	"binary":    binary,
	"earthmoon": earthMoon,
	"ring":      func() *Config { return ring(6) },
	"asteroids": func() *Config { return asteroids(1) },
}

// GetPreset returns a named preset, or nil if it does not exist.
func GetPreset(name string) *Config {
	fn, ok := presets[name]
	if !ok {
		return nil
	}
	return fn()
}

// Ring returns the rotating-polygon preset for an arbitrary vertex
// count.
func Ring(n int) *Config { return ring(n) }

// Asteroids returns the Earth-Moon cloud preset with a given seed.
func Asteroids(seed int64) *Config { return asteroids(seed) }

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
