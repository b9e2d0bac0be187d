package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/gravlab/nbody/internal/gravity"
)

// Setup precondition failures, reported before the loop starts.
var (
	ErrNoBodies     = errors.New("sim: no bodies")
	ErrNegativeMass = errors.New("sim: negative mass")
	ErrBadTimestep  = errors.New("sim: timestep must be positive")
	ErrBadDuration  = errors.New("sim: duration must be positive")
	ErrBadStride    = errors.New("sim: sample stride must be at least 1")
)

// Point is one sampled body position.
type Point struct {
	X, Y float64
}

// Snapshot is the positions of every body at one sampled step, in
// body order.
type Snapshot []Point

// Config holds the parameters of one run. They are read once at
// startup and never re-read mid-run.
type Config struct {
	G           float64
	Dt          float64
	Duration    float64
	SampleEvery int
	Seed        int64

	// Strict stops the run as soon as a step produces NaN or Inf
	// instead of letting it propagate.
	Strict bool
}

func DefaultConfig() Config {
	return Config{
		G:           1.0,
		Dt:          0.002,
		Duration:    10.0,
		SampleEvery: 10,
	}
}

// Result is what a run hands to its consumers: the sampled trajectory
// plus the final body states and throughput figures.
type Result struct {
	Snapshots   []Snapshot
	Times       []float64
	Final       []gravity.Body
	StepsTaken  int
	Elapsed     time.Duration
	StepsPerSec float64
	EnergyDrift float64
	Errors      []error
}

// Describe returns the formatted final body states, one line per body.
func (r *Result) Describe() []string {
	lines := make([]string, len(r.Final))
	for i, b := range r.Final {
		lines[i] = b.String()
	}
	return lines
}

// Observer is notified at every sampled step.
type Observer interface {
	OnSample(step, total int, t float64, bodies []gravity.Body)
}

// SimError marks a failure inside the loop, tagged with when it
// happened.
type SimError struct {
	Step    int
	Time    float64
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
