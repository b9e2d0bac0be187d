package sim

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gravlab/nbody/internal/gravity"
)

// Stepper advances a body snapshot by one fixed step.
type Stepper interface {
	Step(k gravity.Kernel, bodies []gravity.Body, g, h float64) []gravity.Body
}

// Simulator drives a stepper across [0, Duration] and records the
// sampled trajectory. It owns no ambient state: everything a run needs
// arrives through Run.
type Simulator struct {
	kernel    gravity.Kernel
	stepper   Stepper
	observers []Observer
}

func New(kernel gravity.Kernel, stepper Stepper) *Simulator {
	return &Simulator{kernel: kernel, stepper: stepper}
}

func (s *Simulator) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// Run integrates bodies from t=0 until t accumulates past
// cfg.Duration. Termination follows the accumulated float t, not an
// integer counter, so the exact iteration count for a non-dividing Dt
// inherits the usual float drift.
func (s *Simulator) Run(ctx context.Context, bodies []gravity.Body, cfg Config) (*Result, error) {
	if err := validate(bodies, cfg); err != nil {
		return nil, err
	}

	total := int(math.Ceil(cfg.Duration / cfg.Dt))
	result := &Result{
		Snapshots: make([]Snapshot, 0, total/cfg.SampleEvery+1),
		Times:     make([]float64, 0, total/cfg.SampleEvery+1),
	}

	state := gravity.CloneBodies(bodies)
	initialEnergy := gravity.Energy(state, cfg.G)

	start := time.Now()
	t := 0.0
	step := 0

	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		state = s.stepper.Step(s.kernel, state, cfg.G, cfg.Dt)
		t += cfg.Dt
		step++

		if cfg.Strict && !gravity.Finite(state) {
			result.Errors = append(result.Errors,
				SimError{Step: step, Time: t, Message: "non-finite state (NaN/Inf)"})
			break
		}

		if step%cfg.SampleEvery == 0 {
			result.Snapshots = append(result.Snapshots, snapshot(state))
			result.Times = append(result.Times, t)
			for _, o := range s.observers {
				o.OnSample(step, total, t, state)
			}
		}
	}

	result.Elapsed = time.Since(start)
	result.Final = state
	result.StepsTaken = step
	if secs := result.Elapsed.Seconds(); secs > 0 {
		result.StepsPerSec = float64(step) / secs
	}

	finalEnergy := gravity.Energy(state, cfg.G)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	return result, nil
}

func snapshot(bodies []gravity.Body) Snapshot {
	s := make(Snapshot, len(bodies))
	for i, b := range bodies {
		s[i] = Point{X: b.X, Y: b.Y}
	}
	return s
}

func validate(bodies []gravity.Body, cfg Config) error {
	if len(bodies) == 0 {
		return ErrNoBodies
	}
	for i, b := range bodies {
		if b.Mass < 0 {
			return fmt.Errorf("%w: body %d has mass %g", ErrNegativeMass, i, b.Mass)
		}
	}
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: got %g", ErrBadTimestep, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: got %g", ErrBadDuration, cfg.Duration)
	}
	if cfg.SampleEvery < 1 {
		return fmt.Errorf("%w: got %d", ErrBadStride, cfg.SampleEvery)
	}
	return nil
}
