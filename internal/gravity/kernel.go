package gravity

import (
	"math"
	"runtime"
	"sync"
)

// Derivative is one slope sample for a body: gravitational
// acceleration plus the echoed velocity, so that position and
// velocity advance together as a first-order system.
type Derivative struct {
	AX, AY float64
	VX, VY float64
}

// Kernel maps a body snapshot to per-body derivatives. Kernels must be
// pure functions of their inputs: the RK4 stepper calls the same kernel
// four times per step against different intermediate states.
type Kernel interface {
	Name() string
	Evaluate(bodies []Body, g float64) []Derivative
}

// bodyDerivative sums the pull of every other body on bodies[i].
// Each pair is evaluated twice per kernel call, once from each side;
// the Newton's-third-law half-work form rounds differently and is
// deliberately not used. There is no softening term: coincident
// bodies divide by zero and the Inf/NaN is left to propagate.
func bodyDerivative(bodies []Body, i int, g float64) Derivative {
	b := bodies[i]
	d := Derivative{VX: b.VX, VY: b.VY}
	for j := range bodies {
		if j == i {
			continue
		}
		gm := -g * bodies[j].Mass
		dx := b.X - bodies[j].X
		dy := b.Y - bodies[j].Y
		r2 := dx*dx + dy*dy
		r3 := r2 * math.Sqrt(r2)
		d.AX += gm * dx / r3
		d.AY += gm * dy / r3
	}
	return d
}

// SerialKernel is the reference O(N^2) implementation.
type SerialKernel struct{}

func NewSerialKernel() *SerialKernel { return &SerialKernel{} }

func (k *SerialKernel) Name() string { return "serial" }

func (k *SerialKernel) Evaluate(bodies []Body, g float64) []Derivative {
	out := make([]Derivative, len(bodies))
	for i := range bodies {
		out[i] = bodyDerivative(bodies, i, g)
	}
	return out
}

// ParallelKernel splits the outer body index across workers. Each
// worker runs the same inner loop in the same order as SerialKernel,
// so the result is bit-identical to the serial kernel.
type ParallelKernel struct {
	workers int
}

func NewParallelKernel(workers int) *ParallelKernel {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &ParallelKernel{workers: workers}
}

func (k *ParallelKernel) Name() string { return "parallel" }

func (k *ParallelKernel) Evaluate(bodies []Body, g float64) []Derivative {
	n := len(bodies)
	out := make([]Derivative, n)

	// Goroutine overhead dominates for small systems.
	if n < 2*k.workers {
		for i := range bodies {
			out[i] = bodyDerivative(bodies, i, g)
		}
		return out
	}

	chunk := (n + k.workers - 1) / k.workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				out[i] = bodyDerivative(bodies, i, g)
			}
		}(start, end)
	}
	wg.Wait()

	return out
}
