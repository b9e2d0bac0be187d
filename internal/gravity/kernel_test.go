package gravity

import (
	"math"
	"math/rand"
	"testing"
)

func TestSerialKernelTwoBody(t *testing.T) {
	bodies := []Body{
		NewBody(1, 0, 0, 0.5, -0.5),
		NewBody(2, 1, 0, 0, 0),
	}
	k := NewSerialKernel()
	derivs := k.Evaluate(bodies, 1.0)

	// Body 0 is pulled toward +x by the mass-2 body at unit distance.
	if math.Abs(derivs[0].AX-2) > 1e-12 {
		t.Errorf("expected AX=2 on body 0, got %g", derivs[0].AX)
	}
	if derivs[0].AY != 0 {
		t.Errorf("expected AY=0 on body 0, got %g", derivs[0].AY)
	}
	// Body 1 is pulled toward -x by the unit mass.
	if math.Abs(derivs[1].AX+1) > 1e-12 {
		t.Errorf("expected AX=-1 on body 1, got %g", derivs[1].AX)
	}

	// Velocities are echoed so positions advance by current velocity.
	if derivs[0].VX != 0.5 || derivs[0].VY != -0.5 {
		t.Errorf("velocity not echoed: got (%g, %g)", derivs[0].VX, derivs[0].VY)
	}
}

func TestKernelIsPure(t *testing.T) {
	bodies := []Body{
		NewBody(1, -0.97000436, 0.24208753, 0.4662036850, 0.4323657300),
		NewBody(1, 0, 0, -0.933240737, -0.86473146),
		NewBody(1, 0.97000436, -0.24208753, 0.4662036850, 0.4323657300),
	}
	before := CloneBodies(bodies)

	k := NewSerialKernel()
	first := k.Evaluate(bodies, 1.0)
	second := k.Evaluate(bodies, 1.0)

	for i := range bodies {
		if bodies[i] != before[i] {
			t.Fatalf("kernel mutated its input at body %d", i)
		}
		if first[i] != second[i] {
			t.Fatalf("repeated evaluation differs at body %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestTracerExertsNoForce(t *testing.T) {
	massive := []Body{
		NewBody(1, 0.5, 0, 0, 0.5),
		NewBody(1, -0.5, 0, 0, -0.5),
	}
	withTracer := append(CloneBodies(massive), NewBody(0, 0.1, 0.3, 0, 0))

	k := NewSerialKernel()
	plain := k.Evaluate(massive, 1.0)
	traced := k.Evaluate(withTracer, 1.0)

	for i := range plain {
		if plain[i] != traced[i] {
			t.Errorf("tracer changed derivative of body %d: %+v vs %+v", i, plain[i], traced[i])
		}
	}

	// The tracer itself is still accelerated.
	if traced[2].AX == 0 && traced[2].AY == 0 {
		t.Error("tracer should be accelerated by the massive bodies")
	}
}

func TestCoincidentBodiesProduceNonFinite(t *testing.T) {
	bodies := []Body{
		NewBody(1, 1, 1, 0, 0),
		NewBody(1, 1, 1, 0, 0),
	}
	k := NewSerialKernel()
	derivs := k.Evaluate(bodies, 1.0)

	// Zero separation divides by zero; the result must surface as
	// NaN/Inf rather than an error.
	finite := true
	for _, d := range derivs {
		if math.IsNaN(d.AX) || math.IsNaN(d.AY) || math.IsInf(d.AX, 0) || math.IsInf(d.AY, 0) {
			finite = false
		}
	}
	if finite {
		t.Error("expected non-finite accelerations for coincident bodies")
	}
}

func randomBodies(n int, seed int64) []Body {
	rng := rand.New(rand.NewSource(seed))
	bodies := make([]Body, n)
	for i := range bodies {
		bodies[i] = NewBody(
			rng.Float64(),
			rng.NormFloat64(),
			rng.NormFloat64(),
			rng.NormFloat64()*0.1,
			rng.NormFloat64()*0.1,
		)
	}
	return bodies
}

func TestParallelMatchesSerialBitwise(t *testing.T) {
	bodies := randomBodies(64, 42)

	serial := NewSerialKernel().Evaluate(bodies, 1.0)
	for _, workers := range []int{1, 2, 3, 8} {
		parallel := NewParallelKernel(workers).Evaluate(bodies, 1.0)
		for i := range serial {
			if serial[i] != parallel[i] {
				t.Fatalf("workers=%d: body %d differs: %+v vs %+v",
					workers, i, serial[i], parallel[i])
			}
		}
	}
}

func TestParallelSmallSystemFallback(t *testing.T) {
	bodies := randomBodies(3, 7)

	serial := NewSerialKernel().Evaluate(bodies, 1.0)
	parallel := NewParallelKernel(8).Evaluate(bodies, 1.0)
	for i := range serial {
		if serial[i] != parallel[i] {
			t.Fatalf("body %d differs: %+v vs %+v", i, serial[i], parallel[i])
		}
	}
}
