package integrator

import "github.com/gravlab/nbody/internal/gravity"

// RK4 is the classical fourth-order Runge-Kutta stepper, vectorized
// over all bodies. A scratch slice is reused across calls to avoid
// allocating an intermediate state per slope evaluation.
type RK4 struct {
	scratch []gravity.Body
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.scratch) != n {
		r.scratch = make([]gravity.Body, n)
	}
}

// Step advances the system by one step h and returns the new state.
// The input slice is never mutated. Every intermediate state is built
// by displacing the step-start state along the newest slope (h/2, h/2,
// then h), so none of the four kernel evaluations observes a partial
// update from a sibling body.
func (r *RK4) Step(k gravity.Kernel, bodies []gravity.Body, g, h float64) []gravity.Body {
	n := len(bodies)
	r.ensureScratch(n)

	k1 := k.Evaluate(bodies, g)
	r.displace(bodies, k1, h/2)
	k2 := k.Evaluate(r.scratch, g)
	r.displace(bodies, k2, h/2)
	k3 := k.Evaluate(r.scratch, g)
	r.displace(bodies, k3, h)
	k4 := k.Evaluate(r.scratch, g)

	out := make([]gravity.Body, n)
	h6 := h / 6.0
	for i, b := range bodies {
		out[i] = gravity.Body{
			Mass: b.Mass,
			X:    b.X + h6*(k1[i].VX+2*(k2[i].VX+k3[i].VX)+k4[i].VX),
			Y:    b.Y + h6*(k1[i].VY+2*(k2[i].VY+k3[i].VY)+k4[i].VY),
			VX:   b.VX + h6*(k1[i].AX+2*(k2[i].AX+k3[i].AX)+k4[i].AX),
			VY:   b.VY + h6*(k1[i].AY+2*(k2[i].AY+k3[i].AY)+k4[i].AY),
		}
	}
	return out
}

func (r *RK4) displace(bodies []gravity.Body, k []gravity.Derivative, dt float64) {
	for i, b := range bodies {
		r.scratch[i] = gravity.Body{
			Mass: b.Mass,
			X:    b.X + k[i].VX*dt,
			Y:    b.Y + k[i].VY*dt,
			VX:   b.VX + k[i].AX*dt,
			VY:   b.VY + k[i].AY*dt,
		}
	}
}
