package gravity

import "math"

// Energy returns the total mechanical energy: kinetic plus pairwise
// gravitational potential. Potential pairs are counted once.
func Energy(bodies []Body, g float64) float64 {
	ke := 0.0
	pe := 0.0
	for i := range bodies {
		b := bodies[i]
		ke += 0.5 * b.Mass * (b.VX*b.VX + b.VY*b.VY)
		for j := i + 1; j < len(bodies); j++ {
			pe -= g * b.Mass * bodies[j].Mass / b.Distance(bodies[j])
		}
	}
	return ke + pe
}

// Momentum returns the total linear momentum.
func Momentum(bodies []Body) (px, py float64) {
	for _, b := range bodies {
		px += b.Mass * b.VX
		py += b.Mass * b.VY
	}
	return
}

// AngularMomentum returns the total angular momentum about the origin.
func AngularMomentum(bodies []Body) float64 {
	l := 0.0
	for _, b := range bodies {
		l += b.Mass * (b.X*b.VY - b.Y*b.VX)
	}
	return l
}

// CenterOfMass returns the mass-weighted mean position. A system of
// zero total mass has its center of mass at the origin.
func CenterOfMass(bodies []Body) (x, y float64) {
	total := 0.0
	for _, b := range bodies {
		total += b.Mass
		x += b.Mass * b.X
		y += b.Mass * b.Y
	}
	if total == 0 {
		return 0, 0
	}
	return x / total, y / total
}

// Finite reports whether every position and velocity is free of
// NaN and Inf. A false result means a singular configuration has
// corrupted the state.
func Finite(bodies []Body) bool {
	for _, b := range bodies {
		for _, v := range [4]float64{b.X, b.Y, b.VX, b.VY} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}
