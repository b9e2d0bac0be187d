package gravity

import (
	"fmt"
	"math"
)

// Body is a point mass in the plane with its kinematic state.
// Mass 0 is allowed: such a body is pulled by the others but
// exerts no pull itself.
type Body struct {
	Mass float64
	X, Y float64
	VX   float64
	VY   float64
}

func NewBody(mass, x, y, vx, vy float64) Body {
	return Body{Mass: mass, X: x, Y: y, VX: vx, VY: vy}
}

// Distance returns the Euclidean separation between b and other.
func (b Body) Distance(other Body) float64 {
	dx := other.X - b.X
	dy := other.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func (b Body) String() string {
	return fmt.Sprintf("M: %8g (%12.9f, %12.9f) v_x: %10.8f, v_y: %10.8f",
		b.Mass, b.X, b.Y, b.VX, b.VY)
}

// CloneBodies returns an independent copy of a body slice.
func CloneBodies(bodies []Body) []Body {
	c := make([]Body, len(bodies))
	copy(c, bodies)
	return c
}
