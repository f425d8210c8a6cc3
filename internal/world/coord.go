// Package world provides the galaxy graph: coordinates, locations, the
// procedural generator, and the route planner.
// Coordinates live in the square [-1, 1]² by generation policy.
package world

import "math"

// Coord is an immutable position in the galaxy plane.
type Coord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SquareDistance returns the squared Euclidean distance to o.
// All cost comparisons use squared distance; no square roots are taken.
func (c Coord) SquareDistance(o Coord) float64 {
	dx := o.X - c.X
	dy := o.Y - c.Y
	return dx*dx + dy*dy
}

// AngleTo returns the heading from c to o in radians, in (-π, π].
func (c Coord) AngleTo(o Coord) float64 {
	return math.Atan2(o.Y-c.Y, o.X-c.X)
}

// Offset returns the point at the given heading and radius from c.
func (c Coord) Offset(angle, radius float64) Coord {
	return Coord{
		X: c.X + math.Cos(angle)*radius,
		Y: c.Y + math.Sin(angle)*radius,
	}
}
