package shared

import (
	"fmt"
	"math"
)

// Vector is a position or offset in universe light-years.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewVector(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// DistanceTo calculates Euclidean distance to another position
func (v Vector) DistanceTo(other Vector) float64 {
	dx := other.X - v.X
	dy := other.Y - v.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquaredTo avoids the sqrt for range comparisons.
func (v Vector) DistanceSquaredTo(other Vector) float64 {
	dx := other.X - v.X
	dy := other.Y - v.Y
	return dx*dx + dy*dy
}

func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector) Subtract(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector) Scale(f float64) Vector {
	return Vector{X: v.X * f, Y: v.Y * f}
}

func (v Vector) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalized returns the unit vector, or the zero vector for zero length.
func (v Vector) Normalized() Vector {
	l := v.Length()
	if l == 0 {
		return Vector{}
	}
	return Vector{X: v.X / l, Y: v.Y / l}
}

// MoveToward returns the point reached travelling dist from v toward target,
// stopping at target.
func (v Vector) MoveToward(target Vector, dist float64) Vector {
	total := v.DistanceTo(target)
	if total <= dist || total == 0 {
		return target
	}
	return v.Add(target.Subtract(v).Scale(dist / total))
}

// InRange reports whether other is within r light-years.
func (v Vector) InRange(other Vector, r float64) bool {
	return v.DistanceSquaredTo(other) <= r*r
}

func (v Vector) String() string {
	return fmt.Sprintf("(%.1f, %.1f)", v.X, v.Y)
}
