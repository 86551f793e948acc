package peony

import "math"

// Vec2 is a 2D vector used for positions, offsets and directions throughout
// the API. The coordinate system has its origin at the top-left, with Y
// increasing downward.
type Vec2 struct {
	X, Y float64
}

// FromPolar returns the vector with the given angle (radians) and length.
func FromPolar(angle, radius float64) Vec2 {
	return Vec2{X: math.Cos(angle) * radius, Y: math.Sin(angle) * radius}
}

// Plus returns v + o.
func (v Vec2) Plus(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Minus returns v - o.
func (v Vec2) Minus(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Times returns v scaled by k.
func (v Vec2) Times(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Length returns the Euclidean length of v.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Angle returns the angle of v in radians, in (-pi, pi].
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Distance returns the length of v - o.
func (v Vec2) Distance(o Vec2) float64 {
	return v.Minus(o).Length()
}

// --- In-place mutators ---

// Add adds o to v in place.
func (v *Vec2) Add(o Vec2) {
	v.X += o.X
	v.Y += o.Y
}

// Subtract subtracts o from v in place.
func (v *Vec2) Subtract(o Vec2) {
	v.X -= o.X
	v.Y -= o.Y
}

// Multiply scales v by k in place.
func (v *Vec2) Multiply(k float64) {
	v.X *= k
	v.Y *= k
}

// Set overwrites both components.
func (v *Vec2) Set(x, y float64) {
	v.X = x
	v.Y = y
}
