package geometry

import "math"

// Vector2D is a point or direction in 2D space.
// The zero value is the origin. All methods are value-safe: they return new
// vectors and never mutate the receiver.
type Vector2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the vector sum of v and o.
func (v Vector2D) Add(o Vector2D) Vector2D {
	return Vector2D{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the vector difference of v and o.
func (v Vector2D) Sub(o Vector2D) Vector2D {
	return Vector2D{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vector2D) Scale(s float64) Vector2D {
	return Vector2D{X: v.X * s, Y: v.Y * s}
}

// Div returns v scaled by 1/s. Dividing by zero yields infinities, matching
// ordinary float64 semantics; callers that need a guard should use
// Normalized instead.
func (v Vector2D) Div(s float64) Vector2D {
	return Vector2D{X: v.X / s, Y: v.Y / s}
}

// Neg returns the vector pointing in the opposite direction.
func (v Vector2D) Neg() Vector2D {
	return Vector2D{X: -v.X, Y: -v.Y}
}

// Dot returns the dot product of v and o.
func (v Vector2D) Dot(o Vector2D) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the scalar 2D cross product v.X*o.Y - v.Y*o.X.
// Its sign indicates whether o lies counter-clockwise (positive) or
// clockwise (negative) of v.
func (v Vector2D) Cross(o Vector2D) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Magnitude returns the Euclidean length of v.
func (v Vector2D) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

// MagnitudeSquared returns the squared length of v, avoiding the square root
// when only comparisons are needed.
func (v Vector2D) MagnitudeSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalized returns a unit vector in the direction of v.
// The zero vector is returned unchanged rather than dividing by zero.
func (v Vector2D) Normalized() Vector2D {
	mag := v.Magnitude()
	if mag == 0 {
		return Vector2D{}
	}
	return v.Scale(1 / mag)
}

// Distance returns the Euclidean distance between v and o as points.
func (v Vector2D) Distance(o Vector2D) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Rotated returns v rotated counter-clockwise about the origin by the given
// angle in degrees.
func (v Vector2D) Rotated(degrees float64) Vector2D {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Vector2D{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Perpendicular returns v rotated 90° counter-clockwise, so that
// v.Dot(v.Perpendicular()) == 0 for every v.
func (v Vector2D) Perpendicular() Vector2D {
	return Vector2D{X: -v.Y, Y: v.X}
}

// Limit returns v with its magnitude clamped to max. Vectors already within
// the limit are returned unchanged.
func (v Vector2D) Limit(max float64) Vector2D {
	magSq := v.MagnitudeSquared()
	if magSq <= max*max || magSq == 0 {
		return v
	}
	return v.Scale(max / math.Sqrt(magSq))
}
