package geometry

import (
	"iter"
	"math"
)

// Polygon is a closed 2D shape described by an ordered vertex list.
// Insertion order defines the winding; edges connect consecutive vertices
// and wrap from the last vertex back to the first. An empty polygon is valid
// and represents "no shape" (zero area, centroid at the origin).
type Polygon struct {
	Vertices []Vector2D `json:"vertices"`
}

// Rectangle returns an axis-aligned rectangle centered at (cx, cy) with the
// given width and height. The four vertices are ordered counter-clockwise
// starting from the bottom-left corner.
func Rectangle(cx, cy, width, height float64) Polygon {
	hw, hh := width/2, height/2
	return Polygon{Vertices: []Vector2D{
		{X: cx - hw, Y: cy - hh},
		{X: cx + hw, Y: cy - hh},
		{X: cx + hw, Y: cy + hh},
		{X: cx - hw, Y: cy + hh},
	}}
}

// Circle returns a regular polygon with the given number of segments
// approximating a circle centered at (cx, cy). Every vertex lies at exact
// distance radius from the center.
func Circle(cx, cy, radius float64, segments int) Polygon {
	if segments < 3 {
		segments = 3
	}
	verts := make([]Vector2D, segments)
	for i := range verts {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		sin, cos := math.Sincos(angle)
		verts[i] = Vector2D{X: cx + radius*cos, Y: cy + radius*sin}
	}
	return Polygon{Vertices: verts}
}

// FromFootprintBounds returns the physical outline of a component footprint:
// a width x height rectangle centered at (x, y), rotated counter-clockwise
// about its own center by rotation degrees.
func FromFootprintBounds(x, y, width, height, rotation float64) Polygon {
	rect := Rectangle(x, y, width, height)
	if rotation == 0 {
		return rect
	}
	return rect.RotateAround(Vector2D{X: x, Y: y}, rotation)
}

// Edges returns an iterator over consecutive vertex pairs, wrapping from the
// last vertex back to the first. The sequence is finite and can be ranged
// over any number of times. Polygons with fewer than two vertices yield
// nothing.
func (p Polygon) Edges() iter.Seq2[Vector2D, Vector2D] {
	return func(yield func(Vector2D, Vector2D) bool) {
		n := len(p.Vertices)
		if n < 2 {
			return
		}
		for i := 0; i < n; i++ {
			if !yield(p.Vertices[i], p.Vertices[(i+1)%n]) {
				return
			}
		}
	}
}

// Area returns the signed shoelace-formula area of the polygon.
// Counter-clockwise winding yields a positive value; callers that only care
// about size should take the absolute value. Polygons with fewer than three
// vertices have area exactly 0.
func (p Polygon) Area() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	var sum float64
	for a, b := range p.Edges() {
		sum += a.Cross(b)
	}
	return sum / 2
}

// Perimeter returns the sum of all edge lengths.
func (p Polygon) Perimeter() float64 {
	var sum float64
	for a, b := range p.Edges() {
		sum += a.Distance(b)
	}
	return sum
}

// Centroid returns the area-weighted centroid of the polygon.
// Degenerate polygons (fewer than three vertices, or zero enclosed area)
// fall back to the arithmetic mean of the vertices; an empty polygon yields
// the origin.
func (p Polygon) Centroid() Vector2D {
	n := len(p.Vertices)
	if n == 0 {
		return Vector2D{}
	}

	area := p.Area()
	if n < 3 || area == 0 {
		var mean Vector2D
		for _, v := range p.Vertices {
			mean = mean.Add(v)
		}
		return mean.Div(float64(n))
	}

	var cx, cy float64
	for a, b := range p.Edges() {
		cross := a.Cross(b)
		cx += (a.X + b.X) * cross
		cy += (a.Y + b.Y) * cross
	}
	return Vector2D{X: cx / (6 * area), Y: cy / (6 * area)}
}

// ContainsPoint reports whether pt lies inside the polygon, using the
// even-odd ray casting rule. Points within a small tolerance of an edge or
// vertex are treated as contained, so test points adjacent to corners
// classify consistently regardless of rounding.
func (p Polygon) ContainsPoint(pt Vector2D) bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}

	const tol = 1e-9
	inside := false
	for a, b := range p.Edges() {
		if distanceToSegment(pt, a, b) <= tol {
			return true
		}
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			xCross := a.X + (pt.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if pt.X < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// Translate returns a copy of the polygon with every vertex offset by v.
func (p Polygon) Translate(v Vector2D) Polygon {
	verts := make([]Vector2D, len(p.Vertices))
	for i, vert := range p.Vertices {
		verts[i] = vert.Add(v)
	}
	return Polygon{Vertices: verts}
}

// RotateAround returns a copy of the polygon rotated counter-clockwise by
// the given angle in degrees about the pivot point.
func (p Polygon) RotateAround(pivot Vector2D, degrees float64) Polygon {
	verts := make([]Vector2D, len(p.Vertices))
	for i, vert := range p.Vertices {
		verts[i] = vert.Sub(pivot).Rotated(degrees).Add(pivot)
	}
	return Polygon{Vertices: verts}
}

// ClosestPointOnSegment returns the point on segment [a, b] nearest to pt.
// Degenerate segments (a == b) return a.
func ClosestPointOnSegment(pt, a, b Vector2D) Vector2D {
	ab := b.Sub(a)
	lenSq := ab.MagnitudeSquared()
	if lenSq == 0 {
		return a
	}
	t := pt.Sub(a).Dot(ab) / lenSq
	t = math.Max(0, math.Min(1, t))
	return a.Add(ab.Scale(t))
}

// distanceToSegment returns the distance from pt to segment [a, b].
func distanceToSegment(pt, a, b Vector2D) float64 {
	return pt.Distance(ClosestPointOnSegment(pt, a, b))
}
