package board

import "github.com/boardwalk-eda/boardwalk/pkg/geometry"

// Keepout is a polygonal exclusion zone. The placement engine repels
// components from its edges; ChargeMultiplier scales the repulsion strength
// linearly (1.0 is the baseline).
type Keepout struct {
	Name             string           `json:"name,omitempty"`
	Outline          geometry.Polygon `json:"outline"`
	ChargeMultiplier float64          `json:"charge_multiplier"`
}

// NewKeepout builds a keepout from an arbitrary outline. A multiplier of 0
// is replaced with the default of 1.0.
func NewKeepout(outline geometry.Polygon, chargeMultiplier float64, name string) Keepout {
	if chargeMultiplier == 0 {
		chargeMultiplier = 1.0
	}
	return Keepout{Name: name, Outline: outline, ChargeMultiplier: chargeMultiplier}
}

// NewKeepoutCircle builds a circular keepout centered at (cx, cy), useful
// for mounting holes and connector clearances.
func NewKeepoutCircle(cx, cy, radius, chargeMultiplier float64, name string) Keepout {
	const segments = 16
	return NewKeepout(geometry.Circle(cx, cy, radius, segments), chargeMultiplier, name)
}

// Center returns the centroid of the keepout outline.
func (k Keepout) Center() geometry.Vector2D {
	return k.Outline.Centroid()
}
