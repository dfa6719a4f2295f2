package place

import (
	"github.com/boardwalk-eda/boardwalk/pkg/board"
	"github.com/boardwalk-eda/boardwalk/pkg/geometry"
)

// EdgeToPointForce models a uniformly charged line segment repelling a point
// charge. The force points from the nearest point on [edgeStart, edgeEnd]
// toward point, away from the edge, with magnitude
//
//	chargeDensity * |edge| / d^2
//
// where d is the point's distance to the segment, clamped below by
// minDistance to avoid singularities. For a point equidistant from both
// endpoints the force is purely perpendicular to the edge. A point exactly
// on the segment is pushed along the edge's counter-clockwise normal.
func EdgeToPointForce(point, edgeStart, edgeEnd geometry.Vector2D, chargeDensity, minDistance float64) geometry.Vector2D {
	edge := edgeEnd.Sub(edgeStart)
	edgeLen := edge.Magnitude()
	if edgeLen == 0 {
		return geometry.Vector2D{}
	}

	nearest := geometry.ClosestPointOnSegment(point, edgeStart, edgeEnd)
	delta := point.Sub(nearest)
	dist := delta.Magnitude()

	dir := delta.Normalized()
	if dist == 0 {
		// Point on the segment: push along the CCW normal. For a CCW
		// wound outline this is the interior side.
		dir = edge.Perpendicular().Normalized()
	}
	if dist < minDistance {
		dist = minDistance
	}

	return dir.Scale(chargeDensity * edgeLen / (dist * dist))
}

// BoundaryForce sums the edge repulsion of every board outline edge at the
// given point, modeling the outline as a charged enclosure that pushes
// components toward the interior.
func (o *Optimizer) BoundaryForce(point geometry.Vector2D) geometry.Vector2D {
	var total geometry.Vector2D
	for a, b := range o.outline.Edges() {
		total = total.Add(EdgeToPointForce(point, a, b, o.cfg.ChargeDensity, o.cfg.MinDistance))
	}
	return total
}

// KeepoutForce sums the edge repulsion of every keepout zone at the given
// point. Each keepout's contribution scales with its charge multiplier.
func (o *Optimizer) KeepoutForce(point geometry.Vector2D) geometry.Vector2D {
	var total geometry.Vector2D
	for _, k := range o.keepouts {
		density := o.cfg.ChargeDensity * k.ChargeMultiplier
		for a, b := range k.Outline.Edges() {
			total = total.Add(EdgeToPointForce(point, a, b, density, o.cfg.MinDistance))
		}
	}
	return total
}

// SpringForce resolves a spring's endpoints and returns the Hookean force on
// each: magnitude stiffness*(distance-restLength) along the line connecting
// the pins, pulling them together when stretched. The two forces are exactly
// equal and opposite. Dangling references degrade silently to zero forces.
func (o *Optimizer) SpringForce(s Spring) (f1, f2 geometry.Vector2D) {
	p1, p2, ok := o.resolveSpring(s)
	if !ok {
		return geometry.Vector2D{}, geometry.Vector2D{}
	}

	delta := p2.Position().Sub(p1.Position())
	dist := delta.Magnitude()
	if dist == 0 {
		return geometry.Vector2D{}, geometry.Vector2D{}
	}

	magnitude := s.Stiffness * (dist - s.RestLength)
	f1 = delta.Normalized().Scale(magnitude)
	return f1, f1.Neg()
}

// repulsionForce returns the charge repulsion exerted on a by b.
// Both components carry the configured charge density as their charge, so
// the magnitude is density^2 / d^2 with d clamped to the minimum distance.
func (o *Optimizer) repulsionForce(a, b *board.Component) geometry.Vector2D {
	delta := a.Position().Sub(b.Position())
	dist := delta.Magnitude()

	dir := delta.Normalized()
	if dist == 0 {
		// Coincident centers: push along +x so overlapping parts separate
		// deterministically.
		dir = geometry.Vector2D{X: 1}
	}
	if dist < o.cfg.MinDistance {
		dist = o.cfg.MinDistance
	}

	return dir.Scale(o.cfg.ChargeDensity * o.cfg.ChargeDensity / (dist * dist))
}

// Forces computes the net force on every component: boundary repulsion,
// keepout repulsion, pairwise inter-component repulsion, and spring
// attraction. The result maps component refs to net forces; fixed components
// are included (their forces are simply never applied).
func (o *Optimizer) Forces() map[string]geometry.Vector2D {
	forces, _ := o.ForcesAndTorques()
	return forces
}

// ForcesAndTorques computes net forces as [Optimizer.Forces] does, plus the
// per-component net torque: the rotational stability torque and moments from
// spring forces acting at pin offsets away from the component center.
func (o *Optimizer) ForcesAndTorques() (map[string]geometry.Vector2D, map[string]float64) {
	forces := make(map[string]geometry.Vector2D, len(o.components))
	torques := make(map[string]float64, len(o.components))

	for _, c := range o.components {
		f := o.BoundaryForce(c.Position())
		f = f.Add(o.KeepoutForce(c.Position()))
		for _, other := range o.components {
			if other == c {
				continue
			}
			f = f.Add(o.repulsionForce(c, other))
		}
		forces[c.Ref] = f
		torques[c.Ref] = c.RotationalTorque(o.cfg.RotationStiffness)
	}

	for _, s := range o.springs {
		p1, p2, ok := o.resolveSpring(s)
		if !ok {
			continue
		}
		f1, f2 := o.SpringForce(s)

		c1 := o.index[s.Comp1Ref]
		c2 := o.index[s.Comp2Ref]
		forces[c1.Ref] = forces[c1.Ref].Add(f1)
		forces[c2.Ref] = forces[c2.Ref].Add(f2)

		// Forces applied at pin offsets produce moments about the center.
		torques[c1.Ref] += p1.Position().Sub(c1.Position()).Cross(f1)
		torques[c2.Ref] += p2.Position().Sub(c2.Position()).Cross(f2)
	}

	return forces, torques
}

// Energy returns the total potential energy of the system: spring potential,
// repulsion potential (boundary, keepout, and inter-component proximity),
// and the rotational stability potential. The result is never negative.
//
// Repulsion and rotational terms are only accumulated for movable
// components: energy stored against a fixed component can never be released,
// so counting it would keep an otherwise settled system from ever reaching
// the convergence threshold.
func (o *Optimizer) Energy() float64 {
	var energy float64

	for _, s := range o.springs {
		p1, p2, ok := o.resolveSpring(s)
		if !ok {
			continue
		}
		stretch := p1.Position().Distance(p2.Position()) - s.RestLength
		energy += 0.5 * s.Stiffness * stretch * stretch
	}

	for _, c := range o.components {
		if c.Fixed {
			continue
		}

		for a, b := range o.outline.Edges() {
			energy += o.edgePotential(c.Position(), a, b, o.cfg.ChargeDensity)
		}
		for _, k := range o.keepouts {
			density := o.cfg.ChargeDensity * k.ChargeMultiplier
			for a, b := range k.Outline.Edges() {
				energy += o.edgePotential(c.Position(), a, b, density)
			}
		}

		energy += c.RotationalEnergy(o.cfg.RotationStiffness)
	}

	for i, c := range o.components {
		for j := i + 1; j < len(o.components); j++ {
			other := o.components[j]
			if c.Fixed && other.Fixed {
				continue
			}
			dist := c.Position().Distance(other.Position())
			if dist < o.cfg.MinDistance {
				dist = o.cfg.MinDistance
			}
			energy += o.cfg.ChargeDensity * o.cfg.ChargeDensity / dist
		}
	}

	return energy
}

// edgePotential is the potential corresponding to EdgeToPointForce:
// chargeDensity * |edge| / d, with the same minimum-distance clamp.
func (o *Optimizer) edgePotential(point, a, b geometry.Vector2D, chargeDensity float64) float64 {
	edgeLen := a.Distance(b)
	if edgeLen == 0 {
		return 0
	}
	dist := point.Distance(geometry.ClosestPointOnSegment(point, a, b))
	if dist < o.cfg.MinDistance {
		dist = o.cfg.MinDistance
	}
	return chargeDensity * edgeLen / dist
}
