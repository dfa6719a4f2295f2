package board

import (
	"math"

	"github.com/boardwalk-eda/boardwalk/pkg/geometry"
)

// Pin is a named connection point on a component.
//
// OffsetX/OffsetY are the pin's position in the component's local, unrotated
// frame and never change after the pin is added. X/Y are the absolute board
// coordinates, rederived from the offset whenever the owning component moves
// or rotates. Net 0 means unconnected.
type Pin struct {
	Number  string  `json:"number"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	OffsetX float64 `json:"dx"`
	OffsetY float64 `json:"dy"`
	Net     int     `json:"net"`
	NetName string  `json:"net_name,omitempty"`
}

// Position returns the pin's absolute board position.
func (p *Pin) Position() geometry.Vector2D {
	return geometry.Vector2D{X: p.X, Y: p.Y}
}

// Component is a rigid body on the board: a rectangular footprint with a
// pose (position plus rotation in degrees), kinematic state, and owned pins.
//
// If Fixed is true the component is excluded from every mutation the
// placement engine performs: forces, torques, damping, and integration are
// all no-ops. Mass must stay positive; the optimizer validates this when the
// component is added.
type Component struct {
	Ref      string  `json:"ref"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"` // degrees, logically mod 360
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Fixed    bool    `json:"fixed,omitempty"`
	Mass     float64 `json:"mass"`

	VX              float64 `json:"-"`
	VY              float64 `json:"-"`
	AngularVelocity float64 `json:"-"`

	Pins []Pin `json:"pins,omitempty"`
}

// NewComponent creates a component at (x, y) with the given footprint size.
// Mass defaults to 1.0; callers may override it before adding the component
// to an optimizer.
func NewComponent(ref string, x, y, width, height float64) *Component {
	return &Component{
		Ref:    ref,
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Mass:   1.0,
	}
}

// AddPin adds a pin at the given local-frame offset from the component
// center and assigns it to net. The pin's absolute position is computed from
// the component's current pose.
func (c *Component) AddPin(number string, offsetX, offsetY float64, net int, netName string) *Pin {
	c.Pins = append(c.Pins, Pin{
		Number:  number,
		OffsetX: offsetX,
		OffsetY: offsetY,
		Net:     net,
		NetName: netName,
	})
	pin := &c.Pins[len(c.Pins)-1]
	c.placePin(pin)
	return pin
}

// Pin returns the pin with the given number, or nil if no such pin exists.
func (c *Component) Pin(number string) *Pin {
	for i := range c.Pins {
		if c.Pins[i].Number == number {
			return &c.Pins[i]
		}
	}
	return nil
}

// Position returns the component center as a vector.
func (c *Component) Position() geometry.Vector2D {
	return geometry.Vector2D{X: c.X, Y: c.Y}
}

// Velocity returns the component's linear velocity as a vector.
func (c *Component) Velocity() geometry.Vector2D {
	return geometry.Vector2D{X: c.VX, Y: c.VY}
}

// Outline returns the component's physical outline: its footprint rectangle
// rotated to the current pose.
func (c *Component) Outline() geometry.Polygon {
	return geometry.FromFootprintBounds(c.X, c.Y, c.Width, c.Height, c.Rotation)
}

// MomentOfInertia returns the rotational inertia of the footprint, modeled
// as a uniform rectangular plate: m*(w^2+h^2)/12. Degenerate footprints fall
// back to the bare mass so a nonzero torque always changes angular velocity.
func (c *Component) MomentOfInertia() float64 {
	inertia := c.Mass * (c.Width*c.Width + c.Height*c.Height) / 12
	if inertia <= 0 {
		return c.Mass
	}
	return inertia
}

// ApplyForce integrates a force over dt into the component's velocity using
// semi-implicit Euler: v += (F/m)*dt. Position is advanced separately by
// [Component.UpdatePosition]. Fixed components are unaffected.
func (c *Component) ApplyForce(force geometry.Vector2D, dt float64) {
	if c.Fixed {
		return
	}
	c.VX += force.X / c.Mass * dt
	c.VY += force.Y / c.Mass * dt
}

// ApplyTorque integrates a torque over dt into the component's angular
// velocity using the footprint's moment of inertia. Fixed components are
// unaffected.
func (c *Component) ApplyTorque(torque, dt float64) {
	if c.Fixed {
		return
	}
	c.AngularVelocity += torque / c.MomentOfInertia() * dt
}

// UpdatePosition advances the pose by the current velocities over dt and
// recomputes every pin's absolute position. Fixed components are unaffected.
func (c *Component) UpdatePosition(dt float64) {
	if c.Fixed {
		return
	}
	c.X += c.VX * dt
	c.Y += c.VY * dt
	c.Rotation += c.AngularVelocity * dt
	c.UpdatePinPositions()
}

// UpdatePinPositions recomputes every pin's absolute position from its
// local-frame offset and the component's current pose.
func (c *Component) UpdatePinPositions() {
	for i := range c.Pins {
		c.placePin(&c.Pins[i])
	}
}

func (c *Component) placePin(p *Pin) {
	off := geometry.Vector2D{X: p.OffsetX, Y: p.OffsetY}.Rotated(c.Rotation)
	p.X = c.X + off.X
	p.Y = c.Y + off.Y
}

// ApplyDamping scales the linear and angular velocities by the given
// factors. Factors below 1 drain kinetic energy each step.
func (c *Component) ApplyDamping(linear, angular float64) {
	c.VX *= linear
	c.VY *= linear
	c.AngularVelocity *= angular
}

// RotationalEnergy returns the rotational stability potential at the
// component's current rotation with stiffness k:
//
//	V(θ) = k * (1 - cos 2θ) / 2
//
// The potential is zero at 0° (the preferred axis-aligned orientation) and
// strictly positive away from it, peaking at 90°.
func (c *Component) RotationalEnergy(k float64) float64 {
	theta := c.Rotation * math.Pi / 180
	return k * (1 - math.Cos(2*theta)) / 2
}

// RotationalTorque returns the restoring torque -dV/dθ of the stability
// potential at the current rotation: -k*sin(2θ). It vanishes at 0° and
// drives the component back toward an axis-aligned orientation elsewhere.
func (c *Component) RotationalTorque(k float64) float64 {
	theta := c.Rotation * math.Pi / 180
	return -k * math.Sin(2*theta)
}
