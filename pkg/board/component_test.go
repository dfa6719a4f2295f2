package board

import (
	"math"
	"testing"

	"github.com/boardwalk-eda/boardwalk/pkg/geometry"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}

func TestNewComponentDefaults(t *testing.T) {
	c := NewComponent("U1", 10, 20, 4, 2)

	if c.Ref != "U1" {
		t.Errorf("Ref = %q, want U1", c.Ref)
	}
	if c.Mass != 1.0 {
		t.Errorf("Mass = %v, want 1.0", c.Mass)
	}
	if c.Fixed {
		t.Error("new components should not be fixed")
	}
	if got := c.Position(); got != (geometry.Vector2D{X: 10, Y: 20}) {
		t.Errorf("Position() = %v, want (10, 20)", got)
	}
	if got := c.Velocity(); got != (geometry.Vector2D{}) {
		t.Errorf("Velocity() = %v, want zero", got)
	}
}

func TestAddPinComputesAbsolutePosition(t *testing.T) {
	c := NewComponent("U1", 10, 20, 4, 2)
	p := c.AddPin("1", 1, 0.5, 3, "SDA")

	if !almostEqual(p.X, 11) || !almostEqual(p.Y, 20.5) {
		t.Errorf("pin at (%v, %v), want (11, 20.5)", p.X, p.Y)
	}
	if p.Net != 3 || p.NetName != "SDA" {
		t.Errorf("pin net = %d/%q, want 3/SDA", p.Net, p.NetName)
	}

	// Rotated component places the pin in the rotated frame.
	r := NewComponent("U2", 0, 0, 4, 2)
	r.Rotation = 90
	q := r.AddPin("1", 1, 0, 0, "")
	if !almostEqual(q.X, 0) || !almostEqual(q.Y, 1) {
		t.Errorf("rotated pin at (%v, %v), want (0, 1)", q.X, q.Y)
	}
}

func TestPinLookup(t *testing.T) {
	c := NewComponent("U1", 0, 0, 2, 2)
	c.AddPin("1", -1, 0, 1, "A")
	c.AddPin("2", 1, 0, 2, "B")

	if p := c.Pin("2"); p == nil || p.NetName != "B" {
		t.Errorf("Pin(2) = %+v, want net B", p)
	}
	if p := c.Pin("99"); p != nil {
		t.Errorf("Pin(99) = %+v, want nil", p)
	}
}

func TestApplyForce(t *testing.T) {
	c := NewComponent("U1", 0, 0, 2, 2)
	c.Mass = 2.0

	c.ApplyForce(geometry.Vector2D{X: 4, Y: -8}, 0.5)

	// v += F/m * dt
	if !almostEqual(c.VX, 1) || !almostEqual(c.VY, -2) {
		t.Errorf("velocity = (%v, %v), want (1, -2)", c.VX, c.VY)
	}
	// Velocity-only integration: position is unchanged until UpdatePosition.
	if c.X != 0 || c.Y != 0 {
		t.Errorf("position moved to (%v, %v) before UpdatePosition", c.X, c.Y)
	}
}

func TestApplyTorque(t *testing.T) {
	c := NewComponent("U1", 0, 0, 3, 4)

	c.ApplyTorque(5, 0.1)

	if c.AngularVelocity == 0 {
		t.Fatal("nonzero torque must change angular velocity")
	}
	want := 5 / c.MomentOfInertia() * 0.1
	if !almostEqual(c.AngularVelocity, want) {
		t.Errorf("AngularVelocity = %v, want %v", c.AngularVelocity, want)
	}
}

func TestMomentOfInertia(t *testing.T) {
	c := NewComponent("U1", 0, 0, 3, 4)
	// Rectangular plate: m*(w^2+h^2)/12
	if got := c.MomentOfInertia(); !almostEqual(got, 25.0/12) {
		t.Errorf("MomentOfInertia = %v, want %v", got, 25.0/12)
	}

	// Degenerate footprints still have nonzero inertia.
	d := NewComponent("TP1", 0, 0, 0, 0)
	if got := d.MomentOfInertia(); got <= 0 {
		t.Errorf("degenerate MomentOfInertia = %v, want > 0", got)
	}
	d.ApplyTorque(1, 0.1)
	if d.AngularVelocity == 0 {
		t.Error("torque on degenerate component must still change angular velocity")
	}
}

func TestUpdatePosition(t *testing.T) {
	c := NewComponent("U1", 1, 2, 2, 2)
	c.VX, c.VY = 10, -5
	c.AngularVelocity = 90

	c.UpdatePosition(0.1)

	if !almostEqual(c.X, 2) || !almostEqual(c.Y, 1.5) {
		t.Errorf("position = (%v, %v), want (2, 1.5)", c.X, c.Y)
	}
	if !almostEqual(c.Rotation, 9) {
		t.Errorf("rotation = %v, want 9", c.Rotation)
	}
}

func TestUpdatePositionMovesPins(t *testing.T) {
	c := NewComponent("U1", 0, 0, 4, 2)
	c.AddPin("1", 2, 1, 1, "")
	c.AddPin("2", -2, -1, 2, "")

	before := []geometry.Vector2D{c.Pins[0].Position(), c.Pins[1].Position()}

	// Pure translation: every pin moves by exactly the component delta.
	c.VX, c.VY = 3, 4
	c.UpdatePosition(1)

	delta := geometry.Vector2D{X: 3, Y: 4}
	for i := range c.Pins {
		want := before[i].Add(delta)
		got := c.Pins[i].Position()
		if !almostEqual(got.X, want.X) || !almostEqual(got.Y, want.Y) {
			t.Errorf("pin %d at %v, want %v", i, got, want)
		}
	}
}

func TestPinRotationTracking(t *testing.T) {
	c := NewComponent("U1", 0, 0, 4, 2)
	c.AddPin("1", 1, 0, 1, "")

	c.Rotation = 90
	c.UpdatePinPositions()

	p := c.Pins[0].Position()
	if !almostEqual(p.X, 0) || !almostEqual(p.Y, 1) {
		t.Errorf("pin at %v after 90° rotation, want (0, 1)", p)
	}
}

func TestFixedComponentNeverMoves(t *testing.T) {
	c := NewComponent("J1", 5, 5, 10, 10)
	c.Fixed = true
	c.AddPin("1", 2, 0, 1, "")

	c.ApplyForce(geometry.Vector2D{X: 1000, Y: 1000}, 1)
	c.ApplyTorque(1000, 1)
	c.UpdatePosition(1)

	if c.X != 5 || c.Y != 5 || c.Rotation != 0 {
		t.Errorf("fixed component moved to (%v, %v, %v°)", c.X, c.Y, c.Rotation)
	}
	if c.VX != 0 || c.VY != 0 || c.AngularVelocity != 0 {
		t.Errorf("fixed component gained velocity (%v, %v, %v)", c.VX, c.VY, c.AngularVelocity)
	}
}

func TestApplyDamping(t *testing.T) {
	c := NewComponent("U1", 0, 0, 2, 2)
	c.VX, c.VY, c.AngularVelocity = 10, -20, 4

	c.ApplyDamping(0.5, 0.25)

	if !almostEqual(c.VX, 5) || !almostEqual(c.VY, -10) {
		t.Errorf("velocity = (%v, %v), want (5, -10)", c.VX, c.VY)
	}
	if !almostEqual(c.AngularVelocity, 1) {
		t.Errorf("AngularVelocity = %v, want 1", c.AngularVelocity)
	}
}

func TestRotationalPotential(t *testing.T) {
	c := NewComponent("U1", 0, 0, 4, 2)
	const k = 1.0

	// 0° is the stable minimum: zero energy and zero torque.
	if got := c.RotationalEnergy(k); !almostEqual(got, 0) {
		t.Errorf("energy at 0° = %v, want 0", got)
	}
	if got := c.RotationalTorque(k); !almostEqual(got, 0) {
		t.Errorf("torque at 0° = %v, want 0", got)
	}

	// 45° stores energy and is still being driven toward a stable angle.
	c.Rotation = 45
	if got := c.RotationalEnergy(k); got <= 0 {
		t.Errorf("energy at 45° = %v, want > 0", got)
	}
	if got := c.RotationalTorque(k); got == 0 {
		t.Error("torque at 45° = 0, want nonzero")
	}
}

func TestOutline(t *testing.T) {
	c := NewComponent("U1", 10, 20, 4, 2)
	p := c.Outline()

	if got := p.Centroid(); !almostEqual(got.X, 10) || !almostEqual(got.Y, 20) {
		t.Errorf("outline centroid = %v, want (10, 20)", got)
	}
	if got := math.Abs(p.Area()); !almostEqual(got, 8) {
		t.Errorf("outline area = %v, want 8", got)
	}
}
