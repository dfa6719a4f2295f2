package place

import (
	"fmt"
	"math"
	"strings"

	"github.com/boardwalk-eda/boardwalk/pkg/board"
	"github.com/boardwalk-eda/boardwalk/pkg/errors"
	"github.com/boardwalk-eda/boardwalk/pkg/geometry"
)

// StepCallback receives the iteration index and the total system energy
// after each completed step. It runs synchronously on the calling goroutine
// and must not mutate the optimizer's component list.
type StepCallback func(iteration int, energy float64)

// Optimizer runs the force-directed placement simulation. It owns the board
// outline, the components (with an index by ref), the springs, the keepouts,
// and the configuration, and it is the sole mutator of component kinematic
// state during a run.
type Optimizer struct {
	outline    geometry.Polygon
	components []*board.Component
	index      map[string]*board.Component
	springs    []Spring
	keepouts   []board.Keepout
	cfg        Config
}

// New creates an optimizer for the given board outline.
// The configuration is validated fail-fast; the outline needs at least three
// vertices to act as a charged enclosure.
func New(outline geometry.Polygon, cfg Config) (*Optimizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(outline.Vertices) < 3 {
		return nil, errors.New(errors.ErrCodeInvalidOutline, "board outline needs at least 3 vertices, got %d", len(outline.Vertices))
	}
	return &Optimizer{
		outline: outline,
		index:   make(map[string]*board.Component),
		cfg:     cfg,
	}, nil
}

// FromBoard creates an optimizer preloaded with a board's components and
// keepouts. The board is validated first.
func FromBoard(b *board.Board, cfg Config) (*Optimizer, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	o, err := New(b.Outline, cfg)
	if err != nil {
		return nil, err
	}
	for _, c := range b.Components {
		if err := o.AddComponent(c); err != nil {
			return nil, err
		}
	}
	o.keepouts = append(o.keepouts, b.Keepouts...)
	return o, nil
}

// AddComponent registers a component with the simulation.
// The component's mass and ref are validated; duplicate refs are rejected.
func (o *Optimizer) AddComponent(c *board.Component) error {
	if err := errors.ValidateRef(c.Ref); err != nil {
		return err
	}
	if c.Mass <= 0 {
		return errors.New(errors.ErrCodeInvalidComponent, "component %q has non-positive mass %v", c.Ref, c.Mass)
	}
	if _, ok := o.index[c.Ref]; ok {
		return errors.New(errors.ErrCodeDuplicateComponent, "component %q already added", c.Ref)
	}
	o.components = append(o.components, c)
	o.index[c.Ref] = c
	return nil
}

// Component returns the registered component with the given ref, or nil.
func (o *Optimizer) Component(ref string) *board.Component {
	return o.index[ref]
}

// Components returns the registered components in insertion order.
// The returned slice is owned by the optimizer; callers must not modify it.
func (o *Optimizer) Components() []*board.Component {
	return o.components
}

// Outline returns the board outline polygon.
func (o *Optimizer) Outline() geometry.Polygon {
	return o.outline
}

// Config returns the simulation parameters.
func (o *Optimizer) Config() Config {
	return o.cfg
}

// Springs returns the current spring set.
func (o *Optimizer) Springs() []Spring {
	return o.springs
}

// AddSpring appends an explicit spring constraint.
func (o *Optimizer) AddSpring(s Spring) {
	o.springs = append(o.springs, s)
}

// Keepouts returns the registered keepout zones.
func (o *Optimizer) Keepouts() []board.Keepout {
	return o.keepouts
}

// AddKeepout registers a polygonal keepout zone with the given repulsion
// multiplier.
func (o *Optimizer) AddKeepout(outline geometry.Polygon, chargeMultiplier float64, name string) {
	o.keepouts = append(o.keepouts, board.NewKeepout(outline, chargeMultiplier, name))
}

// AddKeepoutCircle registers a circular keepout zone centered at (cx, cy).
func (o *Optimizer) AddKeepoutCircle(cx, cy, radius, chargeMultiplier float64, name string) {
	o.keepouts = append(o.keepouts, board.NewKeepoutCircle(cx, cy, radius, chargeMultiplier, name))
}

// Step advances the simulation by one tick: compute forces and torques,
// integrate them into velocities of non-fixed components, damp, clamp linear
// speed to the configured maximum, and advance positions.
func (o *Optimizer) Step(dt float64) {
	forces, torques := o.ForcesAndTorques()

	for _, c := range o.components {
		if c.Fixed {
			continue
		}
		c.ApplyForce(forces[c.Ref], dt)
		c.ApplyTorque(torques[c.Ref], dt)
		c.ApplyDamping(o.cfg.Damping, o.cfg.Damping)

		v := c.Velocity().Limit(o.cfg.MaxVelocity)
		c.VX, c.VY = v.X, v.Y

		c.UpdatePosition(dt)
	}
}

// Run repeats Step up to iterations times, invoking callback (when non-nil)
// with the iteration index and total energy after every step. The loop stops
// early once total energy and the maximum component speed both fall below
// the configured thresholds; convergence can occur on the very first checked
// iteration, for example when there are no movable components.
//
// Run returns the number of iterations actually executed.
func (o *Optimizer) Run(iterations int, dt float64, callback StepCallback) int {
	for i := 0; i < iterations; i++ {
		o.Step(dt)

		energy := o.Energy()
		if callback != nil {
			callback(i, energy)
		}

		if energy < o.cfg.EnergyThreshold && o.maxVelocity() < o.cfg.VelocityThreshold {
			return i + 1
		}
	}
	return iterations
}

// maxVelocity returns the largest linear speed across all components.
func (o *Optimizer) maxVelocity() float64 {
	var max float64
	for _, c := range o.components {
		if v := c.Velocity().Magnitude(); v > max {
			max = v
		}
	}
	return max
}

// SnapRotationsTo90 replaces every component's rotation with the nearest
// multiple of 90°, wrapped into [0, 360). This applies to fixed components
// too: snapping is an explicit finishing pass, not an integration step.
func (o *Optimizer) SnapRotationsTo90() {
	for _, c := range o.components {
		snapped := math.Round(c.Rotation/90) * 90
		snapped = math.Mod(snapped, 360)
		if snapped < 0 {
			snapped += 360
		}
		c.Rotation = snapped
		c.UpdatePinPositions()
	}
}

// TotalWireLength returns the sum over all springs of the Euclidean distance
// between the connected pins' current absolute positions. Springs with
// dangling references contribute nothing.
func (o *Optimizer) TotalWireLength() float64 {
	var total float64
	for _, s := range o.springs {
		p1, p2, ok := o.resolveSpring(s)
		if !ok {
			continue
		}
		total += p1.Position().Distance(p2.Position())
	}
	return total
}

// Report returns a human-readable multi-line placement summary.
func (o *Optimizer) Report() string {
	var b strings.Builder

	b.WriteString("Placement Report\n")
	b.WriteString("================\n")
	fmt.Fprintf(&b, "Board outline: %d vertices, area %.2f\n", len(o.outline.Vertices), math.Abs(o.outline.Area()))
	fmt.Fprintf(&b, "Springs: %d  Keepouts: %d\n", len(o.springs), len(o.keepouts))
	fmt.Fprintf(&b, "Total wire length: %.3f\n", o.TotalWireLength())
	fmt.Fprintf(&b, "Energy: %.3f\n", o.Energy())
	b.WriteString("\n")

	fmt.Fprintf(&b, "Components (%d):\n", len(o.components))
	for _, c := range o.components {
		marker := ""
		if c.Fixed {
			marker = " [fixed]"
		}
		fmt.Fprintf(&b, "  %-8s pos=(%.2f, %.2f)  rot=%.1f°%s\n", c.Ref, c.X, c.Y, c.Rotation, marker)
	}

	return b.String()
}

// resolveSpring looks up both endpoints of a spring.
// Missing components or pins report ok=false; this is the silent degradation
// path for dangling references.
func (o *Optimizer) resolveSpring(s Spring) (p1, p2 *board.Pin, ok bool) {
	c1 := o.index[s.Comp1Ref]
	c2 := o.index[s.Comp2Ref]
	if c1 == nil || c2 == nil {
		return nil, nil, false
	}
	p1 = c1.Pin(s.Pin1Num)
	p2 = c2.Pin(s.Pin2Num)
	if p1 == nil || p2 == nil {
		return nil, nil, false
	}
	return p1, p2, true
}
