package board

import (
	"github.com/boardwalk-eda/boardwalk/pkg/errors"
	"github.com/boardwalk-eda/boardwalk/pkg/geometry"
)

// Board is the inbound model for a placement run: the outline polygon,
// the components to place, and any keepout zones.
type Board struct {
	Name       string           `json:"name,omitempty"`
	Outline    geometry.Polygon `json:"outline"`
	Components []*Component     `json:"components"`
	Keepouts   []Keepout        `json:"keepouts,omitempty"`
}

// New creates an empty board with the given outline.
func New(name string, outline geometry.Polygon) *Board {
	return &Board{Name: name, Outline: outline}
}

// AddComponent appends a component to the board.
// Returns a DUPLICATE_COMPONENT error if the ref is already present.
func (b *Board) AddComponent(c *Component) error {
	if b.Component(c.Ref) != nil {
		return errors.New(errors.ErrCodeDuplicateComponent, "component %q already on board", c.Ref)
	}
	b.Components = append(b.Components, c)
	return nil
}

// Component returns the component with the given ref, or nil.
func (b *Board) Component(ref string) *Component {
	for _, c := range b.Components {
		if c.Ref == ref {
			return c
		}
	}
	return nil
}

// Validate checks the board's caller contract: a usable outline, valid and
// unique component refs, positive masses, and well-formed net names.
func (b *Board) Validate() error {
	if len(b.Outline.Vertices) < 3 {
		return errors.New(errors.ErrCodeInvalidOutline, "board outline needs at least 3 vertices, got %d", len(b.Outline.Vertices))
	}

	seen := make(map[string]bool, len(b.Components))
	for _, c := range b.Components {
		if err := errors.ValidateRef(c.Ref); err != nil {
			return err
		}
		if seen[c.Ref] {
			return errors.New(errors.ErrCodeDuplicateComponent, "component %q appears twice", c.Ref)
		}
		seen[c.Ref] = true
		if c.Mass <= 0 {
			return errors.New(errors.ErrCodeInvalidComponent, "component %q has non-positive mass %v", c.Ref, c.Mass)
		}
		for i := range c.Pins {
			if err := errors.ValidateNetName(c.Pins[i].NetName); err != nil {
				return err
			}
		}
	}
	return nil
}
