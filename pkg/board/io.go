package board

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/boardwalk-eda/boardwalk/pkg/geometry"
)

type boardJSON struct {
	Name       string          `json:"name,omitempty"`
	Outline    []pointJSON     `json:"outline"`
	Components []componentJSON `json:"components"`
	Keepouts   []keepoutJSON   `json:"keepouts,omitempty"`
}

type pointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type componentJSON struct {
	Ref      string    `json:"ref"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Rotation float64   `json:"rotation,omitempty"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Fixed    bool      `json:"fixed,omitempty"`
	Mass     float64   `json:"mass,omitempty"`
	Pins     []pinJSON `json:"pins,omitempty"`
}

type pinJSON struct {
	Number  string  `json:"number"`
	DX      float64 `json:"dx"`
	DY      float64 `json:"dy"`
	Net     int     `json:"net,omitempty"`
	NetName string  `json:"net_name,omitempty"`
}

type keepoutJSON struct {
	Name             string      `json:"name,omitempty"`
	ChargeMultiplier float64     `json:"charge_multiplier,omitempty"`
	Outline          []pointJSON `json:"outline,omitempty"`
	Circle           *circleJSON `json:"circle,omitempty"`
}

type circleJSON struct {
	CX     float64 `json:"cx"`
	CY     float64 `json:"cy"`
	Radius float64 `json:"radius"`
}

// ReadJSON decodes a board from its JSON interchange format.
//
// The input must be a JSON object with an "outline" array of {x, y} points
// and a "components" array. Each component carries its ref, pose, footprint
// size, and pins; pin positions are given as local-frame offsets ("dx"/"dy")
// and the absolute positions are recomputed from the pose on load. Keepouts
// may specify either an explicit "outline" or a "circle" shorthand.
//
// ReadJSON validates the decoded board with [Board.Validate] and returns a
// structured error for malformed input. The returned board is independent of
// r; ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Board, error) {
	var data boardJSON
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	b := &Board{
		Name:    data.Name,
		Outline: geometry.Polygon{Vertices: toVectors(data.Outline)},
	}

	for _, cj := range data.Components {
		c := NewComponent(cj.Ref, cj.X, cj.Y, cj.Width, cj.Height)
		c.Rotation = cj.Rotation
		c.Fixed = cj.Fixed
		if cj.Mass != 0 {
			c.Mass = cj.Mass
		}
		for _, pj := range cj.Pins {
			c.AddPin(pj.Number, pj.DX, pj.DY, pj.Net, pj.NetName)
		}
		b.Components = append(b.Components, c)
	}

	for _, kj := range data.Keepouts {
		var k Keepout
		switch {
		case kj.Circle != nil:
			k = NewKeepoutCircle(kj.Circle.CX, kj.Circle.CY, kj.Circle.Radius, kj.ChargeMultiplier, kj.Name)
		default:
			k = NewKeepout(geometry.Polygon{Vertices: toVectors(kj.Outline)}, kj.ChargeMultiplier, kj.Name)
		}
		b.Keepouts = append(b.Keepouts, k)
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// WriteJSON encodes a board to its JSON interchange format.
// The output round-trips through [ReadJSON]: pin positions are written as
// local-frame offsets so the pose remains the single source of truth.
func WriteJSON(b *Board, w io.Writer) error {
	out := boardJSON{
		Name:    b.Name,
		Outline: toPoints(b.Outline.Vertices),
	}

	for _, c := range b.Components {
		cj := componentJSON{
			Ref:      c.Ref,
			X:        c.X,
			Y:        c.Y,
			Rotation: c.Rotation,
			Width:    c.Width,
			Height:   c.Height,
			Fixed:    c.Fixed,
			Mass:     c.Mass,
		}
		for i := range c.Pins {
			p := &c.Pins[i]
			cj.Pins = append(cj.Pins, pinJSON{
				Number:  p.Number,
				DX:      p.OffsetX,
				DY:      p.OffsetY,
				Net:     p.Net,
				NetName: p.NetName,
			})
		}
		out.Components = append(out.Components, cj)
	}

	for _, k := range b.Keepouts {
		out.Keepouts = append(out.Keepouts, keepoutJSON{
			Name:             k.Name,
			ChargeMultiplier: k.ChargeMultiplier,
			Outline:          toPoints(k.Outline.Vertices),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ImportJSON reads a board file at path.
// It wraps [ReadJSON] with file handling; errors include the path.
func ImportJSON(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	b, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// ExportJSON writes a board to a JSON file at path.
func ExportJSON(b *Board, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(b, f)
}

func toVectors(pts []pointJSON) []geometry.Vector2D {
	if len(pts) == 0 {
		return nil
	}
	verts := make([]geometry.Vector2D, len(pts))
	for i, p := range pts {
		verts[i] = geometry.Vector2D{X: p.X, Y: p.Y}
	}
	return verts
}

func toPoints(verts []geometry.Vector2D) []pointJSON {
	if len(verts) == 0 {
		return nil
	}
	pts := make([]pointJSON, len(verts))
	for i, v := range verts {
		pts[i] = pointJSON{X: v.X, Y: v.Y}
	}
	return pts
}
