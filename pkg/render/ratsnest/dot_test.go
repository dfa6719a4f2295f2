package ratsnest

import (
	"strings"
	"testing"

	"github.com/boardwalk-eda/boardwalk/pkg/board"
	"github.com/boardwalk-eda/boardwalk/pkg/geometry"
	"github.com/boardwalk-eda/boardwalk/pkg/place"
)

func testOptimizer(t *testing.T) *place.Optimizer {
	t.Helper()
	o, err := place.New(geometry.Rectangle(50, 50, 100, 80), place.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	u1 := board.NewComponent("U1", 20, 20, 8, 8)
	u1.AddPin("1", 4, 0, 1, "SDA")
	j1 := board.NewComponent("J1", 80, 20, 10, 4)
	j1.Fixed = true
	j1.AddPin("1", -5, 0, 1, "SDA")

	for _, c := range []*board.Component{u1, j1} {
		if err := o.AddComponent(c); err != nil {
			t.Fatal(err)
		}
	}
	o.CreateSpringsFromNets()
	return o
}

func TestToDOT(t *testing.T) {
	o := testOptimizer(t)
	dot := ToDOT(o, Options{})

	for _, want := range []string{
		"graph ratsnest {",
		`"U1"`,
		`"J1"`,
		`"U1" -- "J1"`,
		"fillcolor=lightgrey", // fixed J1
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	// Compact labels: no pose, no net names.
	if strings.Contains(dot, "SDA") {
		t.Error("compact DOT should not carry net names")
	}
}

func TestToDOTDetailed(t *testing.T) {
	o := testOptimizer(t)
	dot := ToDOT(o, Options{Detailed: true})

	if !strings.Contains(dot, "SDA") {
		t.Errorf("detailed DOT missing net name:\n%s", dot)
	}
	if !strings.Contains(dot, "(20.0, 20.0)") {
		t.Errorf("detailed DOT missing pose:\n%s", dot)
	}
}

func TestToDOTPinsPositions(t *testing.T) {
	o := testOptimizer(t)
	dot := ToDOT(o, Options{})

	// neato with pinned positions preserves the placement geometry.
	if !strings.Contains(dot, "layout=neato") {
		t.Error("DOT missing neato layout")
	}
	if !strings.Contains(dot, `pos="20.00,20.00!"`) {
		t.Errorf("DOT missing pinned position:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	o := testOptimizer(t)
	svg, err := RenderSVG(ToDOT(o, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not SVG")
	}
	if !strings.Contains(string(svg), "U1") {
		t.Error("SVG missing component ref")
	}
}
