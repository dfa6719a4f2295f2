// Package pkg provides the core libraries for Boardwalk PCB placement.
//
// # Overview
//
// Boardwalk optimizes component placement on printed circuit boards with a
// force-directed solver: springs pull connected components together while
// charged board edges and keepout zones push them apart. The pkg directory
// is organized into four main areas:
//
//  1. [geometry] / [board] - Domain model (vectors, polygons, boards, components)
//  2. [place] - The placement solver (forces, springs, integration, convergence)
//  3. [render] - Output generation (reports, ratsnest diagrams, format conversion)
//  4. [pipeline] - Orchestration (load → place → render) with caching
//
// # Architecture
//
// The typical data flow through Boardwalk:
//
//	Board JSON
//	     ↓
//	[board] package (parse + validate)
//	     ↓
//	[place] package (springs from nets, force integration)
//	     ↓
//	[render] package (reports, ratsnest DOT/SVG/PDF/PNG)
//	     ↓
//	JSON/report/diagram output
//
// # Quick Start
//
// Load a board, optimize it, and inspect the result:
//
//	import (
//	    "github.com/boardwalk-eda/boardwalk/pkg/board"
//	    "github.com/boardwalk-eda/boardwalk/pkg/place"
//	)
//
//	// 1. Load the board description
//	b, _ := board.ImportJSON("demo.json")
//
//	// 2. Build an optimizer and derive springs from shared nets
//	opt, _ := place.FromBoard(b, place.DefaultConfig())
//	opt.CreateSpringsFromNets()
//
//	// 3. Relax the system
//	opt.Run(1000, 0.01, nil)
//
//	// 4. Inspect the result
//	fmt.Println(opt.Report())
//
// # Main Packages
//
// ## Domain Model
//
// [geometry] - Immutable 2D vectors and polygons with the primitives the
// solver needs: rotation, centroid, signed area, and point-to-segment
// distance.
//
// [board] - Boards, components, pins, and keepout zones, plus JSON
// import/export. Components carry physical state (pose, velocity, mass) and
// respond to forces and torques.
//
// ## Solver
//
// [place] - The force-directed placement optimizer. Boundary edges and
// keepouts repel as charged segments, components repel each other, and
// springs derived from shared nets pull connected pins together. The solver
// integrates damped motion until energy and velocity fall below configurable
// thresholds. Configuration loads from TOML via [place.LoadConfig].
//
// ## Output
//
// [render] - SVG-to-PDF/PNG conversion utilities.
//
// [render/ratsnest] - Graphviz-based ratsnest diagrams showing components at
// their placed positions with spring connections.
//
// ## Infrastructure
//
// [pipeline] - The complete load → place → render pipeline used by the CLI
// and the HTTP API. Each stage caches its result keyed on a content hash of
// its inputs, so repeated runs over an unchanged board are free.
//
// [cache] - Cache interface with file, Redis, and null implementations, plus
// deterministic cache-key derivation for boards, placements, and artifacts.
//
// [store] - Run history persistence with in-memory and MongoDB backends.
//
// [observability] - Hook interfaces for pipeline, cache, and HTTP events.
//
// [errors] - Structured errors with machine-readable codes shared by the CLI
// and the API.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/place/...     # Specific package
//	go test -run Example        # Examples only
//
// [geometry]: https://pkg.go.dev/github.com/boardwalk-eda/boardwalk/pkg/geometry
// [board]: https://pkg.go.dev/github.com/boardwalk-eda/boardwalk/pkg/board
// [place]: https://pkg.go.dev/github.com/boardwalk-eda/boardwalk/pkg/place
// [render]: https://pkg.go.dev/github.com/boardwalk-eda/boardwalk/pkg/render
// [render/ratsnest]: https://pkg.go.dev/github.com/boardwalk-eda/boardwalk/pkg/render/ratsnest
// [pipeline]: https://pkg.go.dev/github.com/boardwalk-eda/boardwalk/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/boardwalk-eda/boardwalk/pkg/cache
// [store]: https://pkg.go.dev/github.com/boardwalk-eda/boardwalk/pkg/store
// [observability]: https://pkg.go.dev/github.com/boardwalk-eda/boardwalk/pkg/observability
// [errors]: https://pkg.go.dev/github.com/boardwalk-eda/boardwalk/pkg/errors
package pkg
