// Package geometry provides the 2D primitives used by the placement engine.
//
// Two types make up the package:
//
//   - [Vector2D], an immutable value type with the usual vector algebra plus
//     rotation helpers. All operations return new values.
//   - [Polygon], an ordered vertex list describing a closed shape. Edges
//     connect consecutive vertices cyclically (last back to first), and the
//     outline is not required to be convex.
//
// Coordinates follow mathematical conventions: x increases to the right,
// y increases up, and positive rotation angles are counter-clockwise.
// Angles are expressed in degrees throughout, matching the board model.
//
// # Example
//
//	outline := geometry.Rectangle(50, 50, 100, 80)
//	fmt.Println(outline.Centroid())        // (50, 50)
//	fmt.Println(outline.ContainsPoint(geometry.Vector2D{X: 10, Y: 10}))
package geometry
