// Package place implements the force-directed component placement engine.
//
// The engine treats components as charged, spring-coupled rigid bodies
// confined to a board outline. Each simulation step computes, per component:
//
//   - repulsion from every edge of the board outline (a charged enclosure
//     pushing components toward the interior)
//   - repulsion from keepout polygon edges, scaled by the keepout's charge
//     multiplier
//   - pairwise charge repulsion between components, preventing overlap
//   - Hookean spring attraction between pins that share an electrical net
//   - a rotational stability torque biasing components toward axis-aligned
//     orientations, plus moments from spring forces acting at pin offsets
//
// Forces and torques are integrated with damped semi-implicit Euler, linear
// velocity is clamped to a configured maximum, and the loop stops early once
// total energy and the maximum component velocity both fall below their
// thresholds.
//
// # Usage
//
//	opt, err := place.New(geometry.Rectangle(50, 50, 100, 80), place.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	opt.AddComponent(u1)
//	opt.AddComponent(r1)
//	opt.CreateSpringsFromNets()
//	ran := opt.Run(1000, 0.01, nil)
//
// The optimizer is single-threaded and synchronous: Run executes a bounded,
// deterministic loop with no I/O. The per-iteration callback is invoked on
// the calling goroutine and must not mutate the component list.
package place
