// Package board models the physical contents of a printed circuit board for
// placement purposes: the board outline, rigid-body components with their
// pins and net assignments, and keepout zones.
//
// # Model
//
// A [Board] owns an outline polygon, a set of [Component] records keyed by
// reference designator, and zero or more [Keepout] regions. Components are
// rigid bodies: the placement engine mutates their pose and velocities in
// place during a run, and pin positions are rederived from the pose after
// every move.
//
// Pins store their position twice: a local offset, fixed relative to the
// component's unrotated frame at construction time, and an absolute board
// coordinate recomputed from the offset and the current pose. A pure
// translation of a component therefore translates every pin by exactly the
// same delta.
//
// # JSON interchange
//
// Boards can be read from and written to a JSON interchange format with
// [ReadJSON] and [WriteJSON] (and the file-based [ImportJSON]/[ExportJSON]
// wrappers). The format carries the outline, components with pins, and
// keepouts; it is the inbound contract for callers that map parsed board
// descriptions into this model.
package board
