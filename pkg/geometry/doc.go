// Package geometry provides the planar primitives the graph model is drawn
// with: points, line segments and circular arcs, plus the intersection
// routines used to count edge crossings.
//
// # Coordinate System
//
// Coordinates are screen coordinates: x grows to the right and y grows
// downward. Arc angles follow the usual drawing convention instead, measured
// in degrees counter-clockwise from the positive x axis as seen on screen,
// so a point above the center has angle 90.
//
//	arc := geometry.ArcFromTo(center, radius, from, to)
//	arc.ContainsAngle(arc.AngleOf(p))
//
// # Crossings
//
// [LineLineCrossings], [LineArcCrossings] and [ArcArcCrossings] each return
// the points where two curves meet. Degenerate inputs (parallel segments,
// disjoint, nested or coincident circles) yield no points rather than an
// error. Coincident circles have infinitely many common points; that case
// is reported as no crossing.
package geometry
