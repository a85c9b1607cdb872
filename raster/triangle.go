// Package raster implements the programmable triangle pipeline:
// transform, tessellate, project, screen, scissor, slope and paint,
// dispatched onto a pool.Pool with recursive area-based bisection so no
// single triangle monopolizes one worker.
package raster

// Triangle bundles the three points of a triangle in winding order.
// Point 0, 1 and 2 correspond exactly to the vertices a caller passed
// to Raster.Dispatch.
type Triangle[P any] [3]P

// TesselAreaThreshold is the bounding-box pixel area above which
// Dispatch bisects a triangle into two children before submitting
// either one as a rendering task.
const TesselAreaThreshold = 1024 * 64
