// Package raster3d provides the core data types of a CPU triangle
// rasterizer: a typed pixel plane, a bilinear sampler over it, and the
// error kinds the rest of the engine (subpackages pool, raster, mesh,
// depthbuf, asset, texture) report through.
//
// The programmable rasterization pipeline itself lives in the raster
// subpackage; the work-stealing-adjacent thread pool that executes it
// lives in pool. This package only holds the shared, pipeline-agnostic
// plumbing: Plane, Pixel, Sampler and Slope.
package raster3d
