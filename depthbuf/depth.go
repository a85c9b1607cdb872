// Package depthbuf implements the per-pixel fragment-lock discipline
// the rasterizer uses to make concurrent depth testing safe without a
// single global framebuffer lock: one *sync.Mutex per pixel, held only
// for the duration of that pixel's compare-and-write.
package depthbuf

import (
	"math"
	"sync"

	"github.com/cpuforge/raster3d"
)

// Buffer pairs a depth plane and a color plane, both indexed by the
// same plane of per-pixel locks, letting many goroutines race to
// shade the same framebuffer without either a single global lock or a
// torn depth/color pair. The depth test and the color write for a
// fragment that wins it happen under the same lock acquisition, so no
// other fragment can observe or clobber the color between them.
type Buffer struct {
	depth *raster3d.Plane[float32]
	color *raster3d.Plane[raster3d.Pixel]
	locks *raster3d.Plane[*sync.Mutex]
}

// New allocates a width x height depth/color buffer. Depth values
// start at positive infinity so any real fragment wins against an
// unpainted pixel; color values start at Black.
func New(width, height int) *Buffer {
	depth := raster3d.NewPlane[float32](width, height)
	depth.Clear(float32(math.Inf(1)))
	color := raster3d.NewPlane[raster3d.Pixel](width, height)
	color.Clear(raster3d.Black)
	locks := raster3d.NewPlane[*sync.Mutex](width, height)
	for i := range locks.Data() {
		locks.Data()[i] = &sync.Mutex{}
	}
	return &Buffer{depth: depth, color: color, locks: locks}
}

// Width returns the buffer's width in pixels.
func (b *Buffer) Width() int { return b.depth.Width() }

// Height returns the buffer's height in pixels.
func (b *Buffer) Height() int { return b.depth.Height() }

// Color returns the buffer's backing color plane. Reading it while
// other goroutines are still calling TestAndSet only guarantees each
// individual pixel is internally consistent (never a color from one
// depth paired with the z of another); it does not wait for rendering
// to finish.
func (b *Buffer) Color() *raster3d.Plane[raster3d.Pixel] { return b.color }

// TestAndSet atomically compares z against the depth currently stored
// at (x, y) and, if z is closer (strictly smaller), stores both z and
// c and returns true. Otherwise it leaves the buffer untouched and
// returns false. The comparison and both writes happen while holding
// that pixel's own lock, so two fragments racing for the same pixel
// can never land a depth from one and a color from the other: whole
// (z, c) is both checked and committed together, not one field at a
// time.
func (b *Buffer) TestAndSet(x, y int, z float64, c raster3d.Pixel) (bool, error) {
	lock, err := b.locks.At(x, y)
	if err != nil {
		return false, err
	}
	lock.Lock()
	defer lock.Unlock()

	candidate := float32(z)
	current := b.depth.AtUnchecked(x, y)
	if candidate >= current {
		return false, nil
	}
	b.depth.SetUnchecked(x, y, candidate)
	b.color.SetUnchecked(x, y, c)
	return true, nil
}

// DepthAt returns the depth currently stored at (x, y), without taking
// that pixel's lock. Callers that need a consistent read-modify-write
// must go through TestAndSet instead.
func (b *Buffer) DepthAt(x, y int) (float64, error) {
	v, err := b.depth.At(x, y)
	return float64(v), err
}

// ColorAt returns the color currently stored at (x, y), without taking
// that pixel's lock.
func (b *Buffer) ColorAt(x, y int) (raster3d.Pixel, error) {
	return b.color.At(x, y)
}

// Clear resets every pixel's depth back to positive infinity and every
// pixel's color back to Black.
func (b *Buffer) Clear() {
	b.depth.Clear(float32(math.Inf(1)))
	b.color.Clear(raster3d.Black)
}
