package raster

import (
	"fmt"

	"github.com/cpuforge/raster3d"
	"github.com/cpuforge/raster3d/pool"
)

// TransformFunc maps a point through model/view space. It is expected
// to behave as a pure function: the pipeline makes no synchronization
// guarantees about when or how often it is called.
type TransformFunc[P any] func(p P) P

// ProjectFunc maps a transformed point into projected space, ahead of
// screen-space conversion. Same purity expectation as TransformFunc.
type ProjectFunc[P any] func(p P) P

// ScreenFunc returns the screen-space pixel coordinate of a point.
type ScreenFunc[P any] func(p P) (x, y int)

// ScissorFunc returns the clipping rectangle, as (left, right, top,
// bottom) inclusive pixel bounds, that the rasterizer draws within.
type ScissorFunc func() (left, right, top, bottom int)

// TesselationFunc subdivides a triangle into one or more output
// triangles, invoking emit once per output triangle. An error returned
// by emit must propagate back out of TesselationFunc unchanged.
type TesselationFunc[P any] func(a, b, c P, emit func(i, j, k P) error) error

// PainterFunc is invoked once per covered pixel, with x and y in
// screen space and p the interpolated per-pixel attribute value. Calls
// for one triangle run one after another, but each triangle is its own
// pool task, so overlapping triangles can call PainterFunc for the same
// (x, y) concurrently. A painter that reads and writes per-pixel
// storage must lock that pixel, as depthbuf.Buffer.TestAndSet does.
type PainterFunc[P any] func(x, y int, p P) error

// Raster is a programmable triangle pipeline: transform, tessellate,
// project, screen, scissor, slope and paint. Every stage is a field on
// this struct; a nil field is reported as a *raster3d.PipelineUnconfiguredError
// the first time the pipeline would have called it, naming the stage.
type Raster[P any, S raster3d.Slope[P]] struct {
	Transform   TransformFunc[P]
	Project     ProjectFunc[P]
	Screen      ScreenFunc[P]
	Slope       raster3d.SlopeFunc[P, S]
	Scissor     ScissorFunc
	Tesselation TesselationFunc[P]
	Painter     PainterFunc[P]

	pool *pool.Pool
}

// New builds a Raster that dispatches its rendering work onto p. None
// of the pipeline stages are configured; set the struct fields before
// calling Dispatch.
func New[P any, S raster3d.Slope[P]](p *pool.Pool) *Raster[P, S] {
	return &Raster[P, S]{pool: p}
}

func unconfigured(stage string) error {
	return &raster3d.PipelineUnconfiguredError{Callback: stage}
}

func (r *Raster[P, S]) screen(p P) (int, int, error) {
	if r.Screen == nil {
		return 0, 0, unconfigured("screen")
	}
	x, y := r.Screen(p)
	return x, y, nil
}

// darea computes the bounding-box pixel area of a triangle's raw,
// pre-transform, pre-project points directly through Screen. Dispatch
// uses this to decide whether to bisect, so a misconfigured Screen
// callback here cancels the whole dispatch rather than silently
// skipping the bisection decision.
func (r *Raster[P, S]) darea(t Triangle[P]) (uint64, error) {
	x0, y0, err := r.screen(t[0])
	if err != nil {
		return 0, err
	}
	x1, y1, err := r.screen(t[1])
	if err != nil {
		return 0, err
	}
	x2, y2, err := r.screen(t[2])
	if err != nil {
		return 0, err
	}

	minX, maxX := minMax3(x0, x1, x2)
	minY, maxY := minMax3(y0, y1, y2)

	width := uint64(maxX - minX)
	height := uint64(maxY - minY)
	return width * height, nil
}

func minMax3(a, b, c int) (min, max int) {
	min, max = a, a
	for _, v := range [2]int{b, c} {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// split divides the edge p0-p1 at its midpoint, producing the two
// triangles that result from inserting that midpoint opposite p2, and
// the larger of their two bounding-box areas.
func (r *Raster[P, S]) split(p0, p1, p2 P) (Triangle[P], Triangle[P], uint64, error) {
	if r.Slope == nil {
		return Triangle[P]{}, Triangle[P]{}, 0, unconfigured("slope")
	}
	middle := r.Slope(p0, p1).At(0.5)

	t0 := Triangle[P]{p0, middle, p2}
	t1 := Triangle[P]{middle, p1, p2}

	a0, err := r.darea(t0)
	if err != nil {
		return t0, t1, 0, err
	}
	a1, err := r.darea(t1)
	if err != nil {
		return t0, t1, 0, err
	}

	max := a0
	if a1 > max {
		max = a1
	}
	return t0, t1, max, nil
}

// bisect tries splitting all three edges of source and keeps whichever
// split produced the candidate pair with the smallest worst-child area.
func (r *Raster[P, S]) bisect(source Triangle[P]) (Triangle[P], Triangle[P], error) {
	bestT0, bestT1, bestMax, err := r.split(source[0], source[1], source[2])
	if err != nil {
		return bestT0, bestT1, err
	}

	t0, t1, m, err := r.split(source[1], source[2], source[0])
	if err != nil {
		return bestT0, bestT1, err
	}
	if m < bestMax {
		bestT0, bestT1, bestMax = t0, t1, m
	}

	t0, t1, m, err = r.split(source[2], source[0], source[1])
	if err != nil {
		return bestT0, bestT1, err
	}
	if m < bestMax {
		bestT0, bestT1, bestMax = t0, t1, m
	}

	return bestT0, bestT1, nil
}

// Dispatch submits a triangle for rendering, bisecting it recursively
// while its bounding-box area exceeds TesselAreaThreshold and the
// resulting children are no bigger, combined, than their parent. When
// a triangle is bisected, Dispatch recurses on its two children and
// returns without ever submitting the parent itself, so a successful
// bisection never renders the same pixels twice. A triangle that is
// not bisected is submitted as one pool task. An error from a pipeline
// callback inside that task reaches its future wrapped in
// raster3d.ErrTaskFailed.
func (r *Raster[P, S]) Dispatch(p0, p1, p2 P) []*pool.Future {
	triangle := Triangle[P]{p0, p1, p2}

	area, err := r.darea(triangle)
	if err != nil {
		return []*pool.Future{pool.Resolved(err)}
	}

	if area > TesselAreaThreshold {
		t0, t1, err := r.bisect(triangle)
		if err == nil {
			a0, e0 := r.darea(t0)
			a1, e1 := r.darea(t1)
			if e0 == nil && e1 == nil && a0+a1 <= area {
				var futures []*pool.Future
				futures = append(futures, r.Dispatch(t0[0], t0[1], t0[2])...)
				futures = append(futures, r.Dispatch(t1[0], t1[1], t1[2])...)
				return futures
			}
		}
	}

	future := r.pool.SubmitTask(func(ctx *pool.WorkerContext) error {
		if err := r.clipRasterize(triangle); err != nil {
			return fmt.Errorf("%w: %w", raster3d.ErrTaskFailed, err)
		}
		return nil
	})
	return []*pool.Future{future}
}

func (r *Raster[P, S]) clipRasterize(t Triangle[P]) error {
	if r.Transform == nil {
		return unconfigured("transform")
	}
	a := r.Transform(t[0])
	b := r.Transform(t[1])
	c := r.Transform(t[2])

	if r.Tesselation == nil {
		return unconfigured("tesselation")
	}
	return r.Tesselation(a, b, c, func(i, j, k P) error {
		return r.rasterize(Triangle[P]{i, j, k})
	})
}

func idx(b bool) int {
	if b {
		return 1
	}
	return 0
}

func greaterYX(y0, x0, y1, x1 int) bool {
	if y0 != y1 {
		return y0 > y1
	}
	return x0 > x1
}

// rasterize scan-converts a single already-tessellated triangle,
// calling Painter once for every covered pixel inside the scissor
// rectangle.
func (r *Raster[P, S]) rasterize(t Triangle[P]) error {
	if r.Project == nil {
		return unconfigured("project")
	}
	a := r.Project(t[0])
	b := r.Project(t[1])
	c := r.Project(t[2])

	x0, y0, err := r.screen(a)
	if err != nil {
		return err
	}
	x1, y1, err := r.screen(b)
	if err != nil {
		return err
	}
	x2, y2, err := r.screen(c)
	if err != nil {
		return err
	}

	// Sort the three vertices primarily by increasing Y, secondarily
	// by increasing X.
	if greaterYX(y0, x0, y1, x1) {
		a, b = b, a
		y0, x0, y1, x1 = y1, x1, y0, x0
	}
	if greaterYX(y1, x1, y2, x2) {
		b, c = c, b
		y1, x1, y2, x2 = y2, x2, y1, x1
	}
	if greaterYX(y0, x0, y1, x1) {
		a, b = b, a
		y0, x0, y1, x1 = y1, x1, y0, x0
	}

	shortside := (y1-y0)*(x2-x0) < (x1-x0)*(y2-y0)

	if r.Slope == nil {
		return unconfigured("slope")
	}
	var slopes [2]S
	if !shortside {
		slopes[0] = r.Slope(a, b)
	} else {
		slopes[0] = r.Slope(a, c)
	}
	if shortside {
		slopes[1] = r.Slope(a, b)
	} else {
		slopes[1] = r.Slope(a, c)
	}

	if r.Scissor == nil {
		return unconfigured("scissor")
	}
	left, right, top, bottom := r.Scissor()

	if r.Painter == nil {
		return unconfigured("painter")
	}

	ye := y1
	yt := y0
	startY := y0
	if top > startY {
		startY = top
	}
	for y := startY; y <= bottom; y++ {
		if y >= ye {
			if ye >= y2 {
				break
			}
			ye = y2
			yt = y1
			slopes[idx(shortside)] = r.Slope(b, c)
		}

		posY := float64(y-y0) / float64(y2-y0)
		posR := float64(y-yt) / float64(ye-yt)
		p0 := slopes[idx(shortside)].At(posR)
		p1 := slopes[idx(!shortside)].At(posY)

		sx0, _, err := r.screen(p0)
		if err != nil {
			return err
		}
		sx1, _, err := r.screen(p1)
		if err != nil {
			return err
		}
		if sx0 > sx1 {
			sx0, sx1 = sx1, sx0
			p0, p1 = p1, p0
		}

		rowSlope := r.Slope(p0, p1)
		startX := sx0
		if left > startX {
			startX = left
		}
		for x := startX; x < sx1 && x <= right; x++ {
			posX := float64(x-sx0) / float64(sx1-sx0)
			p := rowSlope.At(posX)

			if x < 0 || y < 0 || x > right || y > bottom {
				return &raster3d.FragmentOutOfBoundsError{
					X: x, Y: y, Left: left, Right: right, Top: top, Bottom: bottom,
				}
			}
			if err := r.Painter(x, y, p); err != nil {
				return err
			}
		}
	}
	return nil
}
