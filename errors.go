package raster3d

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned by Plane.At when the given coordinate falls
// outside the plane's extent.
var ErrOutOfRange = errors.New("raster3d: coordinate out of range")

// ErrPipelineUnconfigured is returned when a raster pipeline callback is
// invoked before the host has installed it.
var ErrPipelineUnconfigured = errors.New("raster3d: pipeline callback not configured")

// ErrFragmentOutOfBounds is returned when scan conversion computes a
// fragment coordinate outside the scissor rectangle after clamping. It
// indicates an internal bug in the rasterizer, not a host error.
var ErrFragmentOutOfBounds = errors.New("raster3d: fragment coordinate outside scissor")

// ErrTaskFailed wraps an error raised by a painter or pipeline callback
// while running inside a raster pool task. It is delivered through the
// task's future; other tasks are unaffected.
var ErrTaskFailed = errors.New("raster3d: task failed")

// OutOfRangeError reports the coordinate and extent involved in a failed
// bounds check.
type OutOfRangeError struct {
	X, Y          int
	Width, Height int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("raster3d: coordinate (%d, %d) out of range for plane %dx%d", e.X, e.Y, e.Width, e.Height)
}

func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }

// PipelineUnconfiguredError names the missing callback.
type PipelineUnconfiguredError struct {
	Callback string
}

func (e *PipelineUnconfiguredError) Error() string {
	return fmt.Sprintf("raster3d: pipeline callback %q not configured", e.Callback)
}

func (e *PipelineUnconfiguredError) Unwrap() error { return ErrPipelineUnconfigured }

// FragmentOutOfBoundsError reports the offending fragment coordinate.
type FragmentOutOfBoundsError struct {
	X, Y                     int
	Left, Right, Top, Bottom int
}

func (e *FragmentOutOfBoundsError) Error() string {
	return fmt.Sprintf("raster3d: fragment (%d, %d) outside scissor [%d,%d]x[%d,%d]",
		e.X, e.Y, e.Left, e.Right, e.Top, e.Bottom)
}

func (e *FragmentOutOfBoundsError) Unwrap() error { return ErrFragmentOutOfBounds }
