package raster3d

import "testing"

func TestSamplerCornersExact(t *testing.T) {
	plane := NewPlane[Pixel](2, 2)
	plane.SetUnchecked(0, 0, Opaque(255, 0, 0))
	plane.SetUnchecked(1, 0, Opaque(0, 255, 0))
	plane.SetUnchecked(0, 1, Opaque(0, 0, 255))
	plane.SetUnchecked(1, 1, Opaque(255, 255, 255))

	s := NewSampler[Pixel, PixelSlope](plane, NewPixelSlope)

	if got := s.At(0, 0); got != Opaque(255, 0, 0) {
		t.Fatalf("At(0,0) = %v, want top-left texel", got)
	}
	if got := s.At(1, 0); got != Opaque(0, 255, 0) {
		t.Fatalf("At(1,0) = %v, want top-right texel", got)
	}
	if got := s.At(0, 1); got != Opaque(0, 0, 255) {
		t.Fatalf("At(0,1) = %v, want bottom-left texel", got)
	}
	if got := s.At(1, 1); got != Opaque(255, 255, 255) {
		t.Fatalf("At(1,1) = %v, want bottom-right texel", got)
	}
}

func TestSamplerMidpointAverages(t *testing.T) {
	plane := NewPlane[Pixel](2, 1)
	plane.SetUnchecked(0, 0, Opaque(0, 0, 0))
	plane.SetUnchecked(1, 0, Opaque(200, 0, 0))

	s := NewSampler[Pixel, PixelSlope](plane, NewPixelSlope)
	got := s.At(0.5, 0)
	if got.R != 100 {
		t.Fatalf("At(0.5,0).R = %d, want 100", got.R)
	}
}

func TestSamplerClampsOutOfRange(t *testing.T) {
	plane := NewPlane[Pixel](2, 2)
	plane.SetUnchecked(0, 0, Opaque(10, 20, 30))

	s := NewSampler[Pixel, PixelSlope](plane, NewPixelSlope)
	got := s.At(-5, -5)
	if got != Opaque(10, 20, 30) {
		t.Fatalf("At(-5,-5) = %v, want clamped top-left texel", got)
	}
}

func TestSamplerScalarSlope(t *testing.T) {
	plane := NewPlane[float64](3, 1)
	plane.SetUnchecked(0, 0, 0)
	plane.SetUnchecked(1, 0, 10)
	plane.SetUnchecked(2, 0, 20)

	s := NewSampler[float64, LinearSlope](plane, NewLinearSlope)
	if got := s.At(1, 0); got != 20 {
		t.Fatalf("At(1,0) = %v, want 20", got)
	}
	if got := s.At(0.25, 0); got != 5 {
		t.Fatalf("At(0.25,0) = %v, want 5", got)
	}
}
