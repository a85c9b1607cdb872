package raster3d

import "fmt"

// Pixel is an RGBA8 color value, channels laid out red, green, blue,
// alpha in that byte order.
//
// The Go zero value is fully transparent black, not the spec's
// default-constructed opaque black — Go has no way to give a struct a
// non-zero zero value. Code that needs the spec's default must use
// [Black] explicitly rather than relying on a bare Pixel{}.
type Pixel struct {
	R, G, B, A uint8
}

// Black is the spec's default-constructed Pixel value: opaque black.
var Black = Pixel{R: 0, G: 0, B: 0, A: 255}

// Opaque builds a fully opaque Pixel from RGB components.
func Opaque(r, g, b uint8) Pixel {
	return Pixel{R: r, G: g, B: b, A: 255}
}

// Hex parses a "#RRGGBB" or "#RRGGBBAA" string into a Pixel. Alpha
// defaults to fully opaque when omitted. Malformed input returns Black.
func Hex(s string) Pixel {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	var r, g, b, a uint8 = 0, 0, 0, 255
	switch len(s) {
	case 6, 8:
		if !scanHexByte(s[0:2], &r) || !scanHexByte(s[2:4], &g) || !scanHexByte(s[4:6], &b) {
			return Black
		}
		if len(s) == 8 && !scanHexByte(s[6:8], &a) {
			return Black
		}
	default:
		return Black
	}
	return Pixel{R: r, G: g, B: b, A: a}
}

// PixelSlope interpolates each channel of a Pixel independently and
// linearly. It is the Slope most samplers over a Plane[Pixel] use.
type PixelSlope struct {
	a, b Pixel
}

// NewPixelSlope builds the Slope between a and b.
func NewPixelSlope(a, b Pixel) PixelSlope {
	return PixelSlope{a: a, b: b}
}

// At returns the channel-wise interpolated pixel at parameter t.
func (s PixelSlope) At(t float64) Pixel {
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + t*(float64(b)-float64(a)))
	}
	return Pixel{
		R: lerp(s.a.R, s.b.R),
		G: lerp(s.a.G, s.b.G),
		B: lerp(s.a.B, s.b.B),
		A: lerp(s.a.A, s.b.A),
	}
}

func scanHexByte(s string, out *uint8) bool {
	var v int
	n, err := fmt.Sscanf(s, "%02x", &v)
	if err != nil || n != 1 {
		return false
	}
	*out = uint8(v)
	return true
}
