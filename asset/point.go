package asset

// Vec2, Vec3 and Vec4 are the small fixed-size float64 vectors used by
// Point's sampler, color and position fields.
type Vec2 struct{ X, Y float64 }
type Vec3 struct{ X, Y, Z float64 }
type Vec4 struct{ X, Y, Z, W float64 }

func lerpVec2(a, b Vec2, t float64) Vec2 {
	return Vec2{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}
}

func lerpVec3(a, b Vec3, t float64) Vec3 {
	return Vec3{
		X: a.X + t*(b.X-a.X),
		Y: a.Y + t*(b.Y-a.Y),
		Z: a.Z + t*(b.Z-a.Z),
	}
}

func lerpVec4(a, b Vec4, t float64) Vec4 {
	return Vec4{
		X: a.X + t*(b.X-a.X),
		Y: a.Y + t*(b.Y-a.Y),
		Z: a.Z + t*(b.Z-a.Z),
		W: a.W + t*(b.W-a.W),
	}
}

// Point is the vertex type used by models loaded from a map: an index
// into the map's texture bank, a sampler coordinate, a color and a
// homogeneous model-space position.
type Point struct {
	TextureIndex uint32
	Sampler      Vec2
	Color        Vec3
	Position     Vec4
}

// PointSlope interpolates every float field of a Point independently.
// TextureIndex is not interpolated — it takes the value of whichever
// point the slope was built from on its left side, since a texture
// index sampled at a fractional position has no meaning.
type PointSlope struct {
	a, b Point
}

// NewPointSlope builds the Slope between a and b.
func NewPointSlope(a, b Point) PointSlope {
	return PointSlope{a: a, b: b}
}

// At returns the interpolated point at parameter t.
func (s PointSlope) At(t float64) Point {
	return Point{
		TextureIndex: s.a.TextureIndex,
		Sampler:      lerpVec2(s.a.Sampler, s.b.Sampler, t),
		Color:        lerpVec3(s.a.Color, s.b.Color, t),
		Position:     lerpVec4(s.a.Position, s.b.Position, t),
	}
}
