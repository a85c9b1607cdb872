package asset

import "math"

// Mat4 is a row-major 4x4 matrix used for a model's object-to-world
// transform.
type Mat4 [16]float64

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul4 returns a x b.
func Mul4(a, b Mat4) Mat4 {
	var m Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[r*4+c] = a[r*4+0]*b[0*4+c] + a[r*4+1]*b[1*4+c] +
				a[r*4+2]*b[2*4+c] + a[r*4+3]*b[3*4+c]
		}
	}
	return m
}

// MulVec4 transforms v by m.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3]*v.W,
		Y: m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7]*v.W,
		Z: m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11]*v.W,
		W: m[12]*v.X + m[13]*v.Y + m[14]*v.Z + m[15]*v.W,
	}
}

func translation4(x, y, z float64) Mat4 {
	m := Identity4()
	m[3], m[7], m[11] = x, y, z
	return m
}

func scaling4(x, y, z float64) Mat4 {
	m := Identity4()
	m[0], m[5], m[10] = x, y, z
	return m
}

func rotationX4(angle float64) Mat4 {
	s, c := math.Sin(angle), math.Cos(angle)
	m := Identity4()
	m[5], m[6] = c, -s
	m[9], m[10] = s, c
	return m
}

func rotationY4(angle float64) Mat4 {
	s, c := math.Sin(angle), math.Cos(angle)
	m := Identity4()
	m[0], m[2] = c, s
	m[8], m[10] = -s, c
	return m
}

func rotationZ4(angle float64) Mat4 {
	s, c := math.Sin(angle), math.Cos(angle)
	m := Identity4()
	m[0], m[1] = c, -s
	m[4], m[5] = s, c
	return m
}

// composeModelTransform builds the object-to-world matrix for a model
// from its translation, scale and pitch/yaw/roll rotation components,
// composing every component onto the accumulated result in order:
// translate, then scale, then rotate about X, then Y, then Z.
//
// The stream format this is loaded from comes from a loader whose
// reference implementation reassigns the transform at each rotation
// step instead of composing it, so only the final (roll) rotation ever
// survives; translation and scale are discarded entirely whenever a
// model specifies any rotation. This builds the composed matrix the
// format's own field documentation describes.
func composeModelTransform(x, y, z, sx, sy, sz, pitch, yaw, roll float64) Mat4 {
	m := translation4(x, y, z)
	m = Mul4(m, scaling4(sx, sy, sz))
	m = Mul4(m, rotationX4(pitch))
	m = Mul4(m, rotationY4(yaw))
	m = Mul4(m, rotationZ4(roll))
	return m
}
