package rosette

import "github.com/chewxy/math32"

// Mat4 is a 4x4 transformation matrix stored in column-major order:
//
//	| m[0]  m[4]  m[8]   m[12] |
//	| m[1]  m[5]  m[9]   m[13] |
//	| m[2]  m[6]  m[10]  m[14] |
//	| m[3]  m[7]  m[11]  m[15] |
//
// Vertices are column vectors, so a.Mul(b) applies b first, then a.
// Chained builders (Translate, Scale, Rotate*) post-multiply: the last
// call is the first transform a vertex goes through.
type Mat4 [16]float32

// Identity4 returns the identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation creates a translation matrix.
func Translation(v Vec3) Mat4 {
	m := Identity4()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// Scaling creates a scaling matrix.
func Scaling(v Vec3) Mat4 {
	m := Identity4()
	m[0], m[5], m[10] = v.X, v.Y, v.Z
	return m
}

// RotationX creates a rotation about the X axis (angle in radians).
func RotationX(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	m := Identity4()
	m[5], m[6] = c, s
	m[9], m[10] = -s, c
	return m
}

// RotationY creates a rotation about the Y axis (angle in radians).
func RotationY(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	m := Identity4()
	m[0], m[2] = c, -s
	m[8], m[10] = s, c
	return m
}

// RotationZ creates a rotation about the Z axis (angle in radians).
func RotationZ(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	m := Identity4()
	m[0], m[1] = c, s
	m[4], m[5] = -s, c
	return m
}

// Skewing creates a shear matrix from skew angles in radians:
//
//	x' = x + tan(skewX) * y
//	y' = y + tan(skewY) * x
func Skewing(skewX, skewY float32) Mat4 {
	m := Identity4()
	m[1] = math32.Tan(skewY)
	m[4] = math32.Tan(skewX)
	return m
}

// Perspective creates a perspective projection with the given vertical field
// of view (radians), aspect ratio and clip planes. A far plane of +Inf
// produces an infinite projection.
func Perspective(fovy, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(fovy/2)
	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[11] = -1
	if !math32.IsInf(far, 1) {
		nf := 1 / (near - far)
		m[10] = (far + near) * nf
		m[14] = 2 * far * near * nf
	} else {
		m[10] = -1
		m[14] = -2 * near
	}
	return m
}

// Mul returns m * other.
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		b0, b1, b2, b3 := other[c*4], other[c*4+1], other[c*4+2], other[c*4+3]
		out[c*4] = m[0]*b0 + m[4]*b1 + m[8]*b2 + m[12]*b3
		out[c*4+1] = m[1]*b0 + m[5]*b1 + m[9]*b2 + m[13]*b3
		out[c*4+2] = m[2]*b0 + m[6]*b1 + m[10]*b2 + m[14]*b3
		out[c*4+3] = m[3]*b0 + m[7]*b1 + m[11]*b2 + m[15]*b3
	}
	return out
}

// Translate returns m * Translation(v).
func (m Mat4) Translate(v Vec3) Mat4 { return m.Mul(Translation(v)) }

// Scale returns m * Scaling(v).
func (m Mat4) Scale(v Vec3) Mat4 { return m.Mul(Scaling(v)) }

// RotateX returns m * RotationX(angle).
func (m Mat4) RotateX(angle float32) Mat4 { return m.Mul(RotationX(angle)) }

// RotateY returns m * RotationY(angle).
func (m Mat4) RotateY(angle float32) Mat4 { return m.Mul(RotationY(angle)) }

// RotateZ returns m * RotationZ(angle).
func (m Mat4) RotateZ(angle float32) Mat4 { return m.Mul(RotationZ(angle)) }

// TransformVec3 applies the matrix to a point with an implicit w of 1 and
// divides by the resulting w. A zero w is treated as 1.
func (m Mat4) TransformVec3(v Vec3) Vec3 {
	w := m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]
	if w == 0 {
		w = 1
	}
	return Vec3{
		X: (m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]) / w,
		Y: (m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]) / w,
		Z: (m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]) / w,
	}
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Mat4) IsIdentity() bool {
	return m == Identity4()
}
