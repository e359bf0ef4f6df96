package rosette

import "github.com/chewxy/math32"

// Vec2 is a 2D vector in scene units.
type Vec2 struct {
	X, Y float32
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Length returns the length (magnitude) of the vector.
func (v Vec2) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Rotate returns the vector rotated by angle radians.
func (v Vec2) Rotate(angle float32) Vec2 {
	sin, cos := math32.Sincos(angle)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// IsZero returns true if the vector is the zero vector.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Approx returns true if two vectors are approximately equal within epsilon.
func (v Vec2) Approx(w Vec2, epsilon float32) bool {
	return math32.Abs(v.X-w.X) < epsilon && math32.Abs(v.Y-w.Y) < epsilon
}

// Vec3 is a vertex extended with a depth component for perspective.
type Vec3 struct {
	X, Y, Z float32
}

// V3 is a convenience function to create a Vec3.
func V3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Mul returns the vector scaled by a scalar.
func (v Vec3) Mul(s float32) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Neg returns the negation of the vector.
func (v Vec3) Neg() Vec3 {
	return Vec3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// XY drops the depth component.
func (v Vec3) XY() Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}

// Approx returns true if two vectors are approximately equal within epsilon.
func (v Vec3) Approx(w Vec3, epsilon float32) bool {
	return math32.Abs(v.X-w.X) < epsilon &&
		math32.Abs(v.Y-w.Y) < epsilon &&
		math32.Abs(v.Z-w.Z) < epsilon
}

// ToVec2 reads a property value as a 2D vector. A number n or a one
// component vector [n] becomes (n, n); text and undefined become zero.
func ToVec2(v Value) Vec2 {
	x, ok := v.At(0)
	if !ok {
		return Vec2{}
	}
	y, ok := v.At(1)
	if !ok {
		y = x
	}
	return Vec2{X: x, Y: y}
}

// ToVec3 reads a property value as a 3D vector, using z when the value has
// fewer than three components.
func ToVec3(v Value, z float32) Vec3 {
	xy := ToVec2(v)
	if c, ok := v.At(2); ok {
		z = c
	}
	return Vec3{X: xy.X, Y: xy.Y, Z: z}
}
