package recording

import "math"

// Matrix is a 2D affine transformation in row-major order:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
//
// Backends use it to map scene coordinates to their output space.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translate creates a translation.
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Scale creates a scaling.
func Scale(sx, sy float64) Matrix {
	return Matrix{A: sx, E: sy}
}

// Multiply returns m * other: other is applied first.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// IsIdentity reports whether m is the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// ScaleFactor returns the largest axis scale of m, used to scale line
// widths.
func (m Matrix) ScaleFactor() float64 {
	sx := math.Hypot(m.A, m.D)
	sy := math.Hypot(m.B, m.E)
	return math.Max(sx, sy)
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// Fit returns the transformation that maps a width x height canvas into
// dst, preserving the aspect ratio and centering the unused space.
func Fit(width, height float64, dst Rect) Matrix {
	if width <= 0 || height <= 0 || dst.Width <= 0 || dst.Height <= 0 {
		return Translate(dst.X, dst.Y)
	}
	dstRatio := dst.Width / dst.Height
	srcRatio := width / height

	var drawW, drawH float64
	if dstRatio > srcRatio {
		drawW, drawH = width*dst.Height/height, dst.Height
	} else {
		drawW, drawH = dst.Width, height*dst.Width/width
	}
	s := drawW / width
	offX := (dst.Width - drawW) / 2
	offY := (dst.Height - drawH) / 2
	return Translate(dst.X+offX, dst.Y+offY).Multiply(Scale(s, s))
}
