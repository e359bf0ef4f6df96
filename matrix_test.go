package rosette

import (
	"math"
	"testing"
)

const eps = 1e-4

func TestMat4IsIdentity(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		want bool
	}{
		{"identity", Identity4(), true},
		{"zero translation", Translation(V3(0, 0, 0)), true},
		{"unit scale", Scaling(V3(1, 1, 1)), true},
		{"zero rotation", RotationZ(0), true},
		{"zero skew", Skewing(0, 0), true},
		{"translation", Translation(V3(1, 2, 3)), false},
		{"scale", Scaling(V3(2, 2, 1)), false},
		{"rotation", RotationZ(math.Pi / 4), false},
		{"zero matrix", Mat4{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsIdentity(); got != tt.want {
				t.Errorf("Mat4%v.IsIdentity() = %v, want %v", tt.m, got, tt.want)
			}
		})
	}
}

func TestMat4TransformVec3(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"identity", Identity4(), V3(1, 2, 3), V3(1, 2, 3)},
		{"translate", Translation(V3(10, -5, 1)), V3(1, 2, 3), V3(11, -3, 4)},
		{"scale", Scaling(V3(2, 3, 4)), V3(1, 1, 1), V3(2, 3, 4)},
		{"rotate z 90", RotationZ(math.Pi / 2), V3(1, 0, 0), V3(0, 1, 0)},
		{"rotate x 90", RotationX(math.Pi / 2), V3(0, 1, 0), V3(0, 0, 1)},
		{"rotate y 90", RotationY(math.Pi / 2), V3(0, 0, 1), V3(1, 0, 0)},
		{"skew x 45", Skewing(math.Pi/4, 0), V3(0, 1, 0), V3(1, 1, 0)},
		{"skew y 45", Skewing(0, math.Pi/4), V3(1, 0, 0), V3(1, 1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformVec3(tt.in)
			if !got.Approx(tt.want, eps) {
				t.Errorf("TransformVec3(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMat4MulOrder(t *testing.T) {
	// Chained builders apply the last call first.
	m := Identity4().Translate(V3(10, 0, 0)).Scale(V3(2, 2, 1))
	got := m.TransformVec3(V3(1, 0, 0))
	want := V3(12, 0, 0)
	if !got.Approx(want, eps) {
		t.Errorf("T*S applied to (1,0,0) = %v, want %v", got, want)
	}

	m = Identity4().Scale(V3(2, 2, 1)).Translate(V3(10, 0, 0))
	got = m.TransformVec3(V3(1, 0, 0))
	want = V3(22, 0, 0)
	if !got.Approx(want, eps) {
		t.Errorf("S*T applied to (1,0,0) = %v, want %v", got, want)
	}
}

func TestMat4MulIdentity(t *testing.T) {
	m := RotationZ(0.3).Translate(V3(4, 5, 6)).Scale(V3(2, 3, 4))
	if got := m.Mul(Identity4()); got != m {
		t.Errorf("m * I = %v, want %v", got, m)
	}
	if got := Identity4().Mul(m); got != m {
		t.Errorf("I * m = %v, want %v", got, m)
	}
}

func TestPerspectiveInfiniteFar(t *testing.T) {
	m := Perspective(-math.Pi/2, 1, 0, float32(math.Inf(1)))

	if m[10] != -1 || m[11] != -1 || m[14] != 0 {
		t.Errorf("infinite far terms = (%v, %v, %v), want (-1, -1, 0)", m[10], m[11], m[14])
	}
	// A point at depth z projects to (x/z, y/z).
	got := m.TransformVec3(V3(2, 4, 10))
	if math.Abs(float64(got.X-0.2)) > eps || math.Abs(float64(got.Y-0.4)) > eps {
		t.Errorf("projected = %v, want (0.2, 0.4)", got)
	}
}

func TestPerspectiveFinite(t *testing.T) {
	m := Perspective(math.Pi/2, 2, 1, 100)
	if math.Abs(float64(m[0]-0.5)) > eps {
		t.Errorf("m[0] = %v, want 0.5", m[0])
	}
	if math.Abs(float64(m[5]-1)) > eps {
		t.Errorf("m[5] = %v, want 1", m[5])
	}
	wantZ := float32(101.0 / -99.0)
	if math.Abs(float64(m[10]-wantZ)) > eps {
		t.Errorf("m[10] = %v, want %v", m[10], wantZ)
	}
}

func TestTransformVec3ZeroW(t *testing.T) {
	var m Mat4
	m[0], m[5], m[10] = 1, 1, 1
	got := m.TransformVec3(V3(3, 4, 5))
	if got != V3(3, 4, 5) {
		t.Errorf("zero w transform = %v, want (3, 4, 5)", got)
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	m := RotationZ(0.3).Translate(V3(4, 5, 6))
	n := Scaling(V3(2, 3, 4))
	b.ReportAllocs()
	for b.Loop() {
		m = m.Mul(n)
	}
	_ = m
}

func BenchmarkTransformVec3(b *testing.B) {
	m := RotationZ(0.3).Translate(V3(4, 5, 6))
	v := V3(1, 2, 3)
	b.ReportAllocs()
	for b.Loop() {
		_ = m.TransformVec3(v)
	}
}
