package rosette

import (
	"testing"
)

// TestNewShapeDefaults tests that NewShape starts detached and unnamed.
func TestNewShapeDefaults(t *testing.T) {
	s := NewShape(Points(0, 0))
	if s == nil {
		t.Fatal("NewShape returned nil")
	}
	if s.Scene() != nil {
		t.Error("new shape is attached")
	}
	if s.Name() != "" {
		t.Errorf("Name() = %q, want empty", s.Name())
	}
	if s.ID() != 0 {
		t.Errorf("ID() = %d, want 0 before Add", s.ID())
	}
}

// TestShapeOptions tests that every option reaches the shape.
func TestShapeOptions(t *testing.T) {
	child := NewShape(Points(1, 1))
	observer := VertexFunc(func(Vec3, *PropArgs, BaseRepetition) {})
	s := NewShape(nil,
		WithName("outer"),
		WithData(42),
		WithChild(child),
		WithUseParent(true),
		WithVertexObserver(observer),
		WithProps(Props{PropScale: Literal(Num(2))}),
	)

	if s.Name() != "outer" {
		t.Errorf("Name() = %q, want %q", s.Name(), "outer")
	}
	if s.Data() != 42 {
		t.Errorf("Data() = %v, want 42", s.Data())
	}
	if s.Child() != child {
		t.Error("WithChild not applied")
	}
	if !s.useParent {
		t.Error("WithUseParent not applied")
	}
	if s.observer == nil {
		t.Error("WithVertexObserver not applied")
	}
	if _, ok := s.Prop(PropScale); !ok {
		t.Error("WithProps not applied")
	}
}

// TestWithPropsCopies tests that later changes to the option map do not
// leak into the shape.
func TestWithPropsCopies(t *testing.T) {
	props := Props{PropScale: Literal(Num(2))}
	s := NewShape(Points(0, 0), WithProps(props))
	props[PropTranslate] = Literal(Vector(1, 1))

	if _, ok := s.Prop(PropTranslate); ok {
		t.Error("shape sees a prop added after construction")
	}
}

// TestSceneOptions tests scene defaults and overrides.
func TestSceneOptions(t *testing.T) {
	def := NewScene()
	if def.Width() != 600 || def.Height() != 600 {
		t.Errorf("default size = %vx%v, want 600x600", def.Width(), def.Height())
	}
	if def.MainColor() != "#fff" || def.Background() != "#000" {
		t.Errorf("default colors = %q on %q", def.MainColor(), def.Background())
	}

	sc := NewScene(WithSize(800, 400), WithMainColor("red"), WithBackground("#123"))
	if sc.Width() != 800 || sc.Height() != 400 {
		t.Errorf("size = %vx%v, want 800x400", sc.Width(), sc.Height())
	}
	if c := sc.Center(); c.X != 400 || c.Y != 200 {
		t.Errorf("Center() = %v, want (400, 200)", c)
	}
	if sc.MainColor() != "red" || sc.Background() != "#123" {
		t.Errorf("colors = %q on %q", sc.MainColor(), sc.Background())
	}
}
