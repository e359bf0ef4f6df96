package rosette

// ShapeOption configures a Shape during creation.
// Use functional options to customize Shape behavior.
//
// Example:
//
//	// A ring of eight squares
//	s := rosette.NewShape(primitive.NewRegularPolygon(4), rosette.WithProps(rosette.Props{
//	    rosette.PropRepetitions: rosette.Literal(rosette.Num(8)),
//	    rosette.PropDistance:    rosette.Literal(rosette.Num(100)),
//	}))
type ShapeOption func(*Shape)

// WithProps sets the initial properties of the shape.
func WithProps(props Props) ShapeOption {
	return func(s *Shape) {
		for name, p := range props {
			s.props[name] = p
		}
	}
}

// WithChild makes the shape repeat and transform another shape instead of
// a primitive. The child is generated once per instance with the parent's
// context.
func WithChild(child *Shape) ShapeOption {
	return func(s *Shape) {
		s.child = child
	}
}

// WithUseParent forces the shape to regenerate on every call, even for a
// token it has already seen. Use it on children whose properties read the
// parent's repetition.
func WithUseParent(use bool) ShapeOption {
	return func(s *Shape) {
		s.useParent = use
	}
}

// WithVertexObserver registers a hook called for every final vertex.
func WithVertexObserver(o VertexObserver) ShapeOption {
	return func(s *Shape) {
		s.observer = o
	}
}

// WithData attaches client data, exposed to properties as PropArgs.Data.
func WithData(data any) ShapeOption {
	return func(s *Shape) {
		s.data = data
	}
}

// WithName sets a human readable name.
func WithName(name string) ShapeOption {
	return func(s *Shape) {
		s.name = name
	}
}

// SceneOption configures a Scene during creation.
type SceneOption func(*Scene)

// WithSize sets the scene dimensions. The scene center is half of them.
func WithSize(width, height float32) SceneOption {
	return func(sc *Scene) {
		sc.width = width
		sc.height = height
	}
}

// WithMainColor sets the stroke color used when a shape has neither fill
// nor stroke.
func WithMainColor(color string) SceneOption {
	return func(sc *Scene) {
		sc.mainColor = color
	}
}

// WithBackground sets the background color exporters paint behind shapes.
func WithBackground(color string) SceneOption {
	return func(sc *Scene) {
		sc.background = color
	}
}
