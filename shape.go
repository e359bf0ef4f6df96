package rosette

import (
	"fmt"
	"log/slog"
)

// Shape is a node of the scene that turns a property set into a flat vertex
// buffer, repeated and transformed according to its repetitions layout.
//
// A Shape either wraps a Producer (a leaf) or another Shape (see WithChild).
// The generated buffer, its index and bounding box are cached on the node
// and rebuilt lazily by Generate after a property changes.
//
// Shape is not safe for concurrent use.
type Shape struct {
	id    NodeID
	name  string
	scene *Scene

	props    Props
	producer Producer
	child    *Shape

	data      any
	useParent bool
	observer  VertexObserver

	buffer    []float32
	index     []IndexEntry
	isIndexed bool
	token     int
	bounding  Bounding

	// Cached static classification, refreshed on every invalidation.
	static        bool
	staticIndexed bool
}

// NewShape creates a leaf shape around a primitive producer.
// A nil producer yields an empty buffer unless WithChild is given.
func NewShape(producer Producer, opts ...ShapeOption) *Shape {
	s := &Shape{
		props:    make(Props),
		producer: producer,
		token:    -1,
		bounding: defaultBounding(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.refreshStatic()
	return s
}

// Wrap creates a shape that repeats and transforms child.
func Wrap(child *Shape, opts ...ShapeOption) *Shape {
	return NewShape(nil, append([]ShapeOption{WithChild(child)}, opts...)...)
}

// ID returns the node identifier assigned by the scene, 0 when detached.
func (s *Shape) ID() NodeID { return s.id }

// Name returns the human readable name.
func (s *Shape) Name() string { return s.name }

// Scene returns the owning scene, nil when detached.
func (s *Shape) Scene() *Scene { return s.scene }

// Child returns the wrapped shape, nil for leaves.
func (s *Shape) Child() *Shape { return s.child }

// Data returns the client data.
func (s *Shape) Data() any { return s.data }

// Producer returns the primitive producer, nil for wrapping shapes.
func (s *Shape) Producer() Producer { return s.producer }

// Closed reports whether the shape outline is a closed loop.
func (s *Shape) Closed() bool {
	if s.child != nil {
		return s.child.Closed()
	}
	if c, ok := s.producer.(Closer); ok {
		return c.Closed()
	}
	return false
}

// IsStatic reports whether no geometry property (of this shape or its
// nested children) is computed. A static shape generates once.
func (s *Shape) IsStatic() bool { return s.static }

// IsStaticIndexed reports whether the repetition count cannot change between
// generations, allowing the index to be reused.
func (s *Shape) IsStaticIndexed() bool { return s.staticIndexed }

// Prop returns the stored property and whether it is set.
func (s *Shape) Prop(name PropName) (Prop, bool) {
	p, ok := s.props[name]
	return p, ok
}

// GetProp resolves a property. Undefined or NaN results yield def.
//
// Computed properties receive a copy of args with Shape set to s when
// missing and Time set to the scene time when the shape is attached.
// A nil args is replaced by an empty context.
func (s *Shape) GetProp(name PropName, args *PropArgs, def Value) (Value, error) {
	p, ok := s.props[name]
	if !ok {
		return def, nil
	}
	if !p.IsComputed() {
		return p.Resolve(nil, def)
	}

	var a PropArgs
	if args != nil {
		a = *args
	} else {
		a = *emptyArgs()
	}
	if a.Shape == nil {
		a.Shape = s
	}
	if s.scene != nil {
		a.Time = s.scene.time
	}

	v, err := p.Resolve(&a, def)
	if err != nil {
		return Value{}, resolveError(name, err)
	}
	return v, nil
}

// SetProp sets a single property and invalidates the cached buffer.
// Setting PropRepetitions also invalidates the index.
func (s *Shape) SetProp(name PropName, p Prop) {
	s.props[name] = p
	s.ClearBuffer(name == PropRepetitions)
}

// SetProps sets several properties at once. The index is invalidated when
// forceIndexRebuild is set or the map contains PropRepetitions.
func (s *Shape) SetProps(props Props, forceIndexRebuild bool) {
	for name, p := range props {
		s.props[name] = p
	}
	_, reps := props[PropRepetitions]
	s.ClearBuffer(forceIndexRebuild || reps)
}

// SetChild replaces the wrapped shape. When the shape is attached the new
// child is registered with the scene.
func (s *Shape) SetChild(child *Shape) error {
	if s.scene != nil {
		if err := s.scene.replaceChild(s, child); err != nil {
			return err
		}
	} else {
		s.child = child
	}
	s.ClearBuffer(true)
	return nil
}

// ClearBuffer discards the cached buffer, and the index when clearIndex is
// set. Nested shapes propagate the invalidation to every ancestor up to the
// first-level child of the scene, since their buffers embed this one.
func (s *Shape) ClearBuffer(clearIndex bool) {
	s.clearBuffer(clearIndex)
	if s.scene == nil || s.scene.IsFirstLevel(s.id) {
		return
	}
	for _, id := range s.scene.Ancestors(s.id) {
		if a := s.scene.Node(id); a != nil {
			a.clearBuffer(clearIndex)
		}
	}
}

func (s *Shape) clearBuffer(clearIndex bool) {
	s.buffer = nil
	if clearIndex {
		s.isIndexed = false
		s.index = nil
	}
	s.refreshStatic()
}

func (s *Shape) refreshStatic() {
	s.static = s.props.allLiteral()
	if r, ok := s.producer.(StaticReporter); ok && !r.Static() {
		s.static = false
	}

	rep, ok := s.props[PropRepetitions]
	s.staticIndexed = !ok || !rep.IsComputed()

	if s.child != nil {
		s.static = s.static && s.child.static
		s.staticIndexed = s.staticIndexed && s.child.staticIndexed
	}
}

// Buffer returns the generated vertices as interleaved x,y pairs, or nil
// when the shape has not generated since the last invalidation.
// The slice is owned by the shape and must not be modified.
func (s *Shape) Buffer() []float32 { return s.buffer }

// IndexedBuffer returns one entry per generated frame, or nil when the shape
// never generated or its index was invalidated.
func (s *Shape) IndexedBuffer() []IndexEntry { return s.index }

// Bounding returns the extent of the latest generation.
func (s *Shape) Bounding() Bounding { return s.bounding }

// RepetitionCount resolves the repetitions property (default 1) and returns
// the total number of instances.
func (s *Shape) RepetitionCount() (int, error) {
	v, err := s.GetProp(PropRepetitions, nil, Num(1))
	if err != nil {
		return 0, err
	}
	return RepetitionCount(v), nil
}

// Generate rebuilds the buffer, index and bounding box for the given token.
//
// It does nothing when the shape is not attached to a scene, or when a
// buffer exists and either the shape is static or the token matches the last
// one (unless the shape uses its parent's context, see WithUseParent).
// directChild places the shape around the scene center; parent is the
// context of the enclosing shape for nested generation.
func (s *Shape) Generate(token int, directChild bool, parent *PropArgs) error {
	log := Logger()
	if s.scene == nil {
		return nil
	}
	if s.buffer != nil && (s.static || (token == s.token && !s.useParent)) {
		log.Debug("rosette: generation skipped", slog.Uint64("id", uint64(s.id)), slog.Int("token", token))
		return nil
	}

	rep := NewRepetition()
	args := &PropArgs{
		Repetition: &rep,
		Time:       s.scene.time,
		Shape:      s,
		Data:       s.data,
		Parent:     parent,
	}

	repetitions, err := s.GetProp(PropRepetitions, args, Num(1))
	if err != nil {
		return err
	}
	rep = PlanRepetitions(repetitions)

	ix := newIndexBuilder(s, !s.staticIndexed || !s.isIndexed)
	acc := newBoundsAccumulator()
	center := rep.Center()
	sceneCenter := s.scene.Center()

	buffers := make([][]float32, 0, max(rep.Count, 0))
	total := 0
	for row := 0; row < rep.Row.Count; row++ {
		for col := 0; col < rep.Col.Count; col++ {
			rep.Step(row, col)

			raw, bounds, err := s.produce(token, args)
			if err != nil {
				return err
			}
			params, err := resolveTransformParams(s, args)
			if err != nil {
				return err
			}
			c := NewComposer(params, Placement{
				Type:        rep.Type,
				Angle:       rep.Angle,
				Row:         row,
				Col:         col,
				Center:      center,
				DirectChild: directChild,
				SceneCenter: sceneCenter,
			}, bounds)

			out := s.transform(&c, raw, args, &acc)
			buffers = append(buffers, out)
			total += len(out)
			ix.add(len(out), rep)
		}
	}

	s.bounding = acc.bounding()
	s.buffer = make([]float32, 0, total)
	for _, b := range buffers {
		s.buffer = append(s.buffer, b...)
	}
	s.index = ix.finish(s.index, total)
	s.isIndexed = true
	// The token marks a committed buffer: a failed pass must run again.
	s.token = token

	log.Debug("rosette: shape generated",
		slog.Uint64("id", uint64(s.id)),
		slog.Int("token", token),
		slog.String("layout", rep.Type.String()),
		slog.Int("repetitions", rep.Count),
		slog.Int("vertices", total/2),
		slog.Bool("reindexed", ix.rebuilt))
	return nil
}

// produce returns the raw vertices of the current instance and the extent
// used to resolve transform and perspective origins.
func (s *Shape) produce(token int, args *PropArgs) ([]float32, Bounding, error) {
	if s.child != nil {
		if err := s.child.Generate(token, false, args); err != nil {
			return nil, Bounding{}, err
		}
		return s.child.Buffer(), s.child.Bounding(), nil
	}
	if s.producer == nil {
		return nil, BoundsOf(nil), nil
	}
	raw, err := s.producer.Produce(args)
	if err != nil {
		return nil, Bounding{}, fmt.Errorf("%w: shape %d: %w", ErrProduce, s.id, err)
	}
	return raw, BoundsOf(raw), nil
}

// transform applies c to every vertex pair of raw. A trailing odd
// coordinate is dropped.
func (s *Shape) transform(c *Composer, raw []float32, args *PropArgs, acc *boundsAccumulator) []float32 {
	n := len(raw) &^ 1
	out := make([]float32, n)
	count := n / 2
	for i := 0; i < n; i += 2 {
		v := c.Apply(raw[i], raw[i+1])
		if s.observer != nil {
			index := i/2 + 1
			s.observer.ObserveVertex(v, snapshotArgs(args), BaseRepetition{
				Index:  index,
				Count:  count,
				Offset: float32(index) / float32(count),
			})
		}
		out[i] = v.X
		out[i+1] = v.Y
		acc.add(v.X, v.Y)
	}
	return out
}

// snapshotArgs copies args and its repetition so observers cannot alter
// the live generation context.
func snapshotArgs(args *PropArgs) *PropArgs {
	cp := *args
	if args.Repetition != nil {
		rep := *args.Repetition
		cp.Repetition = &rep
	}
	return &cp
}
