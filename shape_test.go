package rosette

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// attached adds s to a fresh scene.
func attached(t *testing.T, s *Shape) *Scene {
	t.Helper()
	scene := NewScene()
	require.NoError(t, scene.Add(s))
	return scene
}

// countingProducer counts Produce calls.
type countingProducer struct {
	coords []float32
	calls  int
	static bool
}

func (p *countingProducer) Produce(*PropArgs) ([]float32, error) {
	p.calls++
	return append([]float32(nil), p.coords...), nil
}

func (p *countingProducer) Static() bool { return p.static }

func (p *countingProducer) Closed() bool { return true }

func TestGenerateRingOfPoints(t *testing.T) {
	s := NewShape(Points(1, 0), WithProps(Props{
		PropRepetitions: Literal(Num(4)),
		PropDistance:    Literal(Num(10)),
		PropDisplace:    Literal(Num(0)),
	}))
	attached(t, s)

	require.NoError(t, s.Generate(1, false, nil))

	buf := s.Buffer()
	require.Len(t, buf, 8)
	for k := 0; k < 4; k++ {
		angle := float64(k) * math.Pi / 2
		assert.InDelta(t, 11*math.Cos(angle), buf[k*2], eps, "x of instance %d", k+1)
		assert.InDelta(t, 11*math.Sin(angle), buf[k*2+1], eps, "y of instance %d", k+1)
	}

	index := s.IndexedBuffer()
	require.Len(t, index, 4)
	for k, e := range index {
		assert.Same(t, s, e.Shape)
		assert.Equal(t, 2, e.FrameLength)
		assert.Equal(t, k+1, e.Repetition.Index)
		assert.Equal(t, 4, e.Repetition.Count)
		assert.Nil(t, e.Parent)
	}
}

func TestGenerateDirectChildIsCentered(t *testing.T) {
	s := NewShape(Points(0, 0), WithProps(Props{PropDistance: Literal(Num(0))}))
	scene := NewScene(WithSize(400, 200))
	require.NoError(t, scene.Add(s))

	require.NoError(t, scene.Generate(1))
	assert.Equal(t, []float32{200, 100}, s.Buffer())
}

func TestGenerateMatrix(t *testing.T) {
	s := NewShape(Points(0, 0), WithProps(Props{
		PropRepetitions: Literal(Vector(2, 3)),
		PropDistance:    Literal(Vector(10, 20)),
	}))
	attached(t, s)
	require.NoError(t, s.Generate(1, false, nil))

	count, err := s.RepetitionCount()
	require.NoError(t, err)
	assert.Equal(t, 6, count)

	index := s.IndexedBuffer()
	require.Len(t, index, 6)
	last := index[5].Repetition
	assert.Equal(t, Matrix, last.Type)
	assert.Equal(t, 3, last.Row.Count)
	assert.Equal(t, 2, last.Col.Count)

	// Row-major: (row 0, col 0) first.
	assert.Equal(t, []float32{-5, -20, 5, -20, -5, 0, 5, 0, -5, 20, 5, 20}, s.Buffer())
}

func TestGenerateIdempotent(t *testing.T) {
	p := &countingProducer{coords: []float32{1, 2}}
	s := NewShape(p, WithProps(Props{
		PropRotateZ: Dynamic(func(a *PropArgs) Value { return Num(float32(a.Time)) }),
	}))
	attached(t, s)

	require.NoError(t, s.Generate(7, false, nil))
	buf, index := s.Buffer(), s.IndexedBuffer()
	require.NoError(t, s.Generate(7, false, nil))

	assert.Equal(t, 1, p.calls, "same token short-circuits")
	assert.Same(t, &buf[0], &s.Buffer()[0])
	assert.Same(t, &index[0], &s.IndexedBuffer()[0])

	require.NoError(t, s.Generate(8, false, nil))
	assert.Equal(t, 2, p.calls, "new token regenerates a dynamic shape")
}

func TestGenerateStaticShapeOnce(t *testing.T) {
	p := &countingProducer{coords: []float32{1, 2}, static: true}
	s := NewShape(p, WithProps(Props{PropScale: Literal(Num(2))}))
	attached(t, s)
	assert.True(t, s.IsStatic())

	for token := range 3 {
		require.NoError(t, s.Generate(token, false, nil))
	}
	assert.Equal(t, 1, p.calls)

	p.static = false
	s.ClearBuffer(false)
	assert.False(t, s.IsStatic(), "producer reports itself dynamic")
}

func TestGenerateUseParentAlwaysRegenerates(t *testing.T) {
	p := &countingProducer{coords: []float32{1, 2}}
	s := NewShape(p, WithUseParent(true), WithProps(Props{
		PropScale: Dynamic(func(*PropArgs) Value { return Num(1) }),
	}))
	attached(t, s)

	require.NoError(t, s.Generate(1, false, nil))
	require.NoError(t, s.Generate(1, false, nil))
	assert.Equal(t, 2, p.calls)
}

func TestGenerateDetachedIsNoop(t *testing.T) {
	p := &countingProducer{coords: []float32{1, 2}}
	s := NewShape(p)

	require.NoError(t, s.Generate(1, true, nil))
	assert.Nil(t, s.Buffer())
	assert.Nil(t, s.IndexedBuffer())
	assert.Zero(t, p.calls)
}

func TestGeneratePerspectiveZeroMatchesNone(t *testing.T) {
	props := Props{
		PropRepetitions: Literal(Num(5)),
		PropDistance:    Literal(Num(30)),
		PropRotateX:     Literal(Num(0.7)),
		PropScale:       Literal(Vector(2, 3)),
	}
	coords := []float32{-1, -1, 1, -1, 1, 1, -1, 1}

	plain := NewShape(Points(coords...), WithProps(props))
	attached(t, plain)
	require.NoError(t, plain.Generate(1, true, nil))

	withZero := NewShape(Points(coords...), WithProps(props), WithProps(Props{
		PropPerspective:       Literal(Num(0)),
		PropPerspectiveOrigin: Literal(Vector(1, 1)),
	}))
	attached(t, withZero)
	require.NoError(t, withZero.Generate(1, true, nil))

	assert.Equal(t, plain.Buffer(), withZero.Buffer())
}

func TestGenerateBounding(t *testing.T) {
	s := NewShape(Points(-1, -1, 1, 1), WithProps(Props{
		PropRepetitions: Literal(Num(3)),
		PropDistance:    Literal(Num(20)),
	}))
	attached(t, s)
	require.NoError(t, s.Generate(1, false, nil))

	assert.Equal(t, BoundsOf(s.Buffer()), s.Bounding())
	b := s.Bounding()
	assert.Equal(t, b.X-b.Width/2, b.CX)
}

func TestGenerateEmpty(t *testing.T) {
	s := NewShape(Points(1, 1), WithProps(Props{PropRepetitions: Literal(Num(0))}))
	attached(t, s)
	require.NoError(t, s.Generate(1, false, nil))

	assert.NotNil(t, s.Buffer())
	assert.Empty(t, s.Buffer())
	assert.NotNil(t, s.IndexedBuffer())
	assert.Empty(t, s.IndexedBuffer())
	assert.True(t, s.Bounding().IsEmpty())
}

func TestGenerateOddBufferTruncated(t *testing.T) {
	s := NewShape(Points(1, 2, 3), WithProps(Props{PropDistance: Literal(Num(0))}))
	attached(t, s)
	require.NoError(t, s.Generate(1, false, nil))
	assert.Equal(t, []float32{1, 2}, s.Buffer())
}

func TestGenerateErrors(t *testing.T) {
	boom := errors.New("boom")

	s := NewShape(Points(1, 2), WithProps(Props{
		PropRepetitions: Computed(func(*PropArgs) (Value, error) { return Value{}, boom }),
	}))
	attached(t, s)
	err := s.Generate(1, false, nil)
	assert.ErrorIs(t, err, ErrPropResolve)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, s.Buffer())

	s = NewShape(ProducerFunc(func(*PropArgs) ([]float32, error) { return nil, boom }))
	attached(t, s)
	err = s.Generate(1, false, nil)
	assert.ErrorIs(t, err, ErrProduce)
	assert.ErrorIs(t, err, boom)
}

func TestGenerateFailureIsNotCached(t *testing.T) {
	boom := errors.New("boom")
	s := NewShape(Points(1, 0), WithProps(Props{
		PropDistance: Literal(Num(0)),
		PropRotateZ: Computed(func(a *PropArgs) (Value, error) {
			if a.Time > 0 {
				return Value{}, boom
			}
			return Num(0), nil
		}),
	}))
	scene := attached(t, s)
	require.NoError(t, scene.Update(0, 1))
	require.NotNil(t, s.Buffer())

	scene.time = 10
	for range 2 {
		err := s.Generate(2, true, nil)
		assert.ErrorIs(t, err, boom, "same token must not reuse the previous buffer")
	}
}

func TestSetPropInvalidation(t *testing.T) {
	s := NewShape(Points(1, 0), WithProps(Props{PropRepetitions: Literal(Num(3))}))
	attached(t, s)
	require.NoError(t, s.Generate(1, false, nil))

	s.SetProp(PropScale, Literal(Num(2)))
	assert.Nil(t, s.Buffer())
	assert.Len(t, s.IndexedBuffer(), 3, "non-repetition property keeps the index")

	require.NoError(t, s.Generate(1, false, nil))
	s.SetProp(PropRepetitions, Literal(Num(5)))
	assert.Nil(t, s.Buffer())
	assert.Nil(t, s.IndexedBuffer())

	require.NoError(t, s.Generate(1, false, nil))
	assert.Len(t, s.IndexedBuffer(), 5)

	s.SetProps(Props{PropSkewX: Literal(Num(0.1))}, true)
	assert.Nil(t, s.IndexedBuffer(), "forced rebuild")
}

func TestIndexReusedForStaticRepetitions(t *testing.T) {
	s := NewShape(Points(1, 0), WithProps(Props{
		PropRepetitions: Literal(Num(3)),
		PropScale:       Dynamic(func(a *PropArgs) Value { return Num(float32(a.Time) + 1) }),
	}))
	attached(t, s)
	assert.False(t, s.IsStatic())
	assert.True(t, s.IsStaticIndexed())

	require.NoError(t, s.Generate(1, false, nil))
	first := s.IndexedBuffer()
	require.NoError(t, s.Generate(2, false, nil))
	assert.Same(t, &first[0], &s.IndexedBuffer()[0])
}

func TestIndexRebuiltForDynamicRepetitions(t *testing.T) {
	n := 2
	s := NewShape(Points(1, 0), WithProps(Props{
		PropRepetitions: Dynamic(func(*PropArgs) Value { return Num(float32(n)) }),
	}))
	attached(t, s)
	assert.False(t, s.IsStaticIndexed())

	require.NoError(t, s.Generate(1, false, nil))
	assert.Len(t, s.IndexedBuffer(), 2)

	n = 5
	require.NoError(t, s.Generate(2, false, nil))
	assert.Len(t, s.IndexedBuffer(), 5)
	assert.Len(t, s.Buffer(), 10)
}

func TestVertexObserver(t *testing.T) {
	type call struct {
		v   Vec3
		rep BaseRepetition
		idx int
	}
	var calls []call
	s := NewShape(Points(0, 0, 1, 0, 2, 0), WithVertexObserver(VertexFunc(func(v Vec3, a *PropArgs, rep BaseRepetition) {
		calls = append(calls, call{v: v, rep: rep, idx: a.Repetition.Index})
		a.Repetition.Index = 99
	})), WithProps(Props{
		PropRepetitions: Literal(Num(2)),
		PropDistance:    Literal(Num(0)),
	}))
	attached(t, s)
	require.NoError(t, s.Generate(1, false, nil))

	require.Len(t, calls, 6)
	assert.Equal(t, BaseRepetition{Index: 1, Count: 3, Offset: float32(1) / 3}, calls[0].rep)
	assert.Equal(t, 3, calls[2].rep.Index)
	assert.Equal(t, 1, calls[2].idx)
	assert.Equal(t, 2, calls[3].idx, "observer mutations do not leak into the generation")
	assert.Equal(t, 2, s.IndexedBuffer()[1].Repetition.Index)
}

func TestNestedGenerate(t *testing.T) {
	leaf := NewShape(Points(1, 0), WithName("leaf"), WithProps(Props{
		PropRepetitions: Literal(Num(3)),
		PropDistance:    Literal(Num(10)),
	}))
	ring := Wrap(leaf, WithName("ring"), WithProps(Props{
		PropRepetitions: Literal(Num(2)),
		PropDistance:    Literal(Num(100)),
	}))
	scene := attached(t, ring)

	require.NoError(t, ring.Generate(1, false, nil))
	assert.Len(t, ring.Buffer(), 12)
	assert.Equal(t, leaf.Closed(), ring.Closed())

	index := ring.IndexedBuffer()
	require.Len(t, index, 6)
	for i, e := range index {
		assert.Same(t, leaf, e.Shape)
		assert.Equal(t, 2, e.FrameLength)
		assert.Equal(t, i%3+1, e.Repetition.Index)
		require.NotNil(t, e.Parent)
		assert.Same(t, ring, e.Parent.Shape)
		assert.Equal(t, i/3+1, e.Parent.Repetition.Index)
		assert.Equal(t, 6, e.Parent.FrameLength)
	}
	// Parent chains are not shared between entries.
	assert.NotSame(t, index[0].Parent, index[3].Parent)

	assert.True(t, scene.IsFirstLevel(ring.ID()))
	assert.False(t, scene.IsFirstLevel(leaf.ID()))
	assert.Equal(t, []NodeID{ring.ID()}, scene.Ancestors(leaf.ID()))
}

func TestNestedChildReadsParent(t *testing.T) {
	leaf := NewShape(Points(1, 0), WithUseParent(true), WithProps(Props{
		PropDistance: Literal(Num(0)),
		PropScale: Dynamic(func(a *PropArgs) Value {
			return Num(float32(a.Parent.Repetition.Index))
		}),
	}))
	ring := Wrap(leaf, WithProps(Props{
		PropRepetitions: Literal(Vector(3, 1)),
		PropDistance:    Literal(Num(0)),
	}))
	attached(t, ring)

	require.NoError(t, ring.Generate(1, false, nil))
	assert.Equal(t, []float32{1, 0, 2, 0, 3, 0}, ring.Buffer())
}

func TestNestedInvalidationBubbles(t *testing.T) {
	leaf := NewShape(Points(1, 0))
	mid := Wrap(leaf)
	top := Wrap(mid)
	attached(t, top)

	require.NoError(t, top.Generate(1, true, nil))
	require.NotNil(t, top.Buffer())
	require.NotNil(t, mid.Buffer())

	leaf.SetProp(PropRepetitions, Literal(Num(4)))
	assert.Nil(t, leaf.Buffer())
	assert.Nil(t, mid.Buffer())
	assert.Nil(t, top.Buffer())
	assert.Nil(t, top.IndexedBuffer())

	require.NoError(t, top.Generate(1, true, nil))
	assert.Len(t, top.IndexedBuffer(), 4)
}

func TestNestedStaticFollowsChild(t *testing.T) {
	leaf := NewShape(Points(1, 0))
	top := Wrap(leaf)
	attached(t, top)
	assert.True(t, top.IsStatic())

	leaf.SetProp(PropRotateZ, Dynamic(func(*PropArgs) Value { return Num(1) }))
	assert.False(t, leaf.IsStatic())
	assert.False(t, top.IsStatic())
}

func TestSetChild(t *testing.T) {
	top := Wrap(NewShape(Points(1, 0)))
	scene := attached(t, top)
	assert.Equal(t, 2, scene.Len())

	next := Wrap(NewShape(Points(0, 1)))
	require.NoError(t, top.SetChild(next))
	assert.Equal(t, 3, scene.Len())
	assert.Same(t, next, top.Child())
	assert.Equal(t, []NodeID{next.ID(), top.ID()}, scene.Ancestors(next.Child().ID()))

	require.NoError(t, top.Generate(1, false, nil))
	assert.Len(t, top.Buffer(), 2)
}
