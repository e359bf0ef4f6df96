package rosette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSceneDefaults(t *testing.T) {
	sc := NewScene()
	assert.Equal(t, float32(600), sc.Width())
	assert.Equal(t, float32(600), sc.Height())
	assert.Equal(t, V2(300, 300), sc.Center())
	assert.Equal(t, "#fff", sc.MainColor())
	assert.Equal(t, "#000", sc.Background())
	assert.Zero(t, sc.Time())

	sc = NewScene(WithSize(100, 50), WithMainColor("red"), WithBackground("blue"))
	assert.Equal(t, V2(50, 25), sc.Center())
	assert.Equal(t, "red", sc.MainColor())
	assert.Equal(t, "blue", sc.Background())
}

func TestSceneAddRemove(t *testing.T) {
	sc := NewScene()
	leaf := NewShape(Points(1, 0))
	top := Wrap(leaf)
	other := NewShape(Points(0, 1))

	require.NoError(t, sc.Add(top))
	require.NoError(t, sc.Add(other))
	assert.Equal(t, 3, sc.Len())
	assert.Equal(t, []*Shape{top, other}, sc.Children())
	assert.NotZero(t, leaf.ID())
	assert.Same(t, leaf, sc.Node(leaf.ID()))
	assert.Same(t, sc, leaf.Scene())

	assert.ErrorIs(t, sc.Add(top), ErrAttached)
	assert.ErrorIs(t, NewScene().Add(Wrap(leaf)), ErrAttached)

	leafID := leaf.ID()
	assert.True(t, sc.Remove(top.ID()))
	assert.False(t, sc.Remove(top.ID()))
	assert.Equal(t, 1, sc.Len())
	assert.Nil(t, sc.Node(leafID))
	assert.Nil(t, leaf.Scene())
	assert.False(t, sc.IsFirstLevel(leafID))

	require.NoError(t, NewScene().Add(top), "removed shapes can be attached again")
}

func TestSceneAncestors(t *testing.T) {
	sc := NewScene()
	a := NewShape(Points(0, 0))
	b := Wrap(a)
	c := Wrap(b)
	require.NoError(t, sc.Add(c))

	assert.Equal(t, []NodeID{b.ID(), c.ID()}, sc.Ancestors(a.ID()))
	assert.Equal(t, []NodeID{c.ID()}, sc.Ancestors(b.ID()))
	assert.Empty(t, sc.Ancestors(c.ID()))
	assert.True(t, sc.IsFirstLevel(c.ID()))
	assert.False(t, sc.IsFirstLevel(a.ID()))
}

func TestSceneUpdate(t *testing.T) {
	sc := NewScene()
	s := NewShape(Points(1, 0), WithProps(Props{
		PropDistance: Literal(Num(0)),
		PropTranslate: Dynamic(func(a *PropArgs) Value {
			return Vector(float32(a.Time), 0)
		}),
	}))
	require.NoError(t, sc.Add(s))

	require.NoError(t, sc.Update(10, 1))
	assert.Equal(t, float64(10), sc.Time())
	assert.Equal(t, []float32{311, 300}, s.Buffer())

	require.NoError(t, sc.Update(20, 2))
	assert.Equal(t, []float32{321, 300}, s.Buffer())
}

func TestSceneSetSizeInvalidates(t *testing.T) {
	sc := NewScene()
	s := NewShape(Points(0, 0), WithProps(Props{PropDistance: Literal(Num(0))}))
	require.NoError(t, sc.Add(s))
	require.NoError(t, sc.Generate(1))
	assert.Equal(t, []float32{300, 300}, s.Buffer())

	sc.SetSize(100, 100)
	assert.Nil(t, s.Buffer())
	require.NoError(t, sc.Generate(1))
	assert.Equal(t, []float32{50, 50}, s.Buffer())
}

func TestSceneStreamAndBounding(t *testing.T) {
	sc := NewScene(WithSize(100, 100))
	a := NewShape(Points(0, 0), WithProps(Props{PropDistance: Literal(Num(0))}))
	b := NewShape(Points(10, 20), WithProps(Props{PropDistance: Literal(Num(0))}))
	empty := NewShape(Points(), WithProps(Props{PropDistance: Literal(Num(0))}))
	for _, s := range []*Shape{a, b, empty} {
		require.NoError(t, sc.Add(s))
	}
	require.NoError(t, sc.Generate(1))

	var shapes []*Shape
	require.NoError(t, sc.Stream(func(f *StreamArgs) { shapes = append(shapes, f.Shape) }))
	assert.Equal(t, []*Shape{a, b, empty}, shapes)

	bb := sc.Bounding()
	assert.Equal(t, float32(50), bb.X)
	assert.Equal(t, float32(50), bb.Y)
	assert.Equal(t, float32(10), bb.Width)
	assert.Equal(t, float32(20), bb.Height)
}
