package rosette

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropResolveLiteral(t *testing.T) {
	v, err := Literal(Num(4)).Resolve(nil, Num(1))
	require.NoError(t, err)
	assert.Equal(t, Num(4), v)

	v, err = Literal(Value{}).Resolve(nil, Num(1))
	require.NoError(t, err)
	assert.Equal(t, Num(1), v, "undefined falls back to default")

	v, err = Literal(Num(float32(math.NaN()))).Resolve(nil, Num(2))
	require.NoError(t, err)
	assert.Equal(t, Num(2), v, "NaN falls back to default")
}

func TestPropResolveComputed(t *testing.T) {
	var seen *PropArgs
	p := Dynamic(func(a *PropArgs) Value {
		seen = a
		return Num(float32(a.Repetition.Index) * 10)
	})
	assert.True(t, p.IsComputed())

	v, err := p.Resolve(nil, Value{})
	require.NoError(t, err)
	assert.Equal(t, Num(10), v)
	require.NotNil(t, seen, "nil args are replaced by an empty context")
	assert.Equal(t, 1, seen.Repetition.Count)

	boom := errors.New("boom")
	_, err = Computed(func(*PropArgs) (Value, error) { return Value{}, boom }).Resolve(nil, Num(1))
	assert.ErrorIs(t, err, boom)
}

func TestShapeGetProp(t *testing.T) {
	scene := NewScene()
	var got *PropArgs
	s := NewShape(Points(0, 0), WithProps(Props{
		PropScale: Dynamic(func(a *PropArgs) Value {
			got = a
			return Value{}
		}),
		PropRotateZ: Literal(Num(0.5)),
	}))
	require.NoError(t, scene.Add(s))
	scene.time = 1234

	v, err := s.GetProp(PropDistance, nil, Num(7))
	require.NoError(t, err)
	assert.Equal(t, Num(7), v, "missing property yields default")

	v, err = s.GetProp(PropRotateZ, nil, Num(0))
	require.NoError(t, err)
	assert.Equal(t, Num(0.5), v)

	v, err = s.GetProp(PropScale, nil, Num(1))
	require.NoError(t, err)
	assert.Equal(t, Num(1), v)
	require.NotNil(t, got)
	assert.Same(t, s, got.Shape, "shape injected into the context")
	assert.Equal(t, 1234.0, got.Time, "scene time injected into the context")
}

func TestShapeGetPropError(t *testing.T) {
	boom := errors.New("boom")
	s := NewShape(Points(0, 0), WithProps(Props{
		PropDisplace: Computed(func(*PropArgs) (Value, error) { return Value{}, boom }),
	}))

	_, err := s.GetProp(PropDisplace, nil, Num(0))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPropResolve)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "displace")
}

func TestPropsAllLiteral(t *testing.T) {
	assert.True(t, Props{PropScale: Literal(Num(2))}.allLiteral())
	assert.True(t, Props{PropFillColor: Dynamic(func(*PropArgs) Value { return Text("red") })}.allLiteral(),
		"style properties do not affect geometry")
	assert.False(t, Props{PropScale: Dynamic(func(*PropArgs) Value { return Num(1) })}.allLiteral())
}
