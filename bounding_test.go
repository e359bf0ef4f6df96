package rosette

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundsOf(t *testing.T) {
	b := BoundsOf([]float32{-2, 1, 4, -3, 0, 5})
	assert.Equal(t, float32(-2), b.X)
	assert.Equal(t, float32(-3), b.Y)
	assert.Equal(t, float32(6), b.Width)
	assert.Equal(t, float32(8), b.Height)
	assert.Equal(t, b.X-b.Width/2, b.CX)
	assert.Equal(t, b.Y-b.Height/2, b.CY)
	assert.False(t, b.IsEmpty())
}

func TestBoundsOfSingleVertex(t *testing.T) {
	b := BoundsOf([]float32{3, 4})
	assert.Equal(t, Bounding{X: 3, Y: 4, CX: 3, CY: 4}, b)
	assert.False(t, b.IsEmpty())
}

func TestBoundsOfEmpty(t *testing.T) {
	assert.True(t, BoundsOf(nil).IsEmpty())
	assert.True(t, BoundsOf([]float32{1}).IsEmpty(), "odd trailing coordinate is ignored")
}

func TestDefaultBounding(t *testing.T) {
	b := defaultBounding()
	assert.Equal(t, float32(2), b.Width)
	assert.False(t, b.IsEmpty())
}
