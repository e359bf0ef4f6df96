package rosette

import "github.com/chewxy/math32"

// Bounding is the extent of the vertices produced by the latest generation.
// CX and CY are derived as X - Width/2 and Y - Height/2.
type Bounding struct {
	X, Y          float32
	CX, CY        float32
	Width, Height float32
}

// defaultBounding is the extent assumed before a shape first generates:
// the [-1, 1] square.
func defaultBounding() Bounding {
	return Bounding{X: -1, Y: -1, Width: 2, Height: 2}
}

// IsEmpty reports whether the generation that produced b accumulated no
// vertex. A single vertex yields a zero-size, non-empty box.
func (b Bounding) IsEmpty() bool {
	return !(b.Width >= 0) || !(b.Height >= 0)
}

// boundsAccumulator tracks running min/max extents. Each vertex updates
// the min and max of both axes independently, so one vertex is enough to
// produce a well-defined box.
type boundsAccumulator struct {
	minX, minY float32
	maxX, maxY float32
}

func newBoundsAccumulator() boundsAccumulator {
	return boundsAccumulator{
		minX: math32.MaxFloat32, minY: math32.MaxFloat32,
		maxX: -math32.MaxFloat32, maxY: -math32.MaxFloat32,
	}
}

func (a *boundsAccumulator) add(x, y float32) {
	a.minX = math32.Min(a.minX, x)
	a.maxX = math32.Max(a.maxX, x)
	a.minY = math32.Min(a.minY, y)
	a.maxY = math32.Max(a.maxY, y)
}

func (a *boundsAccumulator) addBuffer(buf []float32) {
	for i := 0; i+1 < len(buf); i += 2 {
		a.add(buf[i], buf[i+1])
	}
}

func (a *boundsAccumulator) bounding() Bounding {
	b := Bounding{
		X:      a.minX,
		Y:      a.minY,
		Width:  a.maxX - a.minX,
		Height: a.maxY - a.minY,
	}
	b.CX = b.X - b.Width/2
	b.CY = b.Y - b.Height/2
	return b
}

// BoundsOf computes the bounding box of a flat x,y sequence.
func BoundsOf(buf []float32) Bounding {
	acc := newBoundsAccumulator()
	acc.addBuffer(buf)
	return acc.bounding()
}
