package primitive

import "github.com/gogpu/rosette"

// Buffer emits a fixed outline, adapted once at creation.
type Buffer struct {
	coords []float32
	mode   AdaptMode
	closed bool
}

// BufferOption configures a Buffer.
type BufferOption func(*Buffer)

// WithAdaptMode selects the normalization of the outline (default
// AdaptScale).
func WithAdaptMode(m AdaptMode) BufferOption {
	return func(b *Buffer) { b.mode = m }
}

// WithOpen marks the outline as an open polyline.
func WithOpen() BufferOption {
	return func(b *Buffer) { b.closed = false }
}

// NewBuffer creates a primitive from interleaved x,y coordinates.
// The coordinates are copied. A trailing odd coordinate is dropped.
func NewBuffer(coords []float32, opts ...BufferOption) *Buffer {
	b := &Buffer{mode: AdaptScale, closed: true}
	for _, opt := range opts {
		opt(b)
	}
	b.coords = Adapt(append([]float32(nil), coords[:len(coords)&^1]...), b.mode)
	return b
}

// Produce returns the adapted outline scaled by sideLength.
func (b *Buffer) Produce(args *rosette.PropArgs) ([]float32, error) {
	side, err := sideLength(args)
	if err != nil {
		return nil, err
	}
	out := append([]float32(nil), b.coords...)
	scaleBy(out, side)
	return out, nil
}

// Closed implements rosette.Closer.
func (b *Buffer) Closed() bool { return b.closed }

// Static implements rosette.StaticReporter.
func (b *Buffer) Static() bool { return true }

// Mode returns the adapt mode.
func (b *Buffer) Mode() AdaptMode { return b.mode }
