// Package raster plays recordings into an RGBA image for quick previews,
// using the scanline rasterizer of golang.org/x/image/vector.
//
// Fills use the non-zero winding rule. Strokes are expanded to a fill
// outline by internal/stroke, with butt caps and miter joins unless
// WithLineCap or WithLineJoin say otherwise. Paints are straight alpha and
// composited with draw.Over. WithScale sets pixels per scene unit, so a
// 600x600 scene at scale 2 is a 1200x1200 PNG.
//
//	backend := raster.NewBackend(raster.WithScale(2))
//	if err := rec.Playback(backend); err != nil {
//		return err
//	}
//	return backend.SavePNG("preview.png")
package raster

import (
	"errors"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/vector"

	"github.com/gogpu/rosette/internal/stroke"
	"github.com/gogpu/rosette/recording"
)

func init() {
	recording.Register("raster", func() recording.Backend {
		return NewBackend()
	})
}

// ErrNotBegun is returned by DrawPath before Begin.
var ErrNotBegun = errors.New("raster: Begin not called")

// LineCap is the shape of open outline ends.
type LineCap = stroke.Cap

const (
	LineCapButt   = stroke.CapButt
	LineCapRound  = stroke.CapRound
	LineCapSquare = stroke.CapSquare
)

// LineJoin is the shape of outline corners.
type LineJoin = stroke.Join

const (
	LineJoinMiter = stroke.JoinMiter
	LineJoinRound = stroke.JoinRound
	LineJoinBevel = stroke.JoinBevel
)

// Backend rasterizes frames into an *image.RGBA sized by the canvas.
type Backend struct {
	scale float64
	line  stroke.Style
	img   *image.RGBA
	rast  *vector.Rasterizer
	m     recording.Matrix
}

var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
	_ recording.ImageBackend  = (*Backend)(nil)
)

// Option configures a Backend.
type Option func(*Backend)

// WithScale sets the number of pixels per scene unit (default 1).
func WithScale(s float64) Option {
	return func(b *Backend) {
		if s > 0 {
			b.scale = s
		}
	}
}

// WithLineCap sets the cap of open strokes.
func WithLineCap(c LineCap) Option {
	return func(b *Backend) { b.line.Cap = c }
}

// WithLineJoin sets the join of stroke corners.
func WithLineJoin(j LineJoin) Option {
	return func(b *Backend) { b.line.Join = j }
}

// NewBackend returns a backend with scale 1. Nothing can be drawn
// before Begin.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{scale: 1, line: stroke.DefaultStyle()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Begin allocates the image and paints the background.
func (b *Backend) Begin(c recording.Canvas) error {
	w := max(int(math.Ceil(c.Width*b.scale)), 1)
	h := max(int(math.Ceil(c.Height*b.scale)), 1)
	b.img = image.NewRGBA(image.Rect(0, 0, w, h))
	b.rast = vector.NewRasterizer(w, h)
	b.m = recording.Scale(b.scale, b.scale)
	if c.HasBackground {
		draw.Draw(b.img, b.img.Bounds(), image.NewUniform(c.Background.NRGBA()), image.Point{}, draw.Src)
	}
	return nil
}

// DrawPath fills then strokes one frame.
func (b *Backend) DrawPath(p *recording.Path, s recording.Style) error {
	if b.img == nil {
		return ErrNotBegun
	}
	if p.Len() == 0 {
		return nil
	}
	p = p.Transform(b.m)

	if s.Filled && s.Fill.Alpha > 0 {
		b.rast.Reset(b.img.Bounds().Dx(), b.img.Bounds().Dy())
		b.fill(p)
		b.rast.Draw(b.img, b.img.Bounds(), image.NewUniform(s.Fill.NRGBA()), image.Point{})
	}
	if s.Stroked && s.Stroke.Alpha > 0 {
		width := s.LineWidth
		if width == 0 {
			width = 1
		}
		b.rast.Reset(b.img.Bounds().Dx(), b.img.Bounds().Dy())
		b.stroke(p, width*b.m.ScaleFactor())
		b.rast.Draw(b.img, b.img.Bounds(), image.NewUniform(s.Stroke.NRGBA()), image.Point{})
	}
	return nil
}

func (b *Backend) fill(p *recording.Path) {
	p.Each(func(v recording.Verb, pt recording.Point) {
		switch v {
		case recording.VerbMoveTo:
			b.rast.MoveTo(float32(pt.X), float32(pt.Y))
		case recording.VerbLineTo:
			b.rast.LineTo(float32(pt.X), float32(pt.Y))
		case recording.VerbClose:
			b.rast.ClosePath()
		}
	})
	// An open outline is filled as if closed.
	if !p.Closed() {
		b.rast.ClosePath()
	}
}

// stroke adds the outline of the stroke of p at width device pixels.
func (b *Backend) stroke(p *recording.Path, width float64) {
	style := b.line
	style.Width = width
	for _, seg := range stroke.NewExpander(style).Expand(p) {
		switch seg.Op {
		case stroke.OpMoveTo:
			b.rast.MoveTo(float32(seg.Pts[0].X), float32(seg.Pts[0].Y))
		case stroke.OpLineTo:
			b.rast.LineTo(float32(seg.Pts[0].X), float32(seg.Pts[0].Y))
		case stroke.OpCubeTo:
			b.rast.CubeTo(
				float32(seg.Pts[0].X), float32(seg.Pts[0].Y),
				float32(seg.Pts[1].X), float32(seg.Pts[1].Y),
				float32(seg.Pts[2].X), float32(seg.Pts[2].Y),
			)
		case stroke.OpClose:
			b.rast.ClosePath()
		}
	}
}

// End reports ErrNotBegun when Begin was never called.
func (b *Backend) End() error {
	if b.img == nil {
		return ErrNotBegun
	}
	return nil
}

// Image is nil before Begin.
func (b *Backend) Image() image.Image {
	if b.img == nil {
		return nil
	}
	return b.img
}

func (b *Backend) Width() int {
	if b.img == nil {
		return 0
	}
	return b.img.Bounds().Dx()
}

func (b *Backend) Height() int {
	if b.img == nil {
		return 0
	}
	return b.img.Bounds().Dy()
}

// WriteTo encodes the image as PNG to w.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if b.img == nil {
		return 0, ErrNotBegun
	}
	cw := &countingWriter{w: w}
	err := png.Encode(cw, b.img)
	return cw.n, err
}

// SaveToFile saves the image as PNG.
func (b *Backend) SaveToFile(path string) error {
	return b.SavePNG(path)
}

// SavePNG saves the image as PNG.
func (b *Backend) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := b.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// countingWriter reports the PNG size back to WriteTo.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
