// Package svg provides an SVG backend for the recording system.
//
// Every frame becomes one <path> element. Coordinates are written with a
// fixed number of decimals (2 by default):
//
//	<path d="M10.00 0.00 L0.00 10.00 Z" fill="none" stroke="#ffffff" stroke-width="1"/>
//
// # Example
//
//	import _ "github.com/gogpu/rosette/recording/backends/svg"
//
//	backend, _ := recording.NewBackend("svg")
//	rec.Playback(backend)
//	backend.(recording.FileBackend).SaveToFile("out.svg")
package svg

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strconv"

	"github.com/gogpu/rosette/recording"
)

func init() {
	recording.Register("svg", func() recording.Backend {
		return NewBackend()
	})
}

// ErrNotBegun is returned by DrawPath before Begin.
var ErrNotBegun = errors.New("svg: Begin not called")

// Backend renders recordings to an SVG document.
type Backend struct {
	decimals int
	buf      bytes.Buffer
	begun    bool
	ended    bool
}

// Ensure Backend implements all required interfaces.
var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
)

// Option configures a Backend.
type Option func(*Backend)

// WithDecimals sets the number of decimals of path coordinates.
func WithDecimals(n int) Option {
	return func(b *Backend) { b.decimals = max(n, 0) }
}

// NewBackend creates a new SVG backend.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{decimals: 2}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Begin writes the document header and the background.
func (b *Backend) Begin(c recording.Canvas) error {
	b.buf.Reset()
	b.begun, b.ended = true, false

	w, h := num(c.Width), num(c.Height)
	b.buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="` + w + `" height="` + h +
		`" viewBox="0 0 ` + w + ` ` + h + `">` + "\n")
	b.buf.WriteString("<!-- Created with rosette -->\n")
	if c.HasBackground {
		b.buf.WriteString(`<rect width="` + w + `" height="` + h + `" fill="` + c.Background.CSS() + `"/>` + "\n")
	}
	return nil
}

// DrawPath writes one <path> element. Empty paths are skipped.
func (b *Backend) DrawPath(p *recording.Path, s recording.Style) error {
	if !b.begun {
		return ErrNotBegun
	}
	if p.Len() == 0 {
		return nil
	}

	b.buf.WriteString(`<path d="`)
	b.writeData(p)
	b.buf.WriteString(`" fill="`)
	if s.Filled {
		b.buf.WriteString(s.Fill.CSS())
	} else {
		b.buf.WriteString("none")
	}
	b.buf.WriteByte('"')
	if s.Stroked {
		width := s.LineWidth
		if width == 0 {
			width = 1
		}
		b.buf.WriteString(` stroke="` + s.Stroke.CSS() + `" stroke-width="` + num(width) + `"`)
	}
	b.buf.WriteString("/>\n")
	return nil
}

func (b *Backend) writeData(p *recording.Path) {
	first := true
	p.Each(func(v recording.Verb, pt recording.Point) {
		if !first {
			b.buf.WriteByte(' ')
		}
		first = false
		switch v {
		case recording.VerbMoveTo:
			b.buf.WriteByte('M')
		case recording.VerbLineTo:
			b.buf.WriteByte('L')
		case recording.VerbClose:
			b.buf.WriteByte('Z')
			return
		}
		b.buf.WriteString(strconv.FormatFloat(pt.X, 'f', b.decimals, 64))
		b.buf.WriteByte(' ')
		b.buf.WriteString(strconv.FormatFloat(pt.Y, 'f', b.decimals, 64))
	})
}

// End closes the document.
func (b *Backend) End() error {
	if !b.begun {
		return ErrNotBegun
	}
	if !b.ended {
		b.buf.WriteString("</svg>\n")
		b.ended = true
	}
	return nil
}

// Bytes returns the document. It is complete after End.
func (b *Backend) Bytes() []byte { return b.buf.Bytes() }

// WriteTo writes the document to w.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.buf.Bytes())
	return int64(n), err
}

// SaveToFile writes the document to path.
func (b *Backend) SaveToFile(path string) error {
	return os.WriteFile(path, b.buf.Bytes(), 0o644)
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
