// Package gcode provides a pen plotter backend for the recording system.
//
// The scene is fitted into the machine workspace [MinX, MaxX] x [MinY, MaxY]
// preserving its aspect ratio. Every frame is drawn as one pen-down
// stroke: a rapid move to the first vertex, then linear moves at Velocity,
// then back to the first vertex when the outline is closed. Styles are
// ignored and ghost frames are skipped.
//
// # Output
//
//	M3 S30          pen up
//	G21             millimeters (G20 for inches)
//	G90             absolute positioning
//	G28.1 X0 Y0     machine home
//	G92 X0 Y0       workspace origin
//	...             frames
//	M3 S30
//	G28 X0 Y0       return home
package gcode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/rosette/recording"
)

func init() {
	recording.Register("gcode", func() recording.Backend {
		return NewBackend(DefaultSettings())
	})
}

// Unit is the machine unit.
type Unit int

const (
	Millimeters Unit = iota
	Inches
)

// String implements fmt.Stringer.
func (u Unit) String() string {
	if u == Inches {
		return "inches"
	}
	return "millimeters"
}

// ParseUnit parses "millimeters" or "inches" (also "mm" and "in").
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(s) {
	case "millimeters", "mm", "":
		return Millimeters, nil
	case "inches", "in":
		return Inches, nil
	}
	return Millimeters, fmt.Errorf("gcode: unknown unit %q", s)
}

// Settings configures the plotter.
type Settings struct {
	// Round is the rounding factor: coordinates are rounded to 1/Round.
	Round float64

	MinX, MinY, MaxX, MaxY float64

	// Velocity is the feed rate of drawing moves.
	Velocity float64

	Unit Unit

	PenUp   string
	PenDown string
}

// DefaultSettings returns the settings of an A4 landscape plotter with a
// servo pen.
func DefaultSettings() Settings {
	return Settings{
		Round:    100,
		MinX:     0,
		MinY:     0,
		MaxX:     297,
		MaxY:     210,
		Velocity: 1500,
		Unit:     Millimeters,
		PenUp:    "M3 S30",
		PenDown:  "M3 S0",
	}
}

// ErrWorkspace is returned by Begin for an empty workspace.
var ErrWorkspace = errors.New("gcode: empty workspace")

// Backend renders recordings to G-code.
type Backend struct {
	settings Settings
	fit      recording.Matrix
	lines    []string
	begun    bool
	ended    bool
}

// Ensure Backend implements all required interfaces.
var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
)

// NewBackend creates a G-code backend. A non-positive Round disables
// rounding.
func NewBackend(s Settings) *Backend {
	return &Backend{settings: s}
}

// Settings returns the plotter settings.
func (b *Backend) Settings() Settings { return b.settings }

// Begin computes the workspace fit and writes the header.
func (b *Backend) Begin(c recording.Canvas) error {
	s := b.settings
	ws := recording.Rect{X: s.MinX, Y: s.MinY, Width: s.MaxX - s.MinX, Height: s.MaxY - s.MinY}
	if ws.Width <= 0 || ws.Height <= 0 {
		return fmt.Errorf("%w: [%g, %g] x [%g, %g]", ErrWorkspace, s.MinX, s.MaxX, s.MinY, s.MaxY)
	}
	b.fit = recording.Fit(c.Width, c.Height, ws)
	b.lines = b.lines[:0]
	b.begun, b.ended = true, false

	unit := "G21"
	if s.Unit == Inches {
		unit = "G20"
	}
	b.emit(s.PenUp, unit, "G90",
		"G28.1 X"+b.coord(s.MinX)+" Y"+b.coord(s.MinY),
		"G92 X"+b.coord(s.MinX)+" Y"+b.coord(s.MinY))
	return nil
}

// DrawPath plots one frame.
func (b *Backend) DrawPath(p *recording.Path, st recording.Style) error {
	if !b.begun {
		return errors.New("gcode: Begin not called")
	}
	if st.Ghost > 0 {
		return nil
	}
	p.Each(func(v recording.Verb, pt recording.Point) {
		x, y := b.project(pt)
		switch v {
		case recording.VerbMoveTo:
			b.emit(b.settings.PenUp, "G0 X"+b.coord(x)+" Y"+b.coord(y), b.settings.PenDown)
		default:
			b.emit(b.lineTo(x, y))
		}
	})
	return nil
}

// End returns the pen home.
func (b *Backend) End() error {
	if !b.begun {
		return errors.New("gcode: Begin not called")
	}
	if !b.ended {
		b.emit(b.settings.PenUp, "G28 X0 Y0")
		b.ended = true
	}
	return nil
}

// Lines returns the program, one command per line.
func (b *Backend) Lines() []string { return b.lines }

// String returns the program joined by newlines.
func (b *Backend) String() string { return strings.Join(b.lines, "\n") }

// WriteTo writes the program to w.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	for _, l := range b.lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	return buf.WriteTo(w)
}

// SaveToFile writes the program to path.
func (b *Backend) SaveToFile(path string) error {
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

func (b *Backend) emit(lines ...string) {
	b.lines = append(b.lines, lines...)
}

// project maps a scene point into the workspace, clamped to its bounds.
func (b *Backend) project(pt recording.Point) (float64, float64) {
	s := b.settings
	x, y := b.fit.TransformPoint(pt.X, pt.Y)
	return clamp(x, s.MinX, s.MaxX), clamp(y, s.MinY, s.MaxY)
}

func (b *Backend) lineTo(x, y float64) string {
	return "G1 X" + b.coord(x) + " Y" + b.coord(y) + " F" + strconv.FormatFloat(b.settings.Velocity, 'f', -1, 64)
}

func (b *Backend) coord(v float64) string {
	if r := b.settings.Round; r > 0 {
		v = math.Round(v*r) / r
	}
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
