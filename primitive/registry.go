package primitive

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/rosette"
)

// ErrUnknownKind is returned by New for an unregistered primitive name.
var ErrUnknownKind = errors.New("primitive: unknown kind")

// Settings are the structural parameters of a primitive, fixed at creation.
// Geometric parameters (sideNumber, n, d, twists...) are shape properties.
type Settings struct {
	// Spiral is the spiral kind name, see ParseSpiralKind.
	Spiral string

	// Shape holds the coordinates of a ShapeBuffer.
	Shape []float32

	// AdaptMode is an adapt mode name, see ParseAdaptMode.
	AdaptMode string

	// Closed overrides whether the outline is closed.
	Closed *bool
}

type constructor func(s Settings) (rosette.Producer, error)

var kinds = map[string]constructor{
	"line":     func(Settings) (rosette.Producer, error) { return NewLine(), nil },
	"triangle": func(Settings) (rosette.Producer, error) { return NewTriangle(), nil },
	"rect":     func(Settings) (rosette.Producer, error) { return NewRect(), nil },
	"polygon":  func(Settings) (rosette.Producer, error) { return NewRegularPolygon(5), nil },
	"circle":   func(Settings) (rosette.Producer, error) { return NewCircle(64), nil },
	"rose":     func(Settings) (rosette.Producer, error) { return NewRose(2, 1, 360), nil },
	"lissajous": func(Settings) (rosette.Producer, error) {
		return NewLissajous(1, 2, 0, 180), nil
	},
	"spiral": func(s Settings) (rosette.Producer, error) {
		kind := Archimede
		if s.Spiral != "" {
			var err error
			if kind, err = ParseSpiralKind(s.Spiral); err != nil {
				return nil, err
			}
		}
		return NewSpiral(kind, 2, 60), nil
	},
	"shapebuffer": func(s Settings) (rosette.Producer, error) {
		var opts []BufferOption
		if s.AdaptMode != "" {
			m, err := ParseAdaptMode(s.AdaptMode)
			if err != nil {
				return nil, err
			}
			opts = append(opts, WithAdaptMode(m))
		}
		if s.Closed != nil && !*s.Closed {
			opts = append(opts, WithOpen())
		}
		return NewBuffer(s.Shape, opts...), nil
	},
}

// New creates a primitive by name (case-insensitive): Line, Triangle,
// Rect, Polygon, Circle, Rose, Lissajous, Spiral or ShapeBuffer.
func New(kind string, s Settings) (rosette.Producer, error) {
	ctor, ok := kinds[strings.ToLower(kind)]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
	p, err := ctor(s)
	if err != nil {
		return nil, fmt.Errorf("primitive: create %s: %w", kind, err)
	}
	if l, ok := p.(*Loop); ok {
		if s.Closed != nil {
			l.closed = *s.Closed
		}
		if s.AdaptMode != "" {
			m, err := ParseAdaptMode(s.AdaptMode)
			if err != nil {
				return nil, fmt.Errorf("primitive: create %s: %w", kind, err)
			}
			l.mode = m
		}
	}
	return p, nil
}

// Kinds returns the registered primitive names, sorted.
func Kinds() []string {
	out := make([]string, 0, len(kinds))
	for k := range kinds {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
