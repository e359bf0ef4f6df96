package primitive

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"

	"github.com/gogpu/rosette"
)

// AdaptMode controls how raw coordinates are normalized before sideLength
// is applied.
type AdaptMode int

const (
	// AdaptNone keeps coordinates as produced.
	AdaptNone AdaptMode = iota

	// AdaptScale centers the outline and shrinks it into [-1, 1] when it is
	// larger. Smaller outlines keep their size.
	AdaptScale

	// AdaptCenter moves the center of the outline to the origin.
	AdaptCenter

	// AdaptFill centers the outline and scales it so its larger side spans
	// [-1, 1].
	AdaptFill
)

// String implements fmt.Stringer.
func (m AdaptMode) String() string {
	switch m {
	case AdaptNone:
		return "none"
	case AdaptScale:
		return "scale"
	case AdaptCenter:
		return "center"
	case AdaptFill:
		return "fill"
	}
	return fmt.Sprintf("AdaptMode(%d)", int(m))
}

// ParseAdaptMode parses the name returned by String, case-insensitively.
func ParseAdaptMode(s string) (AdaptMode, error) {
	for m := AdaptNone; m <= AdaptFill; m++ {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return AdaptNone, fmt.Errorf("primitive: unknown adapt mode %q", s)
}

// Adapt normalizes buf in place according to mode and returns it.
func Adapt(buf []float32, mode AdaptMode) []float32 {
	if mode == AdaptNone {
		return buf
	}
	b := rosette.BoundsOf(buf)
	if b.IsEmpty() {
		return buf
	}

	cx := b.X + b.Width/2
	cy := b.Y + b.Height/2
	scale := float32(1)
	size := math32.Max(b.Width, b.Height)
	switch mode {
	case AdaptScale:
		if size > 2 {
			scale = 2 / size
		}
	case AdaptFill:
		if size > 0 {
			scale = 2 / size
		}
	}

	for i := 0; i+1 < len(buf); i += 2 {
		buf[i] = (buf[i] - cx) * scale
		buf[i+1] = (buf[i+1] - cy) * scale
	}
	return buf
}

// scaleBy multiplies every coordinate pair by s.
func scaleBy(buf []float32, s rosette.Vec2) {
	if s.X == 1 && s.Y == 1 {
		return
	}
	for i := 0; i+1 < len(buf); i += 2 {
		buf[i] *= s.X
		buf[i+1] *= s.Y
	}
}
