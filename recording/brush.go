package recording

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/rosette"
)

// ErrColor is returned for a color string that cannot be parsed.
var ErrColor = errors.New("recording: invalid color")

// Paint is a solid color with straight (non-premultiplied) alpha.
type Paint struct {
	Color colorful.Color
	Alpha float64
}

// Opaque creates a paint with full alpha.
func Opaque(c colorful.Color) Paint {
	return Paint{Color: c, Alpha: 1}
}

var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"lime":    "#00ff00",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"gray":    "#808080",
	"grey":    "#808080",
	"orange":  "#ffa500",
	"purple":  "#800080",
}

// ParseColor parses a CSS-like color. ok is false for "none",
// "transparent" and the empty string.
func ParseColor(s string) (p Paint, ok bool, err error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "none", "transparent":
		return Paint{}, false, nil
	}
	if hex, named := namedColors[s]; named {
		s = hex
	}

	if strings.HasPrefix(s, "#") {
		p, err = parseHex(s)
		return p, err == nil, err
	}

	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Paint{}, false, fmt.Errorf("%w %q", ErrColor, s)
	}
	fn := s[:open]
	args := strings.Split(s[open+1:len(s)-1], ",")
	switch fn {
	case "rgb", "rgba":
		p, err = parseRGB(args)
	case "hsl", "hsla":
		p, err = parseHSL(args)
	default:
		err = fmt.Errorf("%w: unknown function %q", ErrColor, fn)
	}
	if err != nil {
		return Paint{}, false, fmt.Errorf("%w %q", err, s)
	}
	return p, true, nil
}

// PaintOf parses a style value. Undefined and non-text values carry no
// paint.
func PaintOf(v rosette.Value) (Paint, bool, error) {
	if !v.IsText() {
		return Paint{}, false, nil
	}
	return ParseColor(v.Str())
}

func parseHex(s string) (Paint, error) {
	h := s[1:]
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 4:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2], h[3], h[3]})
	}
	alpha := 1.0
	if len(h) == 8 {
		a, err := strconv.ParseUint(h[6:], 16, 8)
		if err != nil {
			return Paint{}, fmt.Errorf("%w %q", ErrColor, s)
		}
		alpha = float64(a) / 255
		h = h[:6]
	}
	c, err := colorful.Hex("#" + h)
	if err != nil {
		return Paint{}, fmt.Errorf("%w %q", ErrColor, s)
	}
	return Paint{Color: c, Alpha: alpha}, nil
}

func parseRGB(args []string) (Paint, error) {
	if len(args) != 3 && len(args) != 4 {
		return Paint{}, ErrColor
	}
	var ch [3]float64
	for i := range ch {
		v, err := parseComponent(args[i], 255)
		if err != nil {
			return Paint{}, err
		}
		ch[i] = v
	}
	alpha, err := parseAlpha(args)
	if err != nil {
		return Paint{}, err
	}
	return Paint{Color: colorful.Color{R: ch[0], G: ch[1], B: ch[2]}, Alpha: alpha}, nil
}

func parseHSL(args []string) (Paint, error) {
	if len(args) != 3 && len(args) != 4 {
		return Paint{}, ErrColor
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(args[0]), "deg"), 64)
	if err != nil {
		return Paint{}, ErrColor
	}
	s, err := parseComponent(args[1], 100)
	if err != nil {
		return Paint{}, err
	}
	l, err := parseComponent(args[2], 100)
	if err != nil {
		return Paint{}, err
	}
	alpha, err := parseAlpha(args)
	if err != nil {
		return Paint{}, err
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return Paint{Color: colorful.Hsl(h, s, l), Alpha: alpha}, nil
}

// parseComponent parses "128" (out of scale) or "50%" into [0, 1].
func parseComponent(s string, scale float64) (float64, error) {
	s = strings.TrimSpace(s)
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(pct, 64)
		if err != nil {
			return 0, ErrColor
		}
		return clamp01(v / 100), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrColor
	}
	return clamp01(v / scale), nil
}

func parseAlpha(args []string) (float64, error) {
	if len(args) < 4 {
		return 1, nil
	}
	return parseComponent(args[3], 1)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Fade returns the paint with its alpha multiplied by f.
func (p Paint) Fade(f float64) Paint {
	p.Alpha = clamp01(p.Alpha * f)
	return p
}

// NRGBA converts the paint for image drawing.
func (p Paint) NRGBA() color.NRGBA {
	r, g, b := p.Color.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(p.Alpha) * 255))}
}

// CSS formats the paint as "#rrggbb" when opaque and "rgba(r,g,b,a)"
// otherwise.
func (p Paint) CSS() string {
	c := p.Color.Clamped()
	if p.Alpha >= 1 {
		return c.Hex()
	}
	r, g, b := c.RGB255()
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, strconv.FormatFloat(math.Round(p.Alpha*1000)/1000, 'f', -1, 64))
}
