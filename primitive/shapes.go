package primitive

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"

	"github.com/gogpu/rosette"
)

const twoPi = 2 * math32.Pi

// NewRegularPolygon creates a polygon inscribed in the unit circle, first
// vertex on the positive x axis. sides is the default of the sideNumber
// property.
func NewRegularPolygon(sides int) *Loop {
	def := float32(sides)
	return NewLoop("polygon",
		func(args *rosette.PropArgs) (float32, float32, float32, error) {
			n, err := getNum(args, PropSideNumber, def)
			if err != nil {
				return 0, 0, 0, err
			}
			if n < 1 {
				return 0, 0, 0, nil
			}
			return 0, twoPi, twoPi / math32.Floor(n), nil
		},
		func(r LoopRepetition, _ *rosette.PropArgs) (rosette.Vec2, error) {
			s, c := math32.Sincos(r.Angle)
			return rosette.Vec2{X: c, Y: s}, nil
		},
		WithDependencies(PropSideNumber),
	)
}

// NewTriangle creates an equilateral triangle.
func NewTriangle() *Loop { return NewRegularPolygon(3) }

// NewCircle creates a circle approximated by a polygon of sides vertices.
func NewCircle(sides int) *Loop { return NewRegularPolygon(sides) }

// NewLine creates a horizontal segment from (-1, 0) to (1, 0).
func NewLine() *Buffer {
	return NewBuffer([]float32{-1, 0, 1, 0}, WithAdaptMode(AdaptNone), WithOpen())
}

// NewRect creates the [-1, 1] square.
func NewRect() *Buffer {
	return NewBuffer([]float32{-1, -1, 1, -1, 1, 1, -1, 1}, WithAdaptMode(AdaptNone))
}

// NewRose creates a rhodonea curve r = cos(n/d * angle) sampled with
// sideNumber vertices (default samples) over its full period.
func NewRose(n, d float32, samples int) *Loop {
	defSamples := float32(samples)
	return NewLoop("rose",
		func(args *rosette.PropArgs) (float32, float32, float32, error) {
			pn, err := getNum(args, PropN, n)
			if err != nil {
				return 0, 0, 0, err
			}
			pd, err := getNum(args, PropD, d)
			if err != nil {
				return 0, 0, 0, err
			}
			k, err := getNum(args, PropSideNumber, defSamples)
			if err != nil {
				return 0, 0, 0, err
			}
			end := rosePeriod(pn, pd)
			if k < 1 {
				return 0, 0, 0, nil
			}
			return 0, end, end / math32.Floor(k), nil
		},
		func(r LoopRepetition, args *rosette.PropArgs) (rosette.Vec2, error) {
			pn, err := getNum(args, PropN, n)
			if err != nil {
				return rosette.Vec2{}, err
			}
			pd, err := getNum(args, PropD, d)
			if err != nil {
				return rosette.Vec2{}, err
			}
			if pd == 0 {
				pd = 1
			}
			f := math32.Cos(pn / pd * r.Angle)
			s, c := math32.Sincos(r.Angle)
			return rosette.Vec2{X: f * c, Y: f * s}, nil
		},
		WithDependencies(PropN, PropD, PropSideNumber),
	)
}

// rosePeriod returns the angle after which the rose closes. For integer
// n/d in lowest terms it is π*d when n*d is odd and 2π*d otherwise;
// non-integer parameters fall back to 2π*d.
func rosePeriod(n, d float32) float32 {
	if d == 0 {
		d = 1
	}
	in, id := int(n), int(d)
	if float32(in) != n || float32(id) != d || in <= 0 || id <= 0 {
		return twoPi * math32.Abs(d)
	}
	g := gcd(in, id)
	in, id = in/g, id/g
	if (in*id)%2 == 1 {
		return math32.Pi * float32(id)
	}
	return twoPi * float32(id)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// SpiralKind selects the radius function of a spiral.
type SpiralKind int

const (
	Archimede SpiralKind = iota
	Hyperbolic
	Fermat
	Lituus
	Logarithmic
)

var spiralNames = [...]string{"ARCHIMEDE", "HYPERBOLIC", "FERMAT", "LITUUS", "LOGARITHMIC"}

// String implements fmt.Stringer.
func (k SpiralKind) String() string {
	if k >= 0 && int(k) < len(spiralNames) {
		return spiralNames[k]
	}
	return fmt.Sprintf("SpiralKind(%d)", int(k))
}

// ParseSpiralKind parses a spiral name such as "FERMAT", case-insensitively.
func ParseSpiralKind(s string) (SpiralKind, error) {
	for i, name := range spiralNames {
		if strings.EqualFold(s, name) {
			return SpiralKind(i), nil
		}
	}
	return Archimede, fmt.Errorf("primitive: unknown spiral %q", s)
}

// radius returns the distance from the center at angle.
func (k SpiralKind) radius(angle float32) float32 {
	switch k {
	case Hyperbolic:
		return 1 / angle
	case Fermat:
		return math32.Sqrt(angle)
	case Lituus:
		return 1 / math32.Sqrt(angle)
	case Logarithmic:
		return math32.Exp(angle / 10)
	}
	return angle
}

// NewSpiral creates an open spiral of twists turns starting at turn
// twistsStart, with sideNumber samples per turn (default samples).
// The outline fills [-1, 1].
func NewSpiral(kind SpiralKind, twists float32, samples int) *Loop {
	defSamples := float32(samples)
	return NewLoop("spiral",
		func(args *rosette.PropArgs) (float32, float32, float32, error) {
			tw, err := getNum(args, PropTwists, twists)
			if err != nil {
				return 0, 0, 0, err
			}
			ts, err := getNum(args, PropTwistsStart, 0)
			if err != nil {
				return 0, 0, 0, err
			}
			k, err := getNum(args, PropSideNumber, defSamples)
			if err != nil {
				return 0, 0, 0, err
			}
			if k < 1 || tw <= 0 {
				return 0, 0, 0, nil
			}
			inc := twoPi / math32.Floor(k)
			start := twoPi * ts
			if kind == Hyperbolic || kind == Lituus {
				// Both diverge at the origin.
				start = math32.Max(start, inc)
			}
			// The end is included so the last turn is complete.
			return start, twoPi*(ts+tw) + inc/2, inc, nil
		},
		func(r LoopRepetition, _ *rosette.PropArgs) (rosette.Vec2, error) {
			rad := kind.radius(r.Angle)
			s, c := math32.Sincos(r.Angle)
			return rosette.Vec2{X: rad * c, Y: rad * s}, nil
		},
		WithDependencies(PropTwists, PropTwistsStart, PropSideNumber),
		WithLoopAdaptMode(AdaptFill),
		WithClosed(false),
	)
}

// NewLissajous creates a Lissajous figure x = cos(wx*a), y = sin(wy*a)
// with phase wz added to x when the frequencies match and to y otherwise.
func NewLissajous(wx, wy, wz float32, samples int) *Loop {
	defSamples := float32(samples)
	return NewLoop("lissajous",
		func(args *rosette.PropArgs) (float32, float32, float32, error) {
			k, err := getNum(args, PropSideNumber, defSamples)
			if err != nil {
				return 0, 0, 0, err
			}
			if k < 1 {
				return 0, 0, 0, nil
			}
			return 0, twoPi, twoPi / math32.Floor(k), nil
		},
		func(r LoopRepetition, args *rosette.PropArgs) (rosette.Vec2, error) {
			x, err := getNum(args, PropWX, wx)
			if err != nil {
				return rosette.Vec2{}, err
			}
			y, err := getNum(args, PropWY, wy)
			if err != nil {
				return rosette.Vec2{}, err
			}
			z, err := getNum(args, PropWZ, wz)
			if err != nil {
				return rosette.Vec2{}, err
			}
			if x == y {
				return rosette.Vec2{X: math32.Cos(x*r.Angle + z), Y: math32.Sin(y * r.Angle)}, nil
			}
			return rosette.Vec2{X: math32.Cos(x * r.Angle), Y: math32.Sin(y*r.Angle + z)}, nil
		},
		WithDependencies(PropWX, PropWY, PropWZ, PropSideNumber),
	)
}
