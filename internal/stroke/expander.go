package stroke

import (
	"math"

	"github.com/gogpu/rosette/recording"
)

type vec struct{ x, y float64 }

func vecOf(p recording.Point) vec { return vec{p.X, p.Y} }

func (v vec) point() recording.Point { return recording.Point{X: v.x, Y: v.y} }
func (v vec) add(w vec) vec          { return vec{v.x + w.x, v.y + w.y} }
func (v vec) sub(w vec) vec          { return vec{v.x - w.x, v.y - w.y} }
func (v vec) scale(s float64) vec    { return vec{v.x * s, v.y * s} }
func (v vec) neg() vec               { return vec{-v.x, -v.y} }
func (v vec) dot(w vec) float64      { return v.x*w.x + v.y*w.y }
func (v vec) cross(w vec) float64    { return v.x*w.y - v.y*w.x }
func (v vec) length() float64        { return math.Hypot(v.x, v.y) }
func (v vec) perp() vec              { return vec{-v.y, v.x} }
func (v vec) angle() float64         { return math.Atan2(v.y, v.x) }

// Cap is the shape of open polyline ends.
type Cap uint8

const (
	CapButt Cap = iota
	CapRound
	CapSquare
)

// Join is the shape of polyline corners.
type Join uint8

const (
	JoinMiter Join = iota
	JoinRound
	JoinBevel
)

// Style describes a stroke.
type Style struct {
	Width float64
	Cap   Cap
	Join  Join

	// MiterLimit is the longest miter, in line widths, before a miter
	// join falls back to a bevel.
	MiterLimit float64
}

// DefaultStyle matches the SVG defaults: butt caps and miter joins
// limited to 4.
func DefaultStyle() Style {
	return Style{Width: 1, Cap: CapButt, Join: JoinMiter, MiterLimit: 4}
}

// Op is the kind of an outline segment.
type Op uint8

const (
	OpMoveTo Op = iota
	OpLineTo
	OpCubeTo
	OpClose
)

// Segment is one outline command. OpCubeTo uses Pts[0] and Pts[1] as
// control points and Pts[2] as the end point; OpMoveTo and OpLineTo use
// Pts[0].
type Segment struct {
	Op  Op
	Pts [3]recording.Point
}

// End returns the point the segment finishes on.
func (s Segment) End() recording.Point {
	if s.Op == OpCubeTo {
		return s.Pts[2]
	}
	return s.Pts[0]
}

// tolerance bounds the angle of corners drawn without a join, in pixels
// of deviation.
const tolerance = 0.25

// Expander turns paths into stroke outlines. It keeps scratch state
// between calls and is not safe for concurrent use.
type Expander struct {
	style      Style
	joinThresh float64

	fwd, back, out builder

	start, last         vec
	startNorm, startTan vec
	lastTan, lastNorm   vec
}

// NewExpander returns an expander for style. A non-positive miter limit
// means 4.
func NewExpander(style Style) *Expander {
	if style.MiterLimit <= 0 {
		style.MiterLimit = 4
	}
	return &Expander{style: style}
}

// Style returns the stroke style of the expander.
func (e *Expander) Style() Style { return e.style }

// Expand returns the fill outline of the stroke of p. A zero width or an
// empty path yields nil.
func (e *Expander) Expand(p *recording.Path) []Segment {
	if e.style.Width <= 0 || p == nil || p.Len() == 0 {
		return nil
	}
	e.joinThresh = 2 * tolerance / e.style.Width
	e.fwd.reset()
	e.back.reset()
	e.out = builder{}

	p.Each(func(v recording.Verb, pt recording.Point) {
		to := vecOf(pt)
		switch v {
		case recording.VerbMoveTo:
			e.finishOpen()
			e.start, e.last = to, to
		case recording.VerbLineTo:
			e.lineTo(to)
		case recording.VerbClose:
			e.lineTo(e.start)
			e.finishClosed()
		}
	})
	e.finishOpen()
	return e.out.segs
}

func (e *Expander) lineTo(to vec) {
	if to == e.last {
		return
	}
	tan := to.sub(e.last)
	e.join(tan)
	e.lastTan = tan
	norm := e.normal(tan)
	e.fwd.lineTo(to.sub(norm))
	e.back.lineTo(to.add(norm))
	e.last = to
	e.lastNorm = norm
}

// normal is the left normal of tan with half the stroke width.
func (e *Expander) normal(tan vec) vec {
	return tan.perp().scale(0.5 * e.style.Width / tan.length())
}

func (e *Expander) join(tan vec) {
	p0 := e.last
	norm := e.normal(tan)
	if e.fwd.empty() {
		e.fwd.moveTo(p0.sub(norm))
		e.back.moveTo(p0.add(norm))
		e.startTan = tan
		e.startNorm = norm
		return
	}

	ab, cd := e.lastTan, tan
	cross, dot := ab.cross(cd), ab.dot(cd)
	hypot := math.Hypot(cross, dot)

	// Nearly straight corners are connected without a join.
	if dot > 0 && math.Abs(cross) < hypot*e.joinThresh {
		e.fwd.lineTo(p0.sub(norm))
		e.back.lineTo(p0.add(norm))
		return
	}

	lastNorm := e.normal(ab)
	switch e.style.Join {
	case JoinMiter:
		limit := e.style.MiterLimit * e.style.MiterLimit
		if 2*hypot < (hypot+dot)*limit {
			e.miter(p0, norm, lastNorm, ab, cd, cross)
		}
		e.fwd.lineTo(p0.sub(norm))
		e.back.lineTo(p0.add(norm))
	case JoinRound:
		turn := math.Atan2(cross, dot)
		if turn > 0 {
			e.back.lineTo(p0.add(norm))
			e.fwd.arc(p0, lastNorm.neg(), turn)
		} else {
			e.fwd.lineTo(p0.sub(norm))
			e.back.arc(p0, lastNorm, turn)
		}
	case JoinBevel:
		e.fwd.lineTo(p0.sub(norm))
		e.back.lineTo(p0.add(norm))
	}
}

// miter adds the tip of a miter join on the outer side of the corner and
// pins the inner side to the corner itself.
func (e *Expander) miter(p0, norm, lastNorm, ab, cd vec, cross float64) {
	outer, inner := &e.fwd, &e.back
	from, to := p0.sub(lastNorm), p0.sub(norm)
	if cross < 0 {
		outer, inner = inner, outer
		from, to = p0.add(lastNorm), p0.add(norm)
	}
	h := ab.cross(to.sub(from)) / cross
	outer.lineTo(to.sub(cd.scale(h)))
	inner.lineTo(p0)
}

func (e *Expander) finishOpen() {
	if e.fwd.empty() {
		return
	}
	e.out.appendAll(&e.fwd)
	e.cap(e.last, e.lastNorm.neg(), false)
	e.out.appendReversed(&e.back)
	e.cap(e.start, e.startNorm, true)
	e.fwd.reset()
	e.back.reset()
}

func (e *Expander) finishClosed() {
	if e.fwd.empty() {
		return
	}
	e.join(e.startTan)
	e.out.appendAll(&e.fwd)
	e.out.close()
	e.out.moveTo(vecOf(e.back.segs[len(e.back.segs)-1].End()))
	e.out.appendReversed(&e.back)
	e.out.close()
	e.fwd.reset()
	e.back.reset()
}

// cap ends the outline at center. norm points from center to the side the
// outline currently is on.
func (e *Expander) cap(center, norm vec, last bool) {
	switch e.style.Cap {
	case CapButt:
		if !last {
			e.out.lineTo(center.sub(norm))
		}
	case CapRound:
		e.out.arc(center, norm, math.Pi)
	case CapSquare:
		out := norm.perp()
		e.out.lineTo(center.add(norm).add(out))
		e.out.lineTo(center.sub(norm).add(out))
		if !last {
			e.out.lineTo(center.sub(norm))
		}
	}
	if last {
		e.out.close()
	}
}

type builder struct {
	segs []Segment
}

func (b *builder) reset()      { b.segs = b.segs[:0] }
func (b *builder) empty() bool { return len(b.segs) == 0 }
func (b *builder) close()      { b.segs = append(b.segs, Segment{Op: OpClose}) }

func (b *builder) moveTo(p vec) {
	b.segs = append(b.segs, Segment{Op: OpMoveTo, Pts: [3]recording.Point{p.point()}})
}

func (b *builder) lineTo(p vec) {
	b.segs = append(b.segs, Segment{Op: OpLineTo, Pts: [3]recording.Point{p.point()}})
}

func (b *builder) cubeTo(c1, c2, p vec) {
	b.segs = append(b.segs, Segment{Op: OpCubeTo, Pts: [3]recording.Point{c1.point(), c2.point(), p.point()}})
}

func (b *builder) appendAll(o *builder) { b.segs = append(b.segs, o.segs...) }

// appendReversed walks o from its end back to its first point.
func (b *builder) appendReversed(o *builder) {
	for i := len(o.segs) - 1; i >= 1; i-- {
		to := vecOf(o.segs[i-1].End())
		switch s := o.segs[i]; s.Op {
		case OpLineTo:
			b.lineTo(to)
		case OpCubeTo:
			b.cubeTo(vecOf(s.Pts[1]), vecOf(s.Pts[0]), to)
		}
	}
}

// arc sweeps radius vector r around center by angle radians, in cubic
// pieces of at most a quarter turn. The current point must be center+r.
func (b *builder) arc(center, r vec, angle float64) {
	n := max(int(math.Ceil(math.Abs(angle)/(math.Pi/2))), 1)
	step := angle / float64(n)
	radius := r.length()
	a := r.angle()
	for range n {
		b.arcPiece(center, radius, a, a+step)
		a += step
	}
}

func (b *builder) arcPiece(center vec, radius, a0, a1 float64) {
	da := a1 - a0
	t := math.Tan(da / 2)
	k := math.Sin(da) * (math.Sqrt(4+3*t*t) - 1) / 3

	sin0, cos0 := math.Sincos(a0)
	sin1, cos1 := math.Sincos(a1)
	p0 := vec{center.x + radius*cos0, center.y + radius*sin0}
	p1 := vec{center.x + radius*cos1, center.y + radius*sin1}
	c0 := vec{p0.x - k*radius*sin0, p0.y + k*radius*cos0}
	c1 := vec{p1.x + k*radius*sin1, p1.y - k*radius*cos1}
	b.cubeTo(c0, c1, p1)
}
