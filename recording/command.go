package recording

import "github.com/gogpu/rosette"

// Verb identifies a path command.
type Verb uint8

const (
	VerbMoveTo Verb = iota // Start a new polyline
	VerbLineTo             // Straight segment to the point
	VerbClose              // Segment back to the last MoveTo
)

var verbNames = [...]string{
	VerbMoveTo: "MoveTo",
	VerbLineTo: "LineTo",
	VerbClose:  "Close",
}

// String implements fmt.Stringer.
func (v Verb) String() string {
	if int(v) < len(verbNames) {
		return verbNames[v]
	}
	return "Unknown"
}

// Point is a 2D point in scene coordinates.
type Point struct {
	X, Y float64
}

// Path is a sequence of polyline commands. VerbClose carries no point.
type Path struct {
	verbs  []Verb
	points []Point
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{}
}

// PathFromFrame builds a path from interleaved x,y coordinates. A closed
// path ends with VerbClose. Fewer than one vertex yields an empty path.
func PathFromFrame(coords []float32, closed bool) *Path {
	p := &Path{
		verbs:  make([]Verb, 0, len(coords)/2+1),
		points: make([]Point, 0, len(coords)/2),
	}
	for i := 0; i+1 < len(coords); i += 2 {
		x, y := float64(coords[i]), float64(coords[i+1])
		if i == 0 {
			p.MoveTo(x, y)
		} else {
			p.LineTo(x, y)
		}
	}
	if closed && len(p.points) > 0 {
		p.Close()
	}
	return p
}

// MoveTo starts a new polyline at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.verbs = append(p.verbs, VerbMoveTo)
	p.points = append(p.points, Point{X: x, Y: y})
}

// LineTo adds a segment to (x, y). Without a current point it acts as
// MoveTo.
func (p *Path) LineTo(x, y float64) {
	if len(p.points) == 0 {
		p.MoveTo(x, y)
		return
	}
	p.verbs = append(p.verbs, VerbLineTo)
	p.points = append(p.points, Point{X: x, Y: y})
}

// Close closes the current polyline.
func (p *Path) Close() {
	if len(p.verbs) == 0 || p.verbs[len(p.verbs)-1] == VerbClose {
		return
	}
	p.verbs = append(p.verbs, VerbClose)
}

// Verbs returns the path commands.
func (p *Path) Verbs() []Verb { return p.verbs }

// Points returns the path points, one per MoveTo or LineTo.
func (p *Path) Points() []Point { return p.points }

// Len returns the number of points.
func (p *Path) Len() int { return len(p.points) }

// Closed reports whether the path ends with VerbClose.
func (p *Path) Closed() bool {
	return len(p.verbs) > 0 && p.verbs[len(p.verbs)-1] == VerbClose
}

// Each calls fn for every command. For VerbClose the point is the start
// of the polyline being closed.
func (p *Path) Each(fn func(v Verb, pt Point)) {
	var start Point
	j := 0
	for _, v := range p.verbs {
		switch v {
		case VerbMoveTo:
			start = p.points[j]
			fn(v, start)
			j++
		case VerbLineTo:
			fn(v, p.points[j])
			j++
		case VerbClose:
			fn(v, start)
		}
	}
}

// Transform returns a copy of the path with every point mapped by m.
func (p *Path) Transform(m Matrix) *Path {
	out := &Path{
		verbs:  append([]Verb(nil), p.verbs...),
		points: make([]Point, len(p.points)),
	}
	for i, pt := range p.points {
		x, y := m.TransformPoint(pt.X, pt.Y)
		out.points[i] = Point{X: x, Y: y}
	}
	return out
}

// Frame is one recorded repetition of a leaf shape.
type Frame struct {
	Path *Path

	// Shape and Name identify the leaf that produced the frame.
	Shape rosette.NodeID
	Name  string

	// Index and Total locate the frame in its first-level shape stream.
	Index, Total int

	// Repetition is the leaf repetition of the frame.
	Repetition rosette.Repetition

	Fill      PaintRef
	Stroke    PaintRef
	LineWidth float64

	// Ghost is 0 for the current time and i for the i-th ghost layer.
	Ghost int
}
