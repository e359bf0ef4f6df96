package primitive

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/gogpu/rosette"
	"github.com/gogpu/rosette/internal/cache"
)

// maxLoopVertices bounds the number of samples of a single loop.
const maxLoopVertices = 1 << 16

// vertexCache memoizes the output of loops that only depend on literal
// properties. Keys start with the loop identity.
var vertexCache = cache.NewSharded[string, []float32](cache.DefaultCapacity, cache.StringHasher)

// CacheStats reports the shared loop cache counters.
func CacheStats() cache.Stats { return vertexCache.Stats() }

var loopIDs atomic.Uint64

// LoopRepetition locates one sample of a loop.
type LoopRepetition struct {
	// Index is 1-based and Count the number of samples.
	Index, Count int

	// Offset goes from 0 for the first sample to 1 for the last.
	Offset float32

	// Angle is start + inc*(Index-1).
	Angle float32
}

// VertexFunc computes the vertex of one sample.
type VertexFunc func(r LoopRepetition, args *rosette.PropArgs) (rosette.Vec2, error)

// LoopRange resolves the start, end and inc of a loop.
type LoopRange func(args *rosette.PropArgs) (start, end, inc float32, err error)

// Loop samples Vertex for angles from start (included) to end (excluded)
// by inc. The result is adapted and scaled by sideLength.
type Loop struct {
	id     uint64
	name   string
	rng    LoopRange
	vertex VertexFunc
	mode   AdaptMode
	closed bool

	deps       []rosette.PropName
	contextual bool
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithLoopAdaptMode selects the normalization of the sampled outline.
func WithLoopAdaptMode(m AdaptMode) LoopOption {
	return func(l *Loop) { l.mode = m }
}

// WithDependencies lists the shape properties read by the range or the
// vertex function. Their resolved values key the memoized output.
func WithDependencies(names ...rosette.PropName) LoopOption {
	return func(l *Loop) { l.deps = append(l.deps, names...) }
}

// WithContext declares that the loop reads the generation context
// (repetition, time or parent). Such loops are never memoized and make
// their shape regenerate on every token.
func WithContext() LoopOption {
	return func(l *Loop) { l.contextual = true }
}

// WithClosed sets whether the outline is a closed loop (default true).
func WithClosed(closed bool) LoopOption {
	return func(l *Loop) { l.closed = closed }
}

// NewLoop creates a loop primitive. name identifies it in logs and errors.
func NewLoop(name string, rng LoopRange, vertex VertexFunc, opts ...LoopOption) *Loop {
	l := &Loop{
		id:     loopIDs.Add(1),
		name:   name,
		rng:    rng,
		vertex: vertex,
		mode:   AdaptNone,
		closed: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// FixedRange returns a LoopRange with constant bounds.
func FixedRange(start, end, inc float32) LoopRange {
	return func(*rosette.PropArgs) (float32, float32, float32, error) {
		return start, end, inc, nil
	}
}

// Name returns the loop name.
func (l *Loop) Name() string { return l.name }

// Closed implements rosette.Closer.
func (l *Loop) Closed() bool { return l.closed }

// Static implements rosette.StaticReporter.
func (l *Loop) Static() bool { return !l.contextual }

// Produce samples the loop for the current instance.
func (l *Loop) Produce(args *rosette.PropArgs) ([]float32, error) {
	side, err := sideLength(args)
	if err != nil {
		return nil, err
	}
	start, end, inc, err := l.rng(args)
	if err != nil {
		return nil, err
	}

	if l.contextual || !l.literal(args) {
		return l.sample(args, start, end, inc, side)
	}

	key, err := l.key(args, start, end, inc, side)
	if err != nil {
		return nil, err
	}
	if cached, ok := vertexCache.Get(key); ok {
		return append([]float32(nil), cached...), nil
	}
	buf, err := l.sample(args, start, end, inc, side)
	if err != nil {
		return nil, err
	}
	vertexCache.Put(key, buf)
	return append([]float32(nil), buf...), nil
}

// literal reports whether every dependency of the loop is a literal
// property of the shape.
func (l *Loop) literal(args *rosette.PropArgs) bool {
	if args == nil || args.Shape == nil {
		return true
	}
	computed := func(name rosette.PropName) bool {
		p, ok := args.Shape.Prop(name)
		return ok && p.IsComputed()
	}
	if computed(rosette.PropSideLength) {
		return false
	}
	for _, name := range l.deps {
		if computed(name) {
			return false
		}
	}
	return true
}

func (l *Loop) key(args *rosette.PropArgs, start, end, inc float32, side rosette.Vec2) (string, error) {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(l.id, 10))
	for _, f := range []float32{start, end, inc, side.X, side.Y} {
		sb.WriteByte('|')
		sb.WriteString(strconv.FormatFloat(float64(f), 'g', -1, 32))
	}
	for _, name := range l.deps {
		v, err := getProp(args, name, rosette.Value{})
		if err != nil {
			return "", err
		}
		sb.WriteByte('|')
		sb.WriteString(v.String())
	}
	return sb.String(), nil
}

// LoopCount returns the number of samples from start to end by inc.
func LoopCount(start, end, inc float32) int {
	if inc == 0 || math.IsNaN(float64(inc)) {
		return 0
	}
	n := (float64(end) - float64(start)) / float64(inc)
	if math.IsNaN(n) || n <= 0 {
		return 0
	}
	// Absorb float32 rounding so that 2π / (2π/6) yields 6, not 7.
	count := int(math.Ceil(n - 1e-4))
	return min(count, maxLoopVertices)
}

func (l *Loop) sample(args *rosette.PropArgs, start, end, inc float32, side rosette.Vec2) ([]float32, error) {
	count := LoopCount(start, end, inc)
	buf := make([]float32, 0, count*2)
	for i := 0; i < count; i++ {
		r := LoopRepetition{
			Index: i + 1,
			Count: count,
			Angle: start + inc*float32(i),
		}
		if count > 1 {
			r.Offset = float32(i) / float32(count-1)
		} else {
			r.Offset = 1
		}
		v, err := l.vertex(r, args)
		if err != nil {
			return nil, fmt.Errorf("primitive: %s vertex %d: %w", l.name, r.Index, err)
		}
		buf = append(buf, v.X, v.Y)
	}
	buf = Adapt(buf, l.mode)
	scaleBy(buf, side)
	return buf, nil
}
