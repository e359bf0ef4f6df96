package rosette

// Producer emits the raw vertices of a primitive for one repetition
// instance, as a flat interleaved x,y sequence before any transform.
//
// Producers decide what geometry a leaf shape has; the shape applies
// repetition, transforms and indexing on top of it. See package primitive
// for the built-in producers.
type Producer interface {
	Produce(args *PropArgs) ([]float32, error)
}

// ProducerFunc adapts a function to the Producer interface.
type ProducerFunc func(args *PropArgs) ([]float32, error)

// Produce calls f(args).
func (f ProducerFunc) Produce(args *PropArgs) ([]float32, error) { return f(args) }

// Closer is implemented by producers whose outline is a closed loop.
type Closer interface {
	Closed() bool
}

// StaticReporter is implemented by producers that know whether their output
// depends on the generation context beyond the shape's properties.
// Producers that do not implement it are assumed static.
type StaticReporter interface {
	Static() bool
}

// points is a fixed vertex sequence.
type points []float32

// Points returns a static producer that always emits the given coordinates.
func Points(coords ...float32) Producer {
	return points(append([]float32(nil), coords...))
}

func (p points) Produce(*PropArgs) ([]float32, error) {
	return append([]float32(nil), p...), nil
}

// VertexObserver is notified of every final vertex during generation.
// It observes copies only and cannot alter the generated buffer.
type VertexObserver interface {
	ObserveVertex(v Vec3, args *PropArgs, rep BaseRepetition)
}

// VertexFunc adapts a function to the VertexObserver interface.
type VertexFunc func(v Vec3, args *PropArgs, rep BaseRepetition)

// ObserveVertex calls f(v, args, rep).
func (f VertexFunc) ObserveVertex(v Vec3, args *PropArgs, rep BaseRepetition) { f(v, args, rep) }
