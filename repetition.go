package rosette

import "github.com/chewxy/math32"

// RepetitionType is the layout of a shape's repetitions.
type RepetitionType int

const (
	// Ring repeats the shape around a center, rotating each instance.
	Ring RepetitionType = 1

	// Matrix repeats the shape on a cols x rows grid centered on the origin.
	Matrix RepetitionType = 2
)

// String implements fmt.Stringer.
func (t RepetitionType) String() string {
	switch t {
	case Ring:
		return "ring"
	case Matrix:
		return "matrix"
	}
	return "unknown"
}

// BaseRepetition locates one instance within a count.
type BaseRepetition struct {
	// Index is 1-based.
	Index int
	// Offset is Index / Count, in (0, 1].
	Offset float32
	// Count is the number of instances.
	Count int
}

// Repetition describes one generation pass. Index, Offset and Angle (and the
// Row and Col sub-descriptors) are updated in place for every instance.
type Repetition struct {
	Type RepetitionType
	BaseRepetition

	// Angle is (Index-1) * 2π / Count for Ring layouts and 0 for Matrix.
	Angle float32

	Row BaseRepetition
	Col BaseRepetition
}

// NewRepetition returns the descriptor of a single-instance ring.
func NewRepetition() Repetition {
	one := BaseRepetition{Index: 1, Offset: 1, Count: 1}
	return Repetition{Type: Ring, BaseRepetition: one, Row: one, Col: one}
}

// PlanRepetitions normalizes a resolved repetitions value.
//
// A number yields a Ring of that many instances (Col.Count = Count,
// Row.Count = 1). A vector [cols, rows] yields a Matrix; a missing rows
// component makes it square. Anything else yields a single instance.
// Fractional counts round up. Non-positive counts are kept as is: the
// generation loop simply does not run.
func PlanRepetitions(v Value) Repetition {
	rep := NewRepetition()
	switch {
	case v.IsNumber() && v.IsDefined():
		n := roundCount(v.Float())
		rep.Count = n
		rep.Col.Count = n
	case v.IsVector():
		cols := roundCount(v.Float())
		rows := cols
		if r, ok := v.At(1); ok {
			rows = roundCount(r)
		}
		rep.Type = Matrix
		rep.Count = cols * rows
		rep.Col.Count = cols
		rep.Row.Count = rows
	}
	return rep
}

// RepetitionCount returns the total number of instances for a repetitions
// value, normalizing Matrix pairs to their product.
func RepetitionCount(v Value) int {
	return PlanRepetitions(v).Count
}

// Step moves the descriptor to the instance at (row, col), both 0-based.
func (r *Repetition) Step(row, col int) {
	linear := row*r.Col.Count + col

	r.Index = linear + 1
	r.Offset = float32(r.Index) / float32(r.Count)
	if r.Type == Ring {
		r.Angle = (math32.Pi * 2 / float32(r.Count)) * float32(linear)
	} else {
		r.Angle = 0
	}

	r.Col.Index = col + 1
	r.Col.Offset = float32(r.Col.Index) / float32(r.Col.Count)
	r.Row.Index = row + 1
	r.Row.Offset = float32(r.Row.Index) / float32(r.Row.Count)
}

// Center returns the grid center ((cols-1)/2, (rows-1)/2) used to lay out
// Matrix instances around the origin.
func (r *Repetition) Center() Vec2 {
	return Vec2{
		X: float32(r.Col.Count-1) / 2,
		Y: float32(r.Row.Count-1) / 2,
	}
}

func roundCount(f float32) int {
	if math32.IsNaN(f) || math32.IsInf(f, 0) {
		return 1
	}
	return int(math32.Ceil(f))
}
