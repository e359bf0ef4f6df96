package recording

import "math"

// PaintRef is a reference to a paint stored in a Palette.
type PaintRef uint32

// NoPaint marks an absent fill or stroke.
const NoPaint PaintRef = math.MaxUint32

// IsValid reports whether the reference designates a paint.
func (r PaintRef) IsValid() bool { return r != NoPaint }

// Palette deduplicates the paints of a recording. Frames store references
// so a scene with thousands of frames keeps a handful of paints.
//
// Palette is not safe for concurrent use.
type Palette struct {
	paints []Paint
	index  map[Paint]PaintRef
}

// NewPalette creates an empty palette.
func NewPalette() *Palette {
	return &Palette{
		paints: make([]Paint, 0, 8),
		index:  make(map[Paint]PaintRef, 8),
	}
}

// Add stores p, returning the existing reference when an equal paint is
// already stored.
func (pl *Palette) Add(p Paint) PaintRef {
	if ref, ok := pl.index[p]; ok {
		return ref
	}
	// #nosec G115 -- palette size is bounded by the distinct colors of a scene
	ref := PaintRef(uint32(len(pl.paints)))
	pl.paints = append(pl.paints, p)
	pl.index[p] = ref
	return ref
}

// Get returns the paint for ref. ok is false for NoPaint and out of range
// references.
func (pl *Palette) Get(ref PaintRef) (Paint, bool) {
	if !ref.IsValid() || int(ref) >= len(pl.paints) {
		return Paint{}, false
	}
	return pl.paints[ref], true
}

// Len returns the number of distinct paints.
func (pl *Palette) Len() int { return len(pl.paints) }
