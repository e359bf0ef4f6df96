package rosette

// IndexEntry describes one frame of a generated buffer: the contiguous run
// of coordinates emitted by a single leaf instance.
//
// For nested shapes the entry belongs to the leaf that produced the frame
// and Parent links to the instance of each enclosing shape, innermost first.
type IndexEntry struct {
	Shape *Shape

	// FrameLength is the number of float32 values (twice the vertex count).
	FrameLength int

	// Repetition is a snapshot of the descriptor at the time the frame was
	// generated.
	Repetition Repetition

	Parent *IndexEntry
}

// PropArgs converts the entry and its parent chain into the context used
// to resolve style properties while streaming.
func (e *IndexEntry) PropArgs() *PropArgs {
	if e == nil {
		return nil
	}
	rep := e.Repetition
	args := &PropArgs{
		Repetition: &rep,
		Shape:      e.Shape,
		Parent:     e.Parent.PropArgs(),
	}
	if e.Shape != nil {
		args.Data = e.Shape.data
	}
	return args
}

// clone returns a deep copy of the entry and its parent chain.
func (e *IndexEntry) clone() *IndexEntry {
	if e == nil {
		return nil
	}
	cp := *e
	cp.Parent = e.Parent.clone()
	return &cp
}

// root returns the outermost entry of the chain.
func (e *IndexEntry) root() *IndexEntry {
	for e.Parent != nil {
		e = e.Parent
	}
	return e
}

// indexBuilder collects the entries of one generation pass.
type indexBuilder struct {
	shape   *Shape
	entries []IndexEntry
	rebuilt bool
}

func newIndexBuilder(s *Shape, rebuild bool) *indexBuilder {
	return &indexBuilder{shape: s, rebuilt: rebuild}
}

// add records the instance that just produced frameLength values.
// Leaves record one entry; wrapping shapes re-parent every entry of their
// child under the current instance.
func (b *indexBuilder) add(frameLength int, rep Repetition) {
	self := IndexEntry{Shape: b.shape, FrameLength: frameLength, Repetition: rep}

	child := b.shape.child
	if child == nil {
		b.entries = append(b.entries, self)
		return
	}
	for i := range child.index {
		e := child.index[i]
		e.Parent = e.Parent.clone()
		if e.Parent == nil {
			p := self
			e.Parent = &p
		} else {
			p := self
			e.Parent.root().Parent = &p
		}
		b.entries = append(b.entries, e)
	}
}

// finish returns the index to keep. A previous index is reused when no
// rebuild was requested and it still covers exactly total values.
func (b *indexBuilder) finish(prev []IndexEntry, total int) []IndexEntry {
	if !b.rebuilt && prev != nil && frameTotal(prev) == total {
		return prev
	}
	b.rebuilt = true
	if b.entries == nil {
		return []IndexEntry{}
	}
	return b.entries
}

func frameTotal(entries []IndexEntry) int {
	n := 0
	for i := range entries {
		n += entries[i].FrameLength
	}
	return n
}
