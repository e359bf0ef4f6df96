package rosette

import (
	"fmt"
	"log/slog"
)

// NodeID identifies a shape inside a Scene. The zero NodeID is never
// assigned.
type NodeID uint64

// Scene owns a set of shapes and the facts they read while generating:
// size, colors and the current time.
//
// Shapes are kept in an arena keyed by NodeID. The scene records the parent
// of every nested shape, so invalidations walk identifiers instead of
// object back-references.
type Scene struct {
	width, height float32
	mainColor     string
	background    string
	time          float64

	nextID   NodeID
	nodes    map[NodeID]*Shape
	parents  map[NodeID]NodeID
	children []NodeID
}

// NewScene creates an empty 600x600 scene drawing white on black.
func NewScene(opts ...SceneOption) *Scene {
	sc := &Scene{
		width:      600,
		height:     600,
		mainColor:  "#fff",
		background: "#000",
		nodes:      make(map[NodeID]*Shape),
		parents:    make(map[NodeID]NodeID),
	}
	for _, opt := range opts {
		opt(sc)
	}
	return sc
}

// Width returns the scene width.
func (sc *Scene) Width() float32 { return sc.width }

// Height returns the scene height.
func (sc *Scene) Height() float32 { return sc.height }

// Center returns the scene center, where first-level shapes are placed.
func (sc *Scene) Center() Vec2 { return Vec2{X: sc.width / 2, Y: sc.height / 2} }

// MainColor returns the default stroke color.
func (sc *Scene) MainColor() string { return sc.mainColor }

// Background returns the background color.
func (sc *Scene) Background() string { return sc.background }

// Time returns the current scene time in milliseconds.
func (sc *Scene) Time() float64 { return sc.time }

// SetSize changes the scene dimensions and invalidates every shape, since
// first-level shapes are placed around the center.
func (sc *Scene) SetSize(width, height float32) {
	sc.width, sc.height = width, height
	for _, id := range sc.children {
		sc.nodes[id].ClearBuffer(false)
	}
}

// Update sets the scene time and regenerates every first-level shape for
// the given token.
func (sc *Scene) Update(time float64, token int) error {
	sc.time = time
	return sc.Generate(token)
}

// Add attaches shape as a first-level child, registering its nested
// children too. A shape can belong to one scene only.
func (sc *Scene) Add(shape *Shape) error {
	if err := sc.attach(shape, 0); err != nil {
		return err
	}
	sc.children = append(sc.children, shape.id)
	Logger().Debug("rosette: shape added", slog.Uint64("id", uint64(shape.id)), slog.String("name", shape.name))
	return nil
}

func (sc *Scene) attach(shape *Shape, parent NodeID) error {
	for s := shape; s != nil; s = s.child {
		if s.scene != nil {
			return fmt.Errorf("%w: %q", ErrAttached, s.name)
		}
	}
	for s := shape; s != nil; s = s.child {
		sc.nextID++
		s.id = sc.nextID
		s.scene = sc
		sc.nodes[s.id] = s
		if parent != 0 {
			sc.parents[s.id] = parent
		}
		parent = s.id
	}
	refreshChain(shape)
	return nil
}

// refreshChain recomputes the static flags of a nested chain innermost
// first, since each shape derives its flags from its child.
func refreshChain(shape *Shape) {
	if shape == nil {
		return
	}
	refreshChain(shape.child)
	shape.refreshStatic()
}

// Remove detaches a first-level shape and its nested children.
// It reports whether the shape was found.
func (sc *Scene) Remove(id NodeID) bool {
	for i, c := range sc.children {
		if c == id {
			sc.children = append(sc.children[:i], sc.children[i+1:]...)
			sc.detach(sc.nodes[id])
			return true
		}
	}
	return false
}

func (sc *Scene) detach(shape *Shape) {
	for s := shape; s != nil; s = s.child {
		delete(sc.nodes, s.id)
		delete(sc.parents, s.id)
		s.id = 0
		s.scene = nil
		s.buffer = nil
		s.index = nil
		s.isIndexed = false
	}
}

// replaceChild swaps the nested child of parent, keeping the arena in sync.
func (sc *Scene) replaceChild(parent, child *Shape) error {
	if child != nil {
		for s := child; s != nil; s = s.child {
			if s.scene != nil {
				return fmt.Errorf("%w: %q", ErrAttached, s.name)
			}
		}
	}
	if parent.child != nil {
		sc.detach(parent.child)
	}
	parent.child = child
	if child == nil {
		return nil
	}
	return sc.attach(child, parent.id)
}

// Node returns the shape with the given id, nil when unknown.
func (sc *Scene) Node(id NodeID) *Shape { return sc.nodes[id] }

// Children returns the first-level shapes in insertion order.
func (sc *Scene) Children() []*Shape {
	out := make([]*Shape, len(sc.children))
	for i, id := range sc.children {
		out[i] = sc.nodes[id]
	}
	return out
}

// Len returns the number of registered shapes, nested ones included.
func (sc *Scene) Len() int { return len(sc.nodes) }

// IsFirstLevel reports whether id is a direct child of the scene.
func (sc *Scene) IsFirstLevel(id NodeID) bool {
	_, nested := sc.parents[id]
	_, known := sc.nodes[id]
	return known && !nested
}

// Ancestors returns the chain of enclosing shapes of id, nearest first,
// ending with the first-level shape. First-level shapes have none.
func (sc *Scene) Ancestors(id NodeID) []NodeID {
	var out []NodeID
	for {
		p, ok := sc.parents[id]
		if !ok {
			return out
		}
		out = append(out, p)
		id = p
	}
}

// Generate generates every first-level shape around the scene center.
func (sc *Scene) Generate(token int) error {
	for _, id := range sc.children {
		if err := sc.nodes[id].Generate(token, true, nil); err != nil {
			return err
		}
	}
	return nil
}

// Stream streams every first-level shape in insertion order.
func (sc *Scene) Stream(fn func(*StreamArgs)) error {
	for _, id := range sc.children {
		if err := sc.nodes[id].Stream(fn); err != nil {
			return err
		}
	}
	return nil
}

// Bounding returns the union of the first-level shapes' boxes, ignoring
// shapes that generated no vertex.
func (sc *Scene) Bounding() Bounding {
	acc := newBoundsAccumulator()
	for _, id := range sc.children {
		b := sc.nodes[id].bounding
		if b.IsEmpty() {
			continue
		}
		acc.add(b.X, b.Y)
		acc.add(b.X+b.Width, b.Y+b.Height)
	}
	return acc.bounding()
}
