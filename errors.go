package rosette

import "errors"

// Package errors.
var (
	// ErrPropResolve is returned when a computed property fails.
	ErrPropResolve = errors.New("rosette: resolve property")

	// ErrProduce is returned when a primitive fails to produce vertices.
	ErrProduce = errors.New("rosette: produce vertices")

	// ErrNoScene is returned by scene-dependent helpers on a detached shape.
	// Generate and Stream never return it: on a detached shape they are no-ops.
	ErrNoScene = errors.New("rosette: shape not attached to a scene")

	// ErrAttached is returned when adding a shape that already belongs to a scene.
	ErrAttached = errors.New("rosette: shape already attached to a scene")
)
