// Package rosette generates parametric vector geometry.
//
// # Overview
//
// A Shape turns a set of properties into a flat buffer of 2D vertices.
// Its primitive (a Producer) emits raw points; the shape repeats them in a
// Ring or a Matrix layout, transforms every instance (scale, skew, squeeze,
// rotation, translation, perspective) and places it in the scene.
// Shapes can wrap other shapes, so a ring of grids of polygons is three
// nested shapes.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/rosette"
//	    "github.com/gogpu/rosette/primitive"
//	)
//
//	scene := rosette.NewScene(rosette.WithSize(800, 800))
//
//	// Eight squares on a ring of radius 200, each rotating with time
//	square := rosette.NewShape(primitive.NewRegularPolygon(4), rosette.WithProps(rosette.Props{
//	    rosette.PropRepetitions: rosette.Literal(rosette.Num(8)),
//	    rosette.PropDistance:    rosette.Literal(rosette.Num(200)),
//	    rosette.PropScale:       rosette.Literal(rosette.Num(40)),
//	    rosette.PropRotateZ: rosette.Dynamic(func(a *rosette.PropArgs) rosette.Value {
//	        return rosette.Num(float32(a.Time) / 1000)
//	    }),
//	}))
//	scene.Add(square)
//
//	scene.Update(500, 1)
//	scene.Stream(func(f *rosette.StreamArgs) {
//	    fmt.Println(f.Index, f.Frame())
//	})
//
// # Properties
//
// A property is either a Literal value or a Computed function of the
// generation context (PropArgs): the current Repetition, the scene time,
// the shape, client data and the context of the enclosing shape.
// Undefined or NaN results fall back to the property's default.
//
// A shape whose geometry properties are all literal is static: it generates
// once and later calls return immediately. Otherwise Generate rebuilds the
// buffer whenever the token changes.
//
// # Coordinate System
//
// First-level shapes are centered on the scene center. Angles are in
// radians. Y grows downward, as in SVG.
//
// # Exporting
//
// Stream replays a generated buffer frame by frame with resolved style.
// Package recording records streams and plays them back to the svg, gcode
// and raster backends.
package rosette
