// Package primitive provides the built-in vertex producers of rosette.
//
// A primitive emits the raw outline of one shape instance, normalized
// around the origin and scaled by the shape's sideLength property
// (default 50x50). The shape then repeats and transforms it.
//
//   - Buffer emits fixed coordinates.
//   - Loop samples a vertex formula over an angle range. RegularPolygon,
//     Rose, Spiral and Lissajous are loops.
//
// Primitive parameters are ordinary shape properties, so they can be
// literal or computed:
//
//	hexagons := rosette.NewShape(primitive.NewRegularPolygon(6), rosette.WithProps(rosette.Props{
//	    rosette.PropRepetitions: rosette.Literal(rosette.Num(12)),
//	    primitive.PropSideNumber: rosette.Dynamic(func(a *rosette.PropArgs) rosette.Value {
//	        return rosette.Num(float32(3 + a.Repetition.Index))
//	    }),
//	}))
//
// Loops whose output depends only on literal properties are memoized in a
// process-wide cache shared by every shape.
package primitive
