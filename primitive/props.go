package primitive

import "github.com/gogpu/rosette"

// Primitive property names.
const (
	// PropSideNumber is the number of sides of a RegularPolygon, and the
	// number of samples of the other loops.
	PropSideNumber rosette.PropName = "sideNumber"

	// Rose petals: the curve is r = cos(n/d * angle).
	PropN rosette.PropName = "n"
	PropD rosette.PropName = "d"

	// Spiral turns and the turn it starts from.
	PropTwists      rosette.PropName = "twists"
	PropTwistsStart rosette.PropName = "twistsStart"

	// Lissajous frequencies and phase.
	PropWX rosette.PropName = "wx"
	PropWY rosette.PropName = "wy"
	PropWZ rosette.PropName = "wz"
)

// defaultSideLength is the half size of a primitive when the shape does not
// set sideLength.
var defaultSideLength = rosette.Vector(50, 50)

// getProp resolves a property of the shape being generated. Producers
// called outside a generation (nil args or no shape) see the default.
func getProp(args *rosette.PropArgs, name rosette.PropName, def rosette.Value) (rosette.Value, error) {
	if args == nil || args.Shape == nil {
		return def, nil
	}
	return args.Shape.GetProp(name, args, def)
}

func getNum(args *rosette.PropArgs, name rosette.PropName, def float32) (float32, error) {
	v, err := getProp(args, name, rosette.Num(def))
	if err != nil {
		return 0, err
	}
	return v.Float(), nil
}

func sideLength(args *rosette.PropArgs) (rosette.Vec2, error) {
	v, err := getProp(args, rosette.PropSideLength, defaultSideLength)
	if err != nil {
		return rosette.Vec2{}, err
	}
	return rosette.ToVec2(v), nil
}
