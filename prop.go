package rosette

import "fmt"

// PropName identifies a shape property.
// Primitives may define their own names next to the core ones below.
type PropName string

// Core property names.
const (
	PropRepetitions       PropName = "repetitions"
	PropDistance          PropName = "distance"
	PropDisplace          PropName = "displace"
	PropSkewX             PropName = "skewX"
	PropSkewY             PropName = "skewY"
	PropSqueezeX          PropName = "squeezeX"
	PropSqueezeY          PropName = "squeezeY"
	PropScale             PropName = "scale"
	PropTranslate         PropName = "translate"
	PropRotateX           PropName = "rotateX"
	PropRotateY           PropName = "rotateY"
	PropRotateZ           PropName = "rotateZ"
	PropTransformOrigin   PropName = "transformOrigin"
	PropPerspective       PropName = "perspective"
	PropPerspectiveOrigin PropName = "perspectiveOrigin"

	// Primitive geometry.
	PropSideLength PropName = "sideLength"

	// Style, resolved only while streaming.
	PropFillColor   PropName = "fillColor"
	PropStrokeColor PropName = "strokeColor"
	PropLineWidth   PropName = "lineWidth"
)

// IsStyle reports whether the property is only read by Stream and therefore
// never affects the generated buffer.
func (n PropName) IsStyle() bool {
	return n == PropFillColor || n == PropStrokeColor || n == PropLineWidth
}

// PropArgs is the generation context threaded through every property
// evaluation and vertex observer call.
type PropArgs struct {
	// Repetition is the live descriptor of the current generation pass.
	// It is mutated in place between instances; copy it to keep a snapshot.
	Repetition *Repetition

	// Time is the scene time of the evaluation.
	Time float64

	// Shape is the node whose property is being resolved.
	Shape *Shape

	// Data is arbitrary client data attached to the shape.
	Data any

	// Parent is the context of the enclosing shape for nested generation.
	Parent *PropArgs
}

// PropFunc computes a property value from a generation context.
// A returned error aborts the Generate or Stream call that triggered it.
type PropFunc func(args *PropArgs) (Value, error)

// Prop is either a literal Value or a function of the generation context.
type Prop struct {
	value Value
	fn    PropFunc
}

// Literal creates a fixed property.
func Literal(v Value) Prop {
	return Prop{value: v}
}

// Computed creates a property evaluated on every resolution.
func Computed(fn PropFunc) Prop {
	return Prop{fn: fn}
}

// Dynamic is like Computed for functions that cannot fail.
func Dynamic(fn func(args *PropArgs) Value) Prop {
	return Prop{fn: func(args *PropArgs) (Value, error) { return fn(args), nil }}
}

// IsComputed reports whether the property is a function.
func (p Prop) IsComputed() bool { return p.fn != nil }

// Resolve evaluates the property. Undefined and NaN results yield def.
// A nil args is replaced by an empty context.
func (p Prop) Resolve(args *PropArgs, def Value) (Value, error) {
	v := p.value
	if p.fn != nil {
		if args == nil {
			args = emptyArgs()
		}
		var err error
		v, err = p.fn(args)
		if err != nil {
			return Value{}, err
		}
	}
	if !v.IsDefined() {
		return def, nil
	}
	return v, nil
}

// Props maps property names to properties.
type Props map[PropName]Prop

// allLiteral reports whether no geometry-affecting property is computed.
func (p Props) allLiteral() bool {
	for name, prop := range p {
		if prop.IsComputed() && !name.IsStyle() {
			return false
		}
	}
	return true
}

// emptyArgs returns a fresh context with a single-instance ring repetition.
func emptyArgs() *PropArgs {
	rep := NewRepetition()
	return &PropArgs{Repetition: &rep}
}

// resolveError wraps a property function failure.
func resolveError(name PropName, err error) error {
	return fmt.Errorf("%w %q: %w", ErrPropResolve, name, err)
}
