package rosette

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
)

// valueKind tags the payload carried by a Value.
type valueKind uint8

const (
	kindUndefined valueKind = iota
	kindNumber
	kindVector
	kindText
)

// Value is a resolved property value: a number, a vector of one to three
// components, or a text (typically a color). The zero Value is undefined.
//
// A vector with a single component is distinct from a number: for the
// repetitions property Vector(3) means a 3x3 matrix while Num(3) means a
// ring of three.
type Value struct {
	kind valueKind
	n    uint8
	v    [3]float32
	s    string
}

// Num creates a numeric value.
func Num(f float32) Value {
	return Value{kind: kindNumber, n: 1, v: [3]float32{f}}
}

// Vector creates a vector value from up to three components.
// Extra components are ignored; no components yields an undefined value.
func Vector(c ...float32) Value {
	if len(c) == 0 {
		return Value{}
	}
	val := Value{kind: kindVector}
	val.n = uint8(copy(val.v[:], c))
	return val
}

// Text creates a text value, used for colors.
func Text(s string) Value {
	return Value{kind: kindText, s: s}
}

// IsDefined reports whether v carries a usable value.
// Undefined values and NaN numbers are not defined.
func (v Value) IsDefined() bool {
	switch v.kind {
	case kindUndefined:
		return false
	case kindNumber:
		return !math32.IsNaN(v.v[0])
	}
	return true
}

// IsNumber reports whether v is a number.
func (v Value) IsNumber() bool { return v.kind == kindNumber }

// IsVector reports whether v is a vector.
func (v Value) IsVector() bool { return v.kind == kindVector }

// IsText reports whether v is a text.
func (v Value) IsText() bool { return v.kind == kindText }

// Len returns the number of numeric components (0 for text and undefined).
func (v Value) Len() int {
	if v.kind == kindNumber || v.kind == kindVector {
		return int(v.n)
	}
	return 0
}

// Float returns the number, or the first vector component.
// Returns 0 for text and undefined values.
func (v Value) Float() float32 {
	if v.kind == kindNumber || v.kind == kindVector {
		return v.v[0]
	}
	return 0
}

// At returns the i-th component and whether it exists.
func (v Value) At(i int) (float32, bool) {
	if i < 0 || i >= v.Len() {
		return 0, false
	}
	return v.v[i], true
}

// Str returns the text payload, or "" for non-text values.
func (v Value) Str() string {
	if v.kind == kindText {
		return v.s
	}
	return ""
}

// String implements fmt.Stringer.
func (v Value) String() string {
	switch v.kind {
	case kindNumber:
		return strconv.FormatFloat(float64(v.v[0]), 'g', -1, 32)
	case kindVector:
		parts := make([]string, v.n)
		for i := range parts {
			parts[i] = strconv.FormatFloat(float64(v.v[i]), 'g', -1, 32)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case kindText:
		return v.s
	}
	return "undefined"
}

// ValueOf converts a decoded literal (as produced by encoding/json, yaml.v3
// or go-toml) into a Value. Numbers become Num, numeric slices become Vector,
// strings become Text and nil stays undefined.
func ValueOf(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return t, nil
	case string:
		return Text(t), nil
	case []any:
		c := make([]float32, 0, len(t))
		for _, e := range t {
			f, ok := toFloat(e)
			if !ok {
				return Value{}, fmt.Errorf("rosette: vector component %v (%T) is not a number", e, e)
			}
			c = append(c, f)
		}
		return Vector(c...), nil
	case []float32:
		return Vector(t...), nil
	case []float64:
		c := make([]float32, len(t))
		for i, f := range t {
			c[i] = float32(f)
		}
		return Vector(c...), nil
	}
	if f, ok := toFloat(x); ok {
		return Num(f), nil
	}
	return Value{}, fmt.Errorf("rosette: unsupported literal %v (%T)", x, x)
}

func toFloat(x any) (float32, bool) {
	switch t := x.(type) {
	case float32:
		return t, true
	case float64:
		return float32(t), true
	case int:
		return float32(t), true
	case int64:
		return float32(t), true
	case int32:
		return float32(t), true
	case uint64:
		return float32(t), true
	}
	return 0, false
}
