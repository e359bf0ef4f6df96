package rosette

import "github.com/chewxy/math32"

// perspectiveFovy is the fixed vertical field of view of the perspective
// projection. Its negative sign keeps projected shapes upright.
const perspectiveFovy = -math32.Pi / 2

// TransformParams are the resolved transform properties of one instance.
type TransformParams struct {
	Distance Vec2
	Displace float32

	Scale     Vec3
	Translate Vec3

	SkewX, SkewY       float32
	SqueezeX, SqueezeY float32

	RotateX, RotateY, RotateZ float32

	// Perspective is clamped to [0, 1]; 0 disables the projection.
	Perspective       float32
	PerspectiveOrigin Vec3
	TransformOrigin   Vec3
}

// DefaultTransformParams returns the identity parameters: unit distance and
// scale, everything else zero.
func DefaultTransformParams() TransformParams {
	return TransformParams{
		Distance: Vec2{X: 1, Y: 1},
		Scale:    Vec3{X: 1, Y: 1, Z: 1},
	}
}

var (
	vec2One  = Vector(1, 1)
	vec2Zero = Vector(0, 0)
)

// resolveTransformParams reads every transform property of s for the
// instance described by args.
func resolveTransformParams(s *Shape, args *PropArgs) (TransformParams, error) {
	var (
		p   TransformParams
		err error
	)
	num := func(name PropName) float32 {
		if err != nil {
			return 0
		}
		var v Value
		v, err = s.GetProp(name, args, Num(0))
		return v.Float()
	}
	vec := func(name PropName, def Value) Value {
		if err != nil {
			return Value{}
		}
		var v Value
		v, err = s.GetProp(name, args, def)
		return v
	}

	p.Distance = ToVec2(vec(PropDistance, vec2One))
	p.Displace = num(PropDisplace)
	p.Scale = ToVec3(vec(PropScale, vec2One), 1)
	p.Translate = ToVec3(vec(PropTranslate, vec2Zero), 0)
	p.SkewX = num(PropSkewX)
	p.SkewY = num(PropSkewY)
	p.SqueezeX = num(PropSqueezeX)
	p.SqueezeY = num(PropSqueezeY)
	p.RotateX = num(PropRotateX)
	p.RotateY = num(PropRotateY)
	p.RotateZ = num(PropRotateZ)
	p.Perspective = clamp01(num(PropPerspective))
	p.PerspectiveOrigin = ToVec3(vec(PropPerspectiveOrigin, vec2Zero), 0)
	p.TransformOrigin = ToVec3(vec(PropTransformOrigin, vec2Zero), 0)
	return p, err
}

// Placement locates one instance inside its repetition layout.
type Placement struct {
	Type RepetitionType

	// Angle is the ring angle of the instance (Repetition.Angle).
	Angle float32

	// Row and Col are 0-based grid coordinates; Center is the grid center.
	Row, Col int
	Center   Vec2

	// SceneCenter is applied only when DirectChild is set.
	DirectChild bool
	SceneCenter Vec2
}

// Composer holds the matrices of one instance. It is built once per
// instance and applied to every vertex of that instance.
type Composer struct {
	local       Mat4
	perspective Mat4
	placement   Mat4

	// depth is the perspective distance; vertices start at z = depth.
	depth float32

	squeezeX, squeezeY float32

	perspectiveOrigin    Vec3
	hasPerspectiveOrigin bool
}

// NewComposer builds the local, perspective and placement transforms.
// bounds is the extent of the untransformed geometry; origins are expressed
// in half extents of it.
func NewComposer(p TransformParams, pl Placement, bounds Bounding) Composer {
	c := Composer{
		squeezeX: p.SqueezeX,
		squeezeY: p.SqueezeY,
	}

	if p.Perspective > 0 {
		size := math32.Max(bounds.Width, bounds.Height) / 2
		c.depth = size + (1-p.Perspective)*(size*10)
	}

	origin := p.TransformOrigin
	hasOrigin := c.depth != 0 || origin.X != 0 || origin.Y != 0
	if hasOrigin {
		origin.X *= bounds.Width / 2
		origin.Y *= bounds.Height / 2
		origin.Z = c.depth
	}

	m := Identity4()
	if hasOrigin {
		m = m.Translate(origin)
	}
	if p.Scale.X != 1 || p.Scale.Y != 1 || p.Scale.Z != 1 {
		m = m.Scale(p.Scale)
	}
	if p.SkewX != 0 || p.SkewY != 0 {
		m = m.Mul(Skewing(p.SkewX, p.SkewY))
	}
	if p.RotateX != 0 {
		m = m.RotateX(p.RotateX)
	}
	if p.RotateY != 0 {
		m = m.RotateY(p.RotateY)
	}
	if p.RotateZ != 0 {
		m = m.RotateZ(p.RotateZ)
	}
	if hasOrigin {
		m = m.Translate(origin.Neg())
	}
	if p.Translate.X != 0 || p.Translate.Y != 0 || p.Translate.Z != 0 {
		m = m.Translate(p.Translate)
	}
	c.local = m

	if c.depth > 0 {
		po := p.PerspectiveOrigin
		if po.X != 0 || po.Y != 0 {
			c.hasPerspectiveOrigin = true
			c.perspectiveOrigin = Vec3{X: po.X * bounds.Width / 2, Y: po.Y * bounds.Height / 2}
		}
		c.perspective = Perspective(perspectiveFovy, 1, 0, math32.Inf(1))
	}

	c.placement = placementMatrix(p, pl)
	return c
}

// placementMatrix moves an instance to its slot in the layout.
func placementMatrix(p TransformParams, pl Placement) Mat4 {
	var offset Vec2
	switch pl.Type {
	case Ring:
		offset = Vec2{X: p.Distance.X}.Rotate(pl.Angle + p.Displace)
	case Matrix:
		offset = Vec2{
			X: p.Distance.X * (float32(pl.Col) - pl.Center.X),
			Y: p.Distance.Y * (float32(pl.Row) - pl.Center.Y),
		}
	}

	m := Translation(Vec3{X: offset.X, Y: offset.Y})
	if pl.DirectChild {
		m = m.Translate(Vec3{X: pl.SceneCenter.X, Y: pl.SceneCenter.Y})
	}
	if pl.Type == Ring {
		m = m.RotateZ(pl.Angle + p.Displace)
	}
	return m
}

// Depth returns the perspective depth, 0 when perspective is off.
func (c *Composer) Depth() float32 { return c.depth }

// Apply transforms one raw vertex: squeeze, local transform, perspective
// (when enabled) and placement.
func (c *Composer) Apply(x, y float32) Vec3 {
	v := Vec3{X: x, Y: y, Z: c.depth}
	if c.squeezeX != 0 {
		squeezeX(&v, c.squeezeX)
	}
	if c.squeezeY != 0 {
		squeezeY(&v, c.squeezeY)
	}

	v = c.local.TransformVec3(v)

	if c.depth > 0 {
		if c.hasPerspectiveOrigin {
			v = v.Add(c.perspectiveOrigin)
		}
		v = c.perspective.TransformVec3(v)
		v = v.Mul(c.depth)
		if c.hasPerspectiveOrigin {
			v = v.Add(c.perspectiveOrigin)
		}
	}

	return c.placement.TransformVec3(v)
}

// squeezeX narrows y proportionally to x.
func squeezeX(v *Vec3, m float32) {
	v.Y += v.Y * (v.X * -m)
}

// squeezeY widens x proportionally to y.
func squeezeY(v *Vec3, m float32) {
	v.X += v.X * (v.Y * m)
}

func clamp01(f float32) float32 {
	return math32.Min(1, math32.Max(0, f))
}
