package project

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/gogpu/rosette"
	"github.com/gogpu/rosette/primitive"
	"github.com/gogpu/rosette/recording"
)

// ErrChild is returned for a child that cannot be built.
var ErrChild = errors.New("project: invalid child")

// styleAliases maps the short style names accepted in project files.
var styleAliases = map[string]rosette.PropName{
	"fill":   rosette.PropFillColor,
	"stroke": rosette.PropStrokeColor,
}

// Build creates a scene holding every child of the project.
func (p *Project) Build() (*rosette.Scene, error) {
	sc := rosette.NewScene(
		rosette.WithSize(p.Width, p.Height),
		rosette.WithBackground(p.Background),
		rosette.WithMainColor(p.Color),
	)
	var b builder
	for i := range p.Scene {
		shape, err := p.Scene[i].build(&b)
		if err != nil {
			return nil, fmt.Errorf("scene[%d]: %w", i, err)
		}
		if err := sc.Add(shape); err != nil {
			return nil, fmt.Errorf("scene[%d]: %w", i, err)
		}
	}
	rosette.Logger().Debug("project: scene built", slog.String("name", p.Name), slog.Int("children", len(p.Scene)))
	return sc, nil
}

// builder holds the state shared by the children of one build. The
// expression interpreter is created on first use.
type builder struct {
	eval *evaluator
}

func (b *builder) compile(src string, vars []string) (exprFunc, error) {
	if b.eval == nil {
		e, err := newEvaluator()
		if err != nil {
			return nil, err
		}
		b.eval = e
	}
	return b.eval.compile(src, vars)
}

// drawerData carries the recording flags of a child.
type drawerData struct {
	visible      bool
	disableGhost bool
}

var _ recording.DrawerData = drawerData{}

func (d drawerData) Visible() bool      { return d.visible }
func (d drawerData) DisableGhost() bool { return d.disableGhost }

// Build creates the shape described by c and its nested child.
func (c *Child) Build() (*rosette.Shape, error) {
	var b builder
	return c.build(&b)
}

func (c *Child) build(b *builder) (*rosette.Shape, error) {
	props, err := c.props(b)
	if err != nil {
		return nil, err
	}
	opts := []rosette.ShapeOption{
		rosette.WithProps(props),
		rosette.WithName(c.Name),
		rosette.WithUseParent(c.UseParent),
	}
	if c.DisableGhost || c.Visible != nil {
		d := drawerData{visible: true, disableGhost: c.DisableGhost}
		if c.Visible != nil {
			d.visible = *c.Visible
		}
		opts = append(opts, rosette.WithData(d))
	}

	nested := c.Children
	if c.Child != nil {
		nested = append([]Child{*c.Child}, nested...)
	}

	if strings.EqualFold(c.Type, "shape") {
		if len(nested) != 1 {
			return nil, fmt.Errorf("%w: %s: shape wraps exactly one child, got %d", ErrChild, c.label(), len(nested))
		}
		child, err := nested[0].build(b)
		if err != nil {
			return nil, fmt.Errorf("%s.child: %w", c.label(), err)
		}
		return rosette.Wrap(child, opts...), nil
	}

	if len(nested) > 0 {
		return nil, fmt.Errorf("%w: %s: primitives take no child", ErrChild, c.label())
	}
	producer, err := primitive.New(c.Type, primitive.Settings{
		Spiral:    c.Spiral,
		Shape:     c.Shape,
		AdaptMode: c.AdaptMode,
		Closed:    c.Closed,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrChild, err)
	}
	return rosette.NewShape(producer, opts...), nil
}

// props converts Props and Style to properties: expressions become
// computed properties, anything else a literal. Keys are sorted so that
// errors are reported deterministically.
func (c *Child) props(b *builder) (rosette.Props, error) {
	out := make(rosette.Props, len(c.Props)+len(c.Style))
	set := func(section string, m map[string]any, alias map[string]rosette.PropName) error {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			name := rosette.PropName(k)
			if a, ok := alias[k]; ok {
				name = a
			}
			if IsExpr(m[k]) {
				src := m[k].(string)
				fn, err := b.compile(src, propVars)
				if err != nil {
					return fmt.Errorf("%s.%s.%s: %w", c.label(), section, k, err)
				}
				out[name] = fn.prop(src)
				continue
			}
			v, err := rosette.ValueOf(m[k])
			if err != nil {
				return fmt.Errorf("%w: %s.%s.%s: %w", ErrChild, c.label(), section, k, err)
			}
			out[name] = rosette.Literal(v)
		}
		return nil
	}
	if err := set("props", c.Props, nil); err != nil {
		return nil, err
	}
	if err := set("style", c.Style, styleAliases); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Child) label() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Type
}
