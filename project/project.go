// Package project loads scene descriptions from JSON, YAML or TOML files
// and builds them into rosette scenes.
//
// A project names its primitives by kind and sets their properties:
//
//	name: flower
//	width: 800
//	height: 800
//	scene:
//	  - type: Rose
//	    props:
//	      repetitions: 8
//	      distance: 120
//	      sideLength: 60
//	      n: 3
//	      rotateZ: "= time / 1000 + angle"
//	    style:
//	      stroke: "hsla(200, 80%, 60%, 0.8)"
//
// A string property starting with "=" is a Go expression, evaluated by
// the yaegi interpreter for every instance. The fmt and math packages are
// imported and these float64 variables are in scope: time, index, offset,
// angle, count, row, rowOffset, rowCount, col, colOffset, colCount, and
// parentIndex, parentOffset, parentAngle, parentCount (0 at first level).
// The result may be a number, a numeric slice or a string.
//
// A "Shape" child wraps the single child given by child or children.
//
// Missing fields take the defaults of an empty project: a 600x600 scene
// drawing #fff on #000, and a 6 second sequence at 60 frames per second.
package project

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/rosette/recording"
)

var (
	// ErrNoScene is returned for a project without a scene section.
	ErrNoScene = errors.New("project: no scene")

	// ErrFormat is returned for an unsupported file extension.
	ErrFormat = errors.New("project: unsupported format")
)

// Project is a scene description.
type Project struct {
	Name       string  `json:"name" yaml:"name" toml:"name"`
	Width      float32 `json:"width" yaml:"width" toml:"width"`
	Height     float32 `json:"height" yaml:"height" toml:"height"`
	Background string  `json:"background" yaml:"background" toml:"background"`
	Color      string  `json:"color" yaml:"color" toml:"color"`

	// Ghosts is the number of ghost layers drawn every GhostSkipTime ms.
	Ghosts        int     `json:"ghosts" yaml:"ghosts" toml:"ghosts"`
	GhostSkipTime float64 `json:"ghostSkipTime" yaml:"ghostSkipTime" toml:"ghostSkipTime"`

	// GhostSkipFunction, when set, is an expression over ghost and ghosts
	// giving the distance in ms of each ghost. It overrides GhostSkipTime.
	GhostSkipFunction string `json:"ghostSkipFunction,omitempty" yaml:"ghostSkipFunction,omitempty" toml:"ghostSkipFunction,omitempty"`

	Sequence Sequence `json:"sequence" yaml:"sequence" toml:"sequence"`

	// Scene lists the first-level children in drawing order.
	Scene []Child `json:"scene" yaml:"scene" toml:"scene"`
}

// Sequence is the animation timeline.
type Sequence struct {
	// Duration is in milliseconds.
	Duration  float64 `json:"duration" yaml:"duration" toml:"duration"`
	Framerate float64 `json:"framerate" yaml:"framerate" toml:"framerate"`
}

// Frames returns the number of frames of the sequence.
func (s Sequence) Frames() int {
	if s.Duration <= 0 || s.Framerate <= 0 {
		return 0
	}
	return int(math.Ceil(s.Duration / 1000 * s.Framerate))
}

// FrameTime returns the time of frame i in milliseconds.
func (s Sequence) FrameTime(i int) float64 {
	if s.Framerate <= 0 {
		return 0
	}
	return float64(i) * 1000 / s.Framerate
}

// Child describes one shape.
type Child struct {
	// Type is a primitive kind (see primitive.Kinds) or "Shape" for a
	// wrapper around Child.
	Type string `json:"type" yaml:"type" toml:"type"`
	Name string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`

	// Primitive settings.
	AdaptMode string    `json:"adaptMode,omitempty" yaml:"adaptMode,omitempty" toml:"adaptMode,omitempty"`
	Closed    *bool     `json:"closed,omitempty" yaml:"closed,omitempty" toml:"closed,omitempty"`
	Spiral    string    `json:"spiral,omitempty" yaml:"spiral,omitempty" toml:"spiral,omitempty"`
	Shape     []float32 `json:"shape,omitempty" yaml:"shape,omitempty" toml:"shape,omitempty"`

	UseParent bool `json:"useParent,omitempty" yaml:"useParent,omitempty" toml:"useParent,omitempty"`

	// Visible false leaves a first-level child out of recordings, and
	// DisableGhost out of ghost layers.
	Visible      *bool `json:"visible,omitempty" yaml:"visible,omitempty" toml:"visible,omitempty"`
	DisableGhost bool  `json:"disableGhost,omitempty" yaml:"disableGhost,omitempty" toml:"disableGhost,omitempty"`

	// Props and Style hold numbers, numeric arrays, strings and
	// expressions.
	Props map[string]any `json:"props,omitempty" yaml:"props,omitempty" toml:"props,omitempty"`
	Style map[string]any `json:"style,omitempty" yaml:"style,omitempty" toml:"style,omitempty"`

	Child    *Child  `json:"child,omitempty" yaml:"child,omitempty" toml:"child,omitempty"`
	Children []Child `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
}

// New returns an empty project with default values.
func New() *Project {
	return &Project{
		Width:         600,
		Height:        600,
		Background:    "#000",
		Color:         "#fff",
		GhostSkipTime: 30,
		Sequence: Sequence{
			Duration:  6000,
			Framerate: 60,
		},
	}
}

// Format is a project file encoding.
type Format int

const (
	JSON Format = iota
	YAML
	TOML
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatOf returns the format of a file from its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(path))
}

// Load reads a project file, choosing the decoder by extension.
func Load(path string) (*Project, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}
	defer f.Close()

	p, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return p, nil
}

// RecorderOptions returns the recording options the project asks for.
// A ghost skip function gets its own interpreter, so the options must not
// be shared by recorders running at the same time.
func (p *Project) RecorderOptions() ([]recording.RecorderOption, error) {
	if p.Ghosts <= 0 {
		return nil, nil
	}
	opts := []recording.RecorderOption{recording.WithGhosts(p.Ghosts, p.GhostSkipTime)}
	if p.GhostSkipFunction == "" {
		return opts, nil
	}
	var b builder
	fn, err := b.compile(p.GhostSkipFunction, ghostVars)
	if err != nil {
		return nil, fmt.Errorf("ghostSkipFunction: %w", err)
	}
	skip := p.GhostSkipTime
	fixed := func(i int) float64 { return float64(i) * skip }
	return append(opts, recording.WithGhostSkipFunc(fn.ghostSkip(p.GhostSkipFunction, p.Ghosts, fixed))), nil
}
