package recording

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/rosette"
)

// tokens hands out generation tokens. Each capture pass uses a fresh one
// so that time-dependent shapes regenerate; the range starts high to stay
// clear of tokens chosen by callers of Scene.Update.
var tokens atomic.Int64

func init() {
	tokens.Store(1 << 30)
}

func nextToken() int { return int(tokens.Add(1)) }

// Recorder captures the frames of a scene into a Recording.
//
// A Recorder holds configuration only and is safe to reuse. Recording
// drives the scene (it sets its time and regenerates it), so a scene must
// not be recorded from two goroutines at once.
type Recorder struct {
	ghosts       int
	ghostSkip    float64
	ghostSkipFn  func(ghost int) float64
	noBackground bool
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithGhosts adds n ghost layers taken every skip milliseconds before the
// recorded time.
func WithGhosts(n int, skip float64) RecorderOption {
	return func(r *Recorder) {
		r.ghosts = max(n, 0)
		r.ghostSkip = skip
	}
}

// WithGhostSkipFunc sets the distance in milliseconds between the
// recorded time and ghost i, replacing the fixed skip of WithGhosts.
func WithGhostSkipFunc(fn func(ghost int) float64) RecorderOption {
	return func(r *Recorder) { r.ghostSkipFn = fn }
}

// WithoutBackground omits the scene background.
func WithoutBackground() RecorderOption {
	return func(r *Recorder) { r.noBackground = true }
}

// NewRecorder creates a Recorder. Without options it records the current
// time only, with the scene background and a ghost skip of 30ms.
func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{ghostSkip: 30}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record updates scene to time and captures its frames. Ghost layers come
// first, oldest first, so that the current time is drawn on top.
func (r *Recorder) Record(scene *rosette.Scene, time float64) (*Recording, error) {
	if scene == nil {
		return nil, fmt.Errorf("recording: %w", rosette.ErrNoScene)
	}

	rec := &Recording{
		width:   float64(scene.Width()),
		height:  float64(scene.Height()),
		time:    time,
		ghosts:  r.ghosts,
		palette: NewPalette(),
		bg:      NoPaint,
		frames:  make([]Frame, 0, 64),
	}
	if !r.noBackground {
		bg, ok, err := ParseColor(scene.Background())
		if err != nil {
			rosette.Logger().Warn("recording: background ignored", slog.String("color", scene.Background()), slog.Any("error", err))
		} else if ok {
			rec.bg = rec.palette.Add(bg)
		}
	}

	for i := r.ghosts; i >= 1; i-- {
		t := time - r.ghostOffset(i)
		if err := r.capture(scene, rec, t, i); err != nil {
			return nil, err
		}
	}
	if err := r.capture(scene, rec, time, 0); err != nil {
		return nil, err
	}

	rosette.Logger().Debug("recording: scene captured",
		slog.Float64("time", time),
		slog.Int("frames", len(rec.frames)),
		slog.Int("paints", rec.palette.Len()),
		slog.Int("ghosts", r.ghosts))
	return rec, nil
}

func (r *Recorder) ghostOffset(i int) float64 {
	if r.ghostSkipFn != nil {
		return r.ghostSkipFn(i)
	}
	return float64(i) * r.ghostSkip
}

// DrawerData is implemented by shape data that controls how its
// first-level shape is recorded.
type DrawerData interface {
	// Visible reports whether the shape is recorded at all.
	Visible() bool
	// DisableGhost keeps the shape out of ghost layers.
	DisableGhost() bool
}

// drawerFlags reads the recording flags of a first-level shape. Besides
// DrawerData, map data with "visible" and "disableGhost" booleans is
// understood, as decoded from project files.
func drawerFlags(s *rosette.Shape) (visible, ghosted bool) {
	switch d := s.Data().(type) {
	case DrawerData:
		return d.Visible(), !d.DisableGhost()
	case map[string]any:
		visible = true
		if v, ok := d["visible"].(bool); ok {
			visible = v
		}
		noGhost, _ := d["disableGhost"].(bool)
		return visible, !noGhost
	}
	return true, true
}

func (r *Recorder) capture(scene *rosette.Scene, rec *Recording, time float64, ghost int) error {
	if err := scene.Update(time, nextToken()); err != nil {
		return fmt.Errorf("recording: update at %gms: %w", time, err)
	}

	fade := 1.0
	if ghost > 0 {
		fade = 1 - float64(ghost)/(float64(r.ghosts)+0.5)
	}
	warned := make(map[string]bool)
	paint := func(v rosette.Value) PaintRef {
		p, ok, err := PaintOf(v)
		if err != nil {
			if !warned[v.Str()] {
				warned[v.Str()] = true
				rosette.Logger().Warn("recording: color ignored", slog.String("color", v.Str()), slog.Any("error", err))
			}
			return NoPaint
		}
		if !ok {
			return NoPaint
		}
		return rec.palette.Add(p.Fade(fade))
	}

	emit := func(a *rosette.StreamArgs) {
		width := 0.0
		if a.LineWidth.IsNumber() {
			width = float64(a.LineWidth.Float()) * fade
		}
		rec.frames = append(rec.frames, Frame{
			Path:       PathFromFrame(a.Frame(), a.Shape.Closed()),
			Shape:      a.Shape.ID(),
			Name:       a.Shape.Name(),
			Index:      a.Index,
			Total:      a.Total,
			Repetition: a.Repetition,
			Fill:       paint(a.FillColor),
			Stroke:     paint(a.StrokeColor),
			LineWidth:  width,
			Ghost:      ghost,
		})
	}
	for _, child := range scene.Children() {
		visible, ghosted := drawerFlags(child)
		if !visible || (ghost > 0 && !ghosted) {
			continue
		}
		if err := child.Stream(emit); err != nil {
			return fmt.Errorf("recording: stream at %gms: %w", time, err)
		}
	}
	return nil
}

// Recording is an immutable capture of a scene at one time. It can be
// replayed to any Backend implementation, any number of times.
type Recording struct {
	width, height float64
	time          float64
	ghosts        int
	palette       *Palette
	bg            PaintRef
	frames        []Frame
}

// Width returns the width of the recorded scene.
func (r *Recording) Width() float64 { return r.width }

// Height returns the height of the recorded scene.
func (r *Recording) Height() float64 { return r.height }

// Time returns the recorded time in milliseconds.
func (r *Recording) Time() float64 { return r.time }

// Ghosts returns the number of ghost layers.
func (r *Recording) Ghosts() int { return r.ghosts }

// Frames returns the recorded frames in drawing order.
func (r *Recording) Frames() []Frame { return r.frames }

// Palette returns the paints referenced by the frames.
func (r *Recording) Palette() *Palette { return r.palette }

// Background returns the background paint, if any.
func (r *Recording) Background() (Paint, bool) { return r.palette.Get(r.bg) }

// Style resolves the paint references of f.
func (r *Recording) Style(f Frame) Style {
	s := Style{LineWidth: f.LineWidth, Ghost: f.Ghost}
	s.Fill, s.Filled = r.palette.Get(f.Fill)
	s.Stroke, s.Stroked = r.palette.Get(f.Stroke)
	return s
}

// Playback replays the recording to the given backend.
func (r *Recording) Playback(backend Backend) error {
	c := Canvas{Width: r.width, Height: r.height}
	c.Background, c.HasBackground = r.Background()
	if err := backend.Begin(c); err != nil {
		return fmt.Errorf("recording: begin: %w", err)
	}
	for i, f := range r.frames {
		if err := backend.DrawPath(f.Path, r.Style(f)); err != nil {
			return fmt.Errorf("recording: frame %d of shape %d: %w", i, f.Shape, err)
		}
	}
	if err := backend.End(); err != nil {
		return fmt.Errorf("recording: end: %w", err)
	}
	rosette.Logger().Info("recording: playback done", slog.Int("frames", len(r.frames)))
	return nil
}
