package recording

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/rosette"
	"github.com/gogpu/rosette/primitive"
)

// squareScene returns a 600x600 scene with one 100x100 square centered on
// the scene.
func squareScene(t *testing.T, props rosette.Props) *rosette.Scene {
	t.Helper()
	all := rosette.Props{rosette.PropDistance: rosette.Literal(rosette.Num(0))}
	for k, v := range props {
		all[k] = v
	}
	sc := rosette.NewScene()
	require.NoError(t, sc.Add(rosette.NewShape(primitive.NewRect(), rosette.WithProps(all), rosette.WithName("square"))))
	return sc
}

func TestRecord(t *testing.T) {
	r, err := NewRecorder().Record(squareScene(t, nil), 0)
	require.NoError(t, err)

	assert.Equal(t, 600.0, r.Width())
	assert.Equal(t, 600.0, r.Height())
	require.Len(t, r.Frames(), 1)

	f := r.Frames()[0]
	assert.Equal(t, "square", f.Name)
	assert.Equal(t, 0, f.Ghost)
	assert.Equal(t, 1, f.Total)
	assert.True(t, f.Path.Closed())
	assert.Equal(t, []Point{{250, 250}, {350, 250}, {350, 350}, {250, 350}}, f.Path.Points())

	st := r.Style(f)
	assert.False(t, st.Filled)
	assert.True(t, st.Stroked)
	assert.Equal(t, "#ffffff", st.Stroke.CSS())
	assert.Equal(t, 1.0, st.LineWidth)

	bg, ok := r.Background()
	require.True(t, ok)
	assert.Equal(t, "#000000", bg.CSS())
}

func TestRecordStyle(t *testing.T) {
	sc := squareScene(t, rosette.Props{
		rosette.PropFillColor: rosette.Literal(rosette.Text("rgba(255,0,0,0.5)")),
	})
	r, err := NewRecorder(WithoutBackground()).Record(sc, 0)
	require.NoError(t, err)

	_, ok := r.Background()
	assert.False(t, ok)

	st := r.Style(r.Frames()[0])
	assert.True(t, st.Filled)
	assert.False(t, st.Stroked, "filled frames are not stroked by default")
	assert.Equal(t, 0.0, st.LineWidth)
	assert.Equal(t, "rgba(255,0,0,0.5)", st.Fill.CSS())
}

func TestRecordBadColor(t *testing.T) {
	sc := squareScene(t, rosette.Props{
		rosette.PropStrokeColor: rosette.Literal(rosette.Text("chartreuse-ish")),
	})
	r, err := NewRecorder().Record(sc, 0)
	require.NoError(t, err)
	assert.False(t, r.Style(r.Frames()[0]).Stroked)
}

func TestRecordGhosts(t *testing.T) {
	sc := squareScene(t, rosette.Props{
		rosette.PropTranslate: rosette.Dynamic(func(a *rosette.PropArgs) rosette.Value {
			return rosette.Vector(float32(a.Time/100), 0)
		}),
	})
	r, err := NewRecorder(WithGhosts(2, 100)).Record(sc, 300)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Ghosts())
	assert.Equal(t, 300.0, r.Time())
	assert.Equal(t, 300.0, sc.Time(), "scene left at the recorded time")

	frames := r.Frames()
	require.Len(t, frames, 3)
	for i, want := range []struct {
		ghost int
		x     float64
		fade  float64
	}{
		{2, 251, 0.2},
		{1, 252, 0.6},
		{0, 253, 1},
	} {
		f := frames[i]
		assert.Equal(t, want.ghost, f.Ghost)
		assert.InDelta(t, want.x, f.Path.Points()[0].X, 1e-3)
		st := r.Style(f)
		assert.InDelta(t, want.fade, st.Stroke.Alpha, 1e-6)
		assert.InDelta(t, want.fade, st.LineWidth, 1e-6)
	}
}

func TestRecordGhostSkipFunc(t *testing.T) {
	sc := squareScene(t, rosette.Props{
		rosette.PropTranslate: rosette.Dynamic(func(a *rosette.PropArgs) rosette.Value {
			return rosette.Vector(float32(a.Time/100), 0)
		}),
	})
	skip := func(ghost int) float64 { return float64(ghost*ghost) * 50 }
	r, err := NewRecorder(WithGhosts(2, 100), WithGhostSkipFunc(skip)).Record(sc, 300)
	require.NoError(t, err)

	frames := r.Frames()
	require.Len(t, frames, 3)
	for i, x := range []float64{251, 252.5, 253} {
		assert.InDelta(t, x, frames[i].Path.Points()[0].X, 1e-3, "frame %d", i)
	}
}

type drawerData struct{ visible, noGhost bool }

func (d drawerData) Visible() bool      { return d.visible }
func (d drawerData) DisableGhost() bool { return d.noGhost }

func TestRecordDrawerData(t *testing.T) {
	sc := rosette.NewScene()
	add := func(name string, data any) {
		props := rosette.Props{rosette.PropDistance: rosette.Literal(rosette.Num(0))}
		require.NoError(t, sc.Add(rosette.NewShape(primitive.NewRect(),
			rosette.WithProps(props), rosette.WithName(name), rosette.WithData(data))))
	}
	add("plain", nil)
	add("still", map[string]any{"disableGhost": true})
	add("hidden", map[string]any{"visible": false})
	add("custom", drawerData{visible: true, noGhost: true})
	add("custom-hidden", drawerData{visible: false})

	r, err := NewRecorder(WithGhosts(1, 10)).Record(sc, 100)
	require.NoError(t, err)

	var ghost, current []string
	for _, f := range r.Frames() {
		if f.Ghost > 0 {
			ghost = append(ghost, f.Name)
		} else {
			current = append(current, f.Name)
		}
	}
	assert.Equal(t, []string{"plain"}, ghost)
	assert.Equal(t, []string{"plain", "still", "custom"}, current)
}

func TestRecordNoScene(t *testing.T) {
	_, err := NewRecorder().Record(nil, 0)
	assert.ErrorIs(t, err, rosette.ErrNoScene)
}

func TestRecordPropError(t *testing.T) {
	boom := errors.New("boom")
	sc := squareScene(t, rosette.Props{
		rosette.PropLineWidth: rosette.Computed(func(*rosette.PropArgs) (rosette.Value, error) {
			return rosette.Value{}, boom
		}),
	})
	_, err := NewRecorder().Record(sc, 0)
	assert.ErrorIs(t, err, boom)
}

func TestPlayback(t *testing.T) {
	r, err := NewRecorder().Record(squareScene(t, nil), 0)
	require.NoError(t, err)

	b := newMockBackend("mock")
	require.NoError(t, r.Playback(b))
	assert.Equal(t, 1, b.beginCalls)
	assert.Equal(t, 1, b.endCalls)
	assert.Equal(t, 600.0, b.canvas.Width)
	assert.True(t, b.canvas.HasBackground)
	require.Len(t, b.paths, 1)
	assert.True(t, b.styles[0].Stroked)

	// A recording replays any number of times.
	require.NoError(t, r.Playback(b))
	assert.Equal(t, 2, b.beginCalls)
}

func TestPlaybackError(t *testing.T) {
	r, err := NewRecorder().Record(squareScene(t, nil), 0)
	require.NoError(t, err)

	boom := errors.New("disk full")
	b := newMockBackend("mock")
	b.failDraw = boom
	err = r.Playback(b)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, b.endCalls)
}
