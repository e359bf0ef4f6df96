// Package recording captures the frames streamed by a rosette scene and
// replays them to export backends.
//
// # Architecture
//
// The package follows a record-then-playback design:
//
//   - Recorder: generates a scene at a time and captures every frame
//   - Recording: an immutable list of frames plus the paints they use
//   - Backend: renders frames to a specific output format
//
// A frame is one repetition of one leaf shape: a polyline (closed or open)
// with the fill, stroke and line width resolved while streaming.
//
// # Basic Usage
//
//	rec := recording.NewRecorder(recording.WithGhosts(3, 30))
//	r, err := rec.Record(scene, 1200)
//	if err != nil {
//	    return err
//	}
//
//	backend, _ := recording.NewBackend("svg")
//	if err := r.Playback(backend); err != nil {
//	    return err
//	}
//	backend.(recording.FileBackend).SaveToFile("out.svg")
//
// # Backend Registration
//
// Backends register themselves in init, following the database/sql driver
// pattern. Import a backend package with a blank identifier to make it
// available by name:
//
//	import (
//	    _ "github.com/gogpu/rosette/recording/backends/gcode"
//	    _ "github.com/gogpu/rosette/recording/backends/raster"
//	    _ "github.com/gogpu/rosette/recording/backends/svg"
//	)
//
// # Ghosts
//
// A recording can carry ghost layers: the same scene generated at earlier
// times, drawn below the current frame with faded paints and thinner
// lines. Ghost i of n is taken at time - i*skip with an opacity factor of
// 1 - i/(n+0.5). Backends that cannot fade (G-code) skip ghost frames.
//
// # Colors
//
// Colors are CSS-like strings: "#rgb", "#rrggbb", "#rrggbbaa", "rgb()",
// "rgba()", "hsl()", "hsla()", a few named colors, "none" and
// "transparent". Parsing goes through go-colorful.
package recording
