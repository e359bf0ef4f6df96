package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/rosette"
	"github.com/gogpu/rosette/project"
	"github.com/gogpu/rosette/recording"
	"github.com/gogpu/rosette/recording/backends/gcode"
	"github.com/gogpu/rosette/recording/backends/raster"
	"github.com/gogpu/rosette/recording/backends/svg"
)

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "rosette",
		Short:         "Render parametric vector scenes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			rosette.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log generation details")

	root.AddCommand(
		newRenderCmd(),
		newSequenceCmd(),
		newInfoCmd(),
		newBackendsCmd(),
	)
	return root
}

// outputOptions are the flags shared by render and sequence.
type outputOptions struct {
	backend  string
	ghosts   int
	skip     float64
	scale    float64
	decimals int
	plotter  gcode.Settings
	unit     string
}

func (o *outputOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	o.plotter = gcode.DefaultSettings()
	f.StringVarP(&o.backend, "backend", "b", "", "output backend (default: from the output extension)")
	f.IntVar(&o.ghosts, "ghosts", -1, "ghost layers (default: from the project)")
	f.Float64Var(&o.skip, "ghost-skip", 0, "milliseconds between ghost layers (default: from the project)")
	f.Float64Var(&o.scale, "scale", 1, "raster: pixels per scene unit")
	f.IntVar(&o.decimals, "decimals", 2, "svg: coordinate decimals")
	f.StringVar(&o.unit, "unit", "millimeters", "gcode: millimeters or inches")
	f.Float64Var(&o.plotter.MaxX, "max-x", o.plotter.MaxX, "gcode: workspace max x")
	f.Float64Var(&o.plotter.MaxY, "max-y", o.plotter.MaxY, "gcode: workspace max y")
	f.Float64Var(&o.plotter.Velocity, "velocity", o.plotter.Velocity, "gcode: drawing feed rate")
}

var extBackends = map[string]string{
	".svg":   "svg",
	".png":   "raster",
	".gcode": "gcode",
	".gc":    "gcode",
	".nc":    "gcode",
}

// backendName returns the backend to use for an output file.
func (o *outputOptions) backendName(output string) (string, error) {
	if o.backend != "" {
		return o.backend, nil
	}
	if name, ok := extBackends[strings.ToLower(filepath.Ext(output))]; ok {
		return name, nil
	}
	return "", fmt.Errorf("cannot infer a backend from %q, use --backend", output)
}

// newBackend creates a configured backend. Unknown names go through the
// registry so that externally registered backends work too.
func (o *outputOptions) newBackend(name string) (recording.Backend, error) {
	switch name {
	case "svg":
		return svg.NewBackend(svg.WithDecimals(o.decimals)), nil
	case "raster":
		return raster.NewBackend(raster.WithScale(o.scale)), nil
	case "gcode":
		s := o.plotter
		unit, err := gcode.ParseUnit(o.unit)
		if err != nil {
			return nil, err
		}
		s.Unit = unit
		return gcode.NewBackend(s), nil
	}
	return recording.NewBackend(name)
}

// recorderOptions merges the project ghost settings with the flags. A
// skip flag replaces any ghost skip function of the project.
func (o *outputOptions) recorderOptions(p *project.Project) ([]recording.RecorderOption, error) {
	q := *p
	if o.ghosts >= 0 {
		q.Ghosts = o.ghosts
	}
	if o.skip > 0 {
		q.GhostSkipTime = o.skip
		q.GhostSkipFunction = ""
	}
	return q.RecorderOptions()
}
