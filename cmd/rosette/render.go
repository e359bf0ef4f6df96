package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/gogpu/rosette"
	"github.com/gogpu/rosette/project"
	"github.com/gogpu/rosette/recording"
)

func newRenderCmd() *cobra.Command {
	var (
		opts   outputOptions
		output string
		at     float64
		watch  bool
	)
	cmd := &cobra.Command{
		Use:   "render <project>",
		Short: "Render a project at one time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if output == "" {
				output = strings.TrimSuffix(input, filepath.Ext(input)) + ".svg"
			}
			run := func() error { return renderFile(input, output, at, &opts) }

			if err := run(); err != nil {
				if !watch {
					return err
				}
				rosette.Logger().Error("rosette: render failed", slog.Any("error", err))
			}
			if !watch {
				return nil
			}
			rosette.Logger().Info("rosette: watching", slog.String("path", input))
			return watchFile(cmd.Context(), input, func() {
				if err := run(); err != nil {
					rosette.Logger().Error("rosette: render failed", slog.Any("error", err))
				}
			})
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <project>.svg)")
	cmd.Flags().Float64VarP(&at, "time", "t", 0, "scene time in milliseconds")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "render again whenever the project changes")
	return cmd
}

// renderFile renders the project at input to output at the given time.
func renderFile(input, output string, at float64, opts *outputOptions) error {
	p, err := project.Load(input)
	if err != nil {
		return err
	}
	name, err := opts.backendName(output)
	if err != nil {
		return err
	}
	return renderProject(p, output, name, at, opts)
}

func renderProject(p *project.Project, output, backendName string, at float64, opts *outputOptions) error {
	scene, err := p.Build()
	if err != nil {
		return err
	}
	ropts, err := opts.recorderOptions(p)
	if err != nil {
		return err
	}
	rec, err := recording.NewRecorder(ropts...).Record(scene, at)
	if err != nil {
		return err
	}
	backend, err := opts.newBackend(backendName)
	if err != nil {
		return err
	}
	fb, ok := backend.(recording.FileBackend)
	if !ok {
		return fmt.Errorf("backend %q cannot write files", backendName)
	}
	if err := rec.Playback(backend); err != nil {
		return err
	}
	if err := fb.SaveToFile(output); err != nil {
		return fmt.Errorf("save %s: %w", output, err)
	}
	rosette.Logger().Info("rosette: rendered",
		slog.String("output", output),
		slog.String("backend", backendName),
		slog.Float64("time", at),
		slog.Int("frames", len(rec.Frames())))
	return nil
}

// watchDebounce groups the burst of events an editor save produces.
const watchDebounce = 50 * time.Millisecond

// watchFile calls fn after every change of path until ctx is done. The
// parent directory is watched since editors often replace files instead
// of writing them in place.
func watchFile(ctx context.Context, path string, fn func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.After(watchDebounce)
			}
		case <-pending:
			pending = nil
			fn()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			rosette.Logger().Warn("rosette: watch error", slog.Any("error", err))
		}
	}
}
