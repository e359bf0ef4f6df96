package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/rosette"
	"github.com/gogpu/rosette/project"
)

func newSequenceCmd() *cobra.Command {
	var (
		opts     outputOptions
		dir      string
		ext      string
		from, to int
		jobs     int
	)
	cmd := &cobra.Command{
		Use:   "sequence <project>",
		Short: "Render every frame of the project sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.Load(args[0])
			if err != nil {
				return err
			}
			name, err := opts.backendName("frame." + ext)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			last := p.Sequence.Frames()
			if to >= 0 && to < last {
				last = to
			}
			first := max(from, 0)
			if first >= last {
				return fmt.Errorf("empty frame range [%d, %d)", first, last)
			}

			// Scenes are not safe for concurrent use: every frame builds
			// its own.
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(max(jobs, 1))
			for i := first; i < last; i++ {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					out := filepath.Join(dir, fmt.Sprintf("frame-%05d.%s", i, ext))
					if err := renderProject(p, out, name, p.Sequence.FrameTime(i), &opts); err != nil {
						return fmt.Errorf("frame %d: %w", i, err)
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			rosette.Logger().Info("rosette: sequence rendered", slog.String("dir", dir), slog.Int("frames", last-first))
			fmt.Fprintf(cmd.OutOrStdout(), "%d frames written to %s\n", last-first, dir)
			return nil
		},
	}
	opts.register(cmd)
	f := cmd.Flags()
	f.StringVarP(&dir, "output", "o", "frames", "output directory")
	f.StringVar(&ext, "ext", "svg", "frame file extension (svg, png, gcode)")
	f.IntVar(&from, "from", 0, "first frame")
	f.IntVar(&to, "to", -1, "frame after the last one (default: end of the sequence)")
	f.IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "frames rendered in parallel")
	return cmd
}
