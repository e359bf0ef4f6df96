package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/rosette/primitive"
	"github.com/gogpu/rosette/project"
	"github.com/gogpu/rosette/recording"
)

func newInfoCmd() *cobra.Command {
	var at float64
	cmd := &cobra.Command{
		Use:   "info <project>",
		Short: "Describe a project and the geometry it generates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.Load(args[0])
			if err != nil {
				return err
			}
			scene, err := p.Build()
			if err != nil {
				return err
			}
			rec, err := recording.NewRecorder().Record(scene, at)
			if err != nil {
				return err
			}

			vertices := 0
			for _, f := range rec.Frames() {
				vertices += f.Path.Len()
			}
			b := scene.Bounding()
			stats := primitive.CacheStats()

			pr := message.NewPrinter(language.English)
			w := cmd.OutOrStdout()
			pr.Fprintf(w, "name:      %s\n", p.Name)
			pr.Fprintf(w, "size:      %v x %v\n", p.Width, p.Height)
			pr.Fprintf(w, "sequence:  %d frames (%vms @ %vfps)\n", p.Sequence.Frames(), p.Sequence.Duration, p.Sequence.Framerate)
			pr.Fprintf(w, "shapes:    %d (%d first level)\n", scene.Len(), len(scene.Children()))
			pr.Fprintf(w, "frames:    %d\n", len(rec.Frames()))
			pr.Fprintf(w, "vertices:  %d\n", vertices)
			pr.Fprintf(w, "paints:    %d\n", rec.Palette().Len())
			if b.IsEmpty() {
				pr.Fprintf(w, "bounds:    empty\n")
			} else {
				pr.Fprintf(w, "bounds:    %.2f, %.2f  %.2f x %.2f\n", b.X, b.Y, b.Width, b.Height)
			}
			pr.Fprintf(w, "cache:     %d entries, %d hits, %d misses\n", stats.Len, stats.Hits, stats.Misses)
			return nil
		},
	}
	cmd.Flags().Float64VarP(&at, "time", "t", 0, "scene time in milliseconds")
	return cmd
}

func newBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List the available output backends",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range recording.Backends() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
