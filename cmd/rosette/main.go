// Command rosette renders rosette project files to SVG, PNG or G-code.
//
// Usage:
//
//	rosette render flower.yaml -o flower.svg --time 1200 --ghosts 3
//	rosette render flower.yaml -o flower.png --scale 2 --watch
//	rosette sequence flower.yaml -o frames/ --ext png --jobs 8
//	rosette info flower.yaml
//	rosette backends
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "rosette:", err)
		stop()
		os.Exit(1)
	}
}
