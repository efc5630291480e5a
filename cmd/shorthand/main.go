package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lucrnz/shorthand/internal/cleanup"
	"github.com/lucrnz/shorthand/internal/cli"
)

func main() {
	// Set up signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Temporary output files are removed if the run does not complete
	tracker := cleanup.NewTracker()

	err := cli.ExecuteContext(ctx, tracker)
	tracker.Cleanup()
	if err != nil {
		if ctx.Err() == context.Canceled {
			fmt.Fprintln(os.Stderr, "\nInterrupted")
			os.Exit(130) // Standard exit code for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
