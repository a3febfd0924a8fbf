// Command shelf manages a small book catalog.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/roach88/shelf/internal/cli"
)

func main() {
	if err := mainImpl(); err != nil {
		if !cli.IsReported(err) && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "shelf: %v\n", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}

func mainImpl() error {
	// Create context that cancels on SIGTERM and SIGINT
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCommand().ExecuteContext(ctx)
}
