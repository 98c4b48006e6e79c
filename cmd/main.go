package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/songrank/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	runner := NewRunner(RunnerOpts{Logger: logger})

	app := &cli.Command{
		Name:     "songrank",
		Usage:    "Normalize public video playlists & albums into one item list",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		var classified *ClassifiedError
		if errors.As(err, &classified) {
			logger.Debug("request failed", "error", classified.Err)
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}
