package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/songrank/internal/formatter"
	"github.com/desertthunder/songrank/internal/models"
	"github.com/desertthunder/songrank/internal/shared"
	"github.com/desertthunder/songrank/internal/tasks"
)

// ClassifiedError is returned by collection commands once the failure has been reported to the user.
type ClassifiedError struct {
	Outcome shared.Outcome
	Err     error
}

func (e *ClassifiedError) Error() string {
	if e.Outcome.Message != "" {
		return e.Outcome.Message
	}
	return e.Err.Error()
}

func (e *ClassifiedError) Unwrap() error { return e.Err }

func exportFlags() []cli.Flag {
	return []cli.Flag{
		configFlag(),
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (json, csv, md, text)",
			Value:   formatter.FormatJSON,
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
		},
	}
}

func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "playlist",
		Usage:     "Print every item of a public video playlist",
		ArgsUsage: "<playlist-id>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Flags:  exportFlags(),
		Action: r.Playlist,
	}
}

func albumCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "album",
		Usage:     "Print every track of a public album",
		ArgsUsage: "<album-url>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "url"},
		},
		Flags:  exportFlags(),
		Action: r.Album,
	}
}

// Playlist collects a playlist and writes it in the requested format.
func (r *Runner) Playlist(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.StringArg("id")
	if err := formatter.ValidateFormat(cmd.String("format")); err != nil {
		return err
	}

	config, err := r.loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}

	progress, done := r.logProgress()
	items, err := r.newCollector(config).Playlist(ctx, playlistID, progress)
	close(progress)
	<-done

	if err != nil {
		return r.reportFailure(err, "playlist ID is required")
	}

	return formatter.Export(r.output, cmd.String("format"), models.NewVideoCollection(playlistID, items), cmd.Bool("pretty"))
}

// Album collects an album and writes it in the requested format.
//
// The video platform key is not needed here, so config validation is skipped.
func (r *Runner) Album(ctx context.Context, cmd *cli.Command) error {
	albumURL := cmd.StringArg("url")
	if err := formatter.ValidateFormat(cmd.String("format")); err != nil {
		return err
	}

	config, err := r.loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	progress, done := r.logProgress()
	items, err := r.newCollector(config).Album(ctx, albumURL, progress)
	close(progress)
	<-done

	if err != nil {
		return r.reportFailure(err, "album URL is required")
	}

	return formatter.Export(r.output, cmd.String("format"), models.NewAlbumCollection(albumURL, items), cmd.Bool("pretty"))
}

// reportFailure logs the classified message for err and wraps it in a [ClassifiedError].
func (r *Runner) reportFailure(err error, missing string) error {
	outcome := shared.Classify(err)
	if outcome.Category == shared.MissingParameter {
		outcome.Message = missing
	}

	r.logger.Error(outcome.Message, "category", outcome.Category, "status", outcome.Status)
	return &ClassifiedError{Outcome: outcome, Err: err}
}

// logProgress drains engine progress updates into the logger until the returned channel is closed.
func (r *Runner) logProgress() (chan tasks.ProgressUpdate, <-chan struct{}) {
	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase.String(), "step", update.Step)
		}
	}()

	return progress, done
}

// configCommand manages the configuration file
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration file helpers",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write the default configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "path",
						Aliases: []string{"p"},
						Usage:   "Destination path",
						Value:   "config.toml",
					},
				},
				Action: r.ConfigInit,
			},
		},
	}
}

// ConfigInit writes the embedded example configuration to --path.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if err := shared.CreateConfigFile(path); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
	}

	r.logger.Info("config file created", "path", path)
	return r.writePlain("Wrote %s\nSet %s or youtube.api_key before running serve.\n", path, shared.EnvYouTubeAPIKey)
}
