package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/songrank/internal/services"
	"github.com/desertthunder/songrank/internal/shared"
	"github.com/desertthunder/songrank/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	lookupEnv  func(string) (string, bool)
	collector  tasks.Collector
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Config and Collector are normally built per command from the --config flag; setting them skips that step.
type RunnerOpts struct {
	Config     *shared.Config
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	LookupEnv  func(string) (string, bool)
	Collector  tasks.Collector
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.LookupEnv == nil {
		opts.LookupEnv = os.LookupEnv
	}

	return &Runner{
		config:     opts.Config,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		lookupEnv:  opts.LookupEnv,
		collector:  opts.Collector,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, playlistCommand, albumCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// loadConfig reads the config file when present, falls back to defaults otherwise, then applies the environment.
func (r *Runner) loadConfig(path string) (*shared.Config, error) {
	if r.config != nil {
		return r.config, nil
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat(path); err == nil {
		loaded, err := shared.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
		}
		config = loaded
	} else {
		r.logger.Debug("config file not found, using defaults", "path", path)
	}

	config.ApplyEnv(r.lookupEnv)
	shared.SetLogLevel(r.logger, shared.ParseLogLevel(config.Logging.Level))

	r.config = config
	return config, nil
}

// newCollector builds the upstream clients and the engine from config.
func (r *Runner) newCollector(config *shared.Config) tasks.Collector {
	if r.collector != nil {
		return r.collector
	}

	youtube := services.NewYouTubeService(services.YouTubeOpts{
		BaseURL:           config.YouTube.BaseURL,
		APIKey:            config.YouTube.APIKey,
		HTTPClient:        r.httpClient,
		RequestsPerSecond: config.YouTube.RequestsPerSecond,
	})
	bandcamp := services.NewBandcampService(r.httpClient, config.Bandcamp.UserAgent)

	r.logger.Debug("upstream clients ready", "playlists", youtube.Name(), "albums", bandcamp.Name())

	r.collector = tasks.NewCollectionEngine(tasks.EngineOpts{
		Playlists:   youtube,
		Albums:      bandcamp,
		MaxPages:    config.YouTube.MaxPages,
		CallTimeout: config.UpstreamTimeout(),
	})
	return r.collector
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
