package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/songrank/internal/server"
	"github.com/desertthunder/songrank/internal/shared"
)

const shutdownTimeout = 10 * time.Second

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP service",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Usage:   "Listen address, overrides server.host & server.port",
			},
		},
		Action: r.Serve,
	}
}

// Serve starts the HTTP service and blocks until SIGINT/SIGTERM or ctx is done.
//
// A missing video platform key is fatal at startup.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	if addr := cmd.String("addr"); addr != "" {
		config.SetAddr(addr)
	}
	if err := config.Validate(); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", config.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", config.Addr(), err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return r.serve(ctx, ln, config)
}

// serve runs the service on ln until ctx is done, then drains in-flight requests.
func (r *Runner) serve(ctx context.Context, ln net.Listener, config *shared.Config) error {
	router := server.NewRouter(server.Opts{
		Collector:      r.newCollector(config),
		Logger:         r.logger,
		AllowedOrigins: config.Server.AllowedOrigins,
	})

	// Write timeout leaves room for a full pagination run.
	writeTimeout := 2 * time.Minute
	if t := config.UpstreamTimeout(); t > 0 {
		writeTimeout = max(writeTimeout, t*time.Duration(min(config.YouTube.MaxPages, 20)))
	}

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("listening", "addr", ln.Addr().String(), "routes", router.Routes())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	r.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
