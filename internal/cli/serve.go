package cli

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/config"
	"github.com/matzehuels/chartkit/pkg/server"
	"github.com/matzehuels/chartkit/pkg/store"
)

// shutdownTimeout bounds how long in-flight requests may finish after an
// interrupt.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chart HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Server.Listen = listen
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (overrides server.listen)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg config.Config) error {
	c.Logger.SetFormatter(cfg.Log.Formatter())
	if lvl, err := cfg.Log.ParsedLevel(); err == nil && lvl < c.Logger.GetLevel() {
		c.Logger.SetLevel(lvl)
	}

	runner, err := c.newStoreRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts := server.Options{Runner: runner, Logger: c.Logger, MaxBodyBytes: cfg.Server.MaxBodyBytes}
	if reader, ok := runner.Store.(store.Reader); ok && cfg.Store.Backend != config.StoreS3 {
		signer, err := store.NewURLSigner(cfg.Signing.Secret, cfg.Signing.BaseURL)
		if err != nil {
			return err
		}
		opts.Reader, opts.Signer = reader, signer
	}

	srv := &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      server.New(opts).Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	c.Logger.Info("listening", "addr", cfg.Server.Listen, "store", cfg.Store.Backend, "cache", cfg.Cache.Backend)

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
