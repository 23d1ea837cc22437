package cli

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/ursisterbtw/gh-analyzer/internal/server"
	"github.com/ursisterbtw/gh-analyzer/pkg/analyzer"
)

// shutdownTimeout bounds graceful shutdown of the HTTP server.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		token string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve repository summaries over HTTP",
		Long: `Start an HTTP server exposing:

  GET /v1/repos/{owner}/{repo}/summary?files=a,b   repository summary as JSON
  GET /healthz                                     liveness

Every summary request checks the GitHub quota first, exactly like the
analyze command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Serve.Addr = addr
			}
			if cmd.Flags().Changed("token") {
				cfg.Token = token
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			client, err := c.newClient(cfg)
			if err != nil {
				return err
			}
			handler := server.New(client, analyzer.Options{
				ExtraFiles:  cfg.ExtraFiles,
				Concurrency: cfg.Concurrency,
			}, c.Logger)
			return runServer(cmd.Context(), cfg.Serve.Addr, handler)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&token, "token", "", "GitHub token (default $GITHUB_TOKEN)")

	return cmd
}

// runServer serves handler on addr until ctx is cancelled, then shuts down
// gracefully.
func runServer(ctx context.Context, addr string, handler http.Handler) error {
	logger := loggerFromContext(ctx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server stopped")
	return ctx.Err()
}
