package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/ursisterbtw/gh-analyzer/pkg/errors"
	"github.com/ursisterbtw/gh-analyzer/pkg/httputil"
	"github.com/ursisterbtw/gh-analyzer/pkg/integrations/github"
)

// probeCommand creates the probe command.
func (c *CLI) probeCommand() *cobra.Command {
	var (
		token    string
		interval time.Duration
		once     bool
	)

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Check GitHub API availability and quota",
		Long: `Query the rate limit endpoint repeatedly and report whether the API is
reachable. Failures are logged and retried after a fixed delay, forever,
until interrupted. Use --once for a single check with a meaningful exit code.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("token") {
				cfg.Token = token
			}
			if cmd.Flags().Changed("interval") {
				cfg.Probe.Interval.Duration = interval
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			client, err := c.newClient(cfg)
			if err != nil {
				return err
			}
			return runProbe(cmd.Context(), client, cfg.Probe.Interval.Duration, once)
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "GitHub token (default $GITHUB_TOKEN)")
	cmd.Flags().DurationVar(&interval, "interval", httputil.DefaultProbeInterval, "delay between checks")
	cmd.Flags().BoolVar(&once, "once", false, "run a single check and exit")

	return cmd
}

// quotaChecker is the part of the GitHub client the probe uses.
type quotaChecker interface {
	RateLimit(ctx context.Context) (*github.RateLimitStatus, error)
}

func runProbe(ctx context.Context, client quotaChecker, interval time.Duration, once bool) error {
	logger := loggerFromContext(ctx)

	check := func(ctx context.Context) error {
		status, err := client.RateLimit(ctx)
		if err != nil {
			return err
		}
		logger.Info("API is healthy",
			"remaining", status.Remaining,
			"reset", status.Reset.Local().Format(time.TimeOnly))
		if status.Exhausted() {
			logger.Warn("rate limit exhausted", "reset", status.Reset.Local().Format(time.TimeOnly))
		}
		return nil
	}

	if once {
		return check(ctx)
	}

	return httputil.Probe(ctx, interval, check, func(err error) {
		if err != nil {
			logger.Error("health check failed", "err", errors.UserMessage(err), "retry_in", interval)
		}
	})
}
