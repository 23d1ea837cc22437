// Package cli implements the gh-analyzer command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ursisterbtw/gh-analyzer/internal/config"
	"github.com/ursisterbtw/gh-analyzer/pkg/buildinfo"
	"github.com/ursisterbtw/gh-analyzer/pkg/httputil"
	"github.com/ursisterbtw/gh-analyzer/pkg/integrations/github"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "gh-analyzer"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "gh-analyzer summarizes GitHub repositories",
		Long:         `gh-analyzer queries the GitHub API for a repository's metadata, language breakdown, and well-known root files, and writes a single JSON or YAML summary.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/gh-analyzer/config.toml)")

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.probeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Helpers
// =============================================================================

// loadConfig resolves configuration from file and environment.
// Flags are applied by each command on top of the result.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Source != "" {
		c.Logger.Debug("loaded config", "path", cfg.Source)
	}
	return cfg, nil
}

// newClient creates a GitHub client from the resolved configuration.
// Without a configured token it falls back to the gh CLI's credentials.
func (c *CLI) newClient(cfg *config.Config) (*github.Client, error) {
	resolveToken(cfg, c.Logger)
	return github.NewClient(cfg.Token, github.Options{
		BaseURL:   cfg.APIURL,
		UserAgent: buildinfo.UserAgent(),
		Limiter:   httputil.NewLimiter(cfg.MaxRPS),
		Logger:    c.Logger,
	})
}
