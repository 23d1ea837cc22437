package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ursisterbtw/gh-analyzer/internal/config"
	"github.com/ursisterbtw/gh-analyzer/pkg/analyzer"
	"github.com/ursisterbtw/gh-analyzer/pkg/integrations/github"
	"github.com/ursisterbtw/gh-analyzer/pkg/output"
)

// analyzeOptions holds flags for the analyze command.
type analyzeOptions struct {
	token       string
	format      string
	extraFiles  []string
	output      string
	concurrency int
	maxRPS      float64
	timeout     time.Duration
	noProgress  bool
	quiet       bool
}

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze owner/name",
		Short: "Summarize a GitHub repository",
		Long: `Fetch a repository's metadata, language breakdown, and well-known root
files (README.md, LICENSE, go.mod, package.json, ...) and write them to a
single summary file.

The summary is written to <name>_summary.<format> unless --output is given.`,
		Example: `  gh-analyzer analyze pallets/flask
  gh-analyzer analyze golang/go --format yaml --extra-files SECURITY.md,CODEOWNERS
  GITHUB_TOKEN=ghp_xxx gh-analyzer analyze owner/private-repo -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts.apply(cmd, cfg)
			return c.runAnalyze(cmd.Context(), args[0], cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.token, "token", "", "GitHub token (default $GITHUB_TOKEN)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", config.DefaultFormat, "output format: json or yaml")
	cmd.Flags().StringSliceVar(&opts.extraFiles, "extra-files", nil, "additional root files to fetch (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, or - for stdout (default <name>_summary.<format>)")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", config.DefaultConcurrency, "parallel file fetches")
	cmd.Flags().Float64Var(&opts.maxRPS, "max-rps", 0, "limit API requests per second (0 = unlimited)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "abort the whole analysis after this long (0 = no limit)")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "disable the progress spinner")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the summary overview")

	return cmd
}

// apply merges flags that were set explicitly into cfg.
func (o *analyzeOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("token") {
		cfg.Token = o.token
	}
	if flags.Changed("format") {
		cfg.Format = o.format
	}
	if flags.Changed("extra-files") {
		cfg.ExtraFiles = append(cfg.ExtraFiles, o.extraFiles...)
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = o.concurrency
	}
	if flags.Changed("max-rps") {
		cfg.MaxRPS = o.maxRPS
	}
}

func (c *CLI) runAnalyze(ctx context.Context, repo string, cfg *config.Config, opts analyzeOptions) error {
	logger := loggerFromContext(ctx)

	// Validate everything before the first request.
	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	ref, err := github.ParseRepoRef(repo)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	client, err := c.newClient(cfg)
	if err != nil {
		return err
	}

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	toStdout := opts.output == "-"
	aopts := analyzer.Options{
		ExtraFiles:  cfg.ExtraFiles,
		Concurrency: cfg.Concurrency,
		Logger:      logger,
	}
	var obs *spinnerObserver
	if !opts.noProgress && !toStdout && isatty.IsTerminal(os.Stderr.Fd()) {
		obs = newSpinnerObserver(ctx, os.Stderr, len(analyzer.Candidates(cfg.ExtraFiles)))
		aopts.Observer = obs
	}
	a, err := analyzer.New(client, aopts)
	if err != nil {
		if obs != nil {
			obs.spinner.Stop()
		}
		return err
	}

	prog := newProgress(logger)
	summary, err := a.Analyze(ctx, ref.String())
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Analyzed %s", ref))

	if toStdout {
		return output.Write(os.Stdout, summary, format)
	}

	path := opts.output
	if path == "" {
		path = output.DefaultPath(summary, format)
	}
	if err := output.Export(summary, format, path); err != nil {
		return err
	}

	if !opts.quiet {
		printSummary(summary)
	}
	printSuccess("Summary saved to %s", path)
	return nil
}
