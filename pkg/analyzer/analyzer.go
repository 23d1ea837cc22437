package analyzer

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/ursisterbtw/gh-analyzer/pkg/errors"
	"github.com/ursisterbtw/gh-analyzer/pkg/integrations/github"
)

// DefaultConcurrency is the number of file fetches allowed in flight at once.
const DefaultConcurrency = 4

// API is the subset of the GitHub API an analysis needs.
// [*github.Client] implements it.
type API interface {
	RateLimit(ctx context.Context) (*github.RateLimitStatus, error)
	Repository(ctx context.Context, ref github.RepoRef) (github.RepoInfo, github.RepoStats, error)
	Languages(ctx context.Context, ref github.RepoRef) (github.Languages, error)
	FetchFile(ctx context.Context, ref github.RepoRef, name string) (string, bool, error)
}

// Options configures an [Analyzer].
type Options struct {
	// ExtraFiles are looked up in addition to DefaultFiles.
	ExtraFiles []string

	// Concurrency bounds parallel file fetches. Zero means
	// DefaultConcurrency; 1 fetches files one at a time in list order.
	Concurrency int

	// Logger receives progress logs. Nil means log.Default().
	Logger *log.Logger

	// Observer receives progress events. Nil means NoopObserver.
	Observer Observer
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Concurrency < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "concurrency must not be negative, got %d", o.Concurrency)
	}
	if o.Concurrency == 0 {
		o.Concurrency = DefaultConcurrency
	}
	for _, name := range o.ExtraFiles {
		if err := errors.ValidateFilename(name); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.Observer == nil {
		o.Observer = NoopObserver{}
	}
	return nil
}

// Analyzer produces repository summaries.
//
// The Analyzer holds no per-run state; one instance may serve concurrent
// calls to Analyze.
type Analyzer struct {
	api        API
	opts       Options
	candidates []string
}

// New creates an Analyzer that queries api.
func New(api API, opts Options) (*Analyzer, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return &Analyzer{
		api:        api,
		opts:       opts,
		candidates: Candidates(opts.ExtraFiles),
	}, nil
}

// Candidates returns the file names each analysis looks up.
func (a *Analyzer) Candidates() []string {
	return append([]string(nil), a.candidates...)
}

// Analyze summarizes the repository at path ("owner/name").
//
// The quota is checked once before anything else. Metadata and languages are
// required; candidate files are best effort. Any error aborts the run and no
// summary is returned.
func (a *Analyzer) Analyze(ctx context.Context, path string) (summary *Summary, err error) {
	ref, err := github.ParseRepoRef(path)
	if err != nil {
		return nil, err
	}
	repo := ref.String()
	logger := a.opts.Logger.With("repo", repo)
	start := time.Now()

	defer func() { a.opts.Observer.OnDone(ctx, repo, err) }()

	a.opts.Observer.OnPhase(ctx, PhaseRateLimit, repo)
	quota, err := a.api.RateLimit(ctx)
	if err != nil {
		return nil, err
	}
	if quota.Exhausted() {
		return nil, &errors.RateLimitedError{ResetAt: quota.Reset}
	}
	logger.Debug("rate limit ok", "remaining", quota.Remaining, "reset", quota.Reset.Format(time.TimeOnly))

	a.opts.Observer.OnPhase(ctx, PhaseMetadata, repo)
	info, stats, err := a.api.Repository(ctx, ref)
	if err != nil {
		return nil, err
	}

	a.opts.Observer.OnPhase(ctx, PhaseLanguages, repo)
	langs, err := a.api.Languages(ctx, ref)
	if err != nil {
		return nil, err
	}

	a.opts.Observer.OnPhase(ctx, PhaseFiles, repo)
	files, err := a.fetchFiles(ctx, ref)
	if err != nil {
		return nil, err
	}

	a.opts.Observer.OnPhase(ctx, PhaseAssemble, repo)
	summary = Assemble(info, stats, langs, files)

	logger.Info("analyzed repository",
		"stars", info.Stars,
		"languages", len(langs),
		"files", len(files),
		"duration", time.Since(start).Round(time.Millisecond))
	return summary, nil
}

func (a *Analyzer) fetchFiles(ctx context.Context, ref github.RepoRef) (map[string]string, error) {
	var (
		mu    sync.Mutex
		files = make(map[string]string)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Concurrency)
	for _, name := range a.candidates {
		g.Go(func() error {
			text, ok, err := a.api.FetchFile(gctx, ref, name)
			if err != nil {
				return err
			}
			a.opts.Observer.OnFile(ctx, name, ok)
			if !ok {
				a.opts.Logger.Debug("file not present", "repo", ref.String(), "file", name)
				return nil
			}
			mu.Lock()
			files[name] = text
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}
