package analyzer

import "context"

// Phase names a step of the analysis pipeline.
type Phase string

const (
	PhaseRateLimit Phase = "rate-limit"
	PhaseMetadata  Phase = "metadata"
	PhaseLanguages Phase = "languages"
	PhaseFiles     Phase = "files"
	PhaseAssemble  Phase = "assemble"
)

// Observer receives progress events from [Analyzer.Analyze].
//
// OnFile may be called from several goroutines at once; implementations must
// be safe for concurrent use.
type Observer interface {
	// OnPhase is called when a phase starts.
	OnPhase(ctx context.Context, phase Phase, repo string)

	// OnFile is called once per candidate file that was fetched without error.
	OnFile(ctx context.Context, name string, found bool)

	// OnDone is called exactly once per run with a valid repository
	// reference, when the analysis finishes or fails.
	OnDone(ctx context.Context, repo string, err error)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) OnPhase(context.Context, Phase, string) {}
func (NoopObserver) OnFile(context.Context, string, bool)   {}
func (NoopObserver) OnDone(context.Context, string, error)  {}

var _ Observer = NoopObserver{}
