package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ursisterbtw/gh-analyzer/pkg/analyzer"
)

// Spinner provides a simple progress indicator with context cancellation support.
type Spinner struct {
	w       io.Writer
	message string
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	frames  []string
	started atomic.Bool
	mu      sync.Mutex
	width   int
}

// newSpinnerWithContext creates a spinner that will stop when the context is cancelled.
func newSpinnerWithContext(ctx context.Context, w io.Writer, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       w,
		message: message,
		ctx:     spinnerCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}
}

// Start begins the spinner animation. Calling Start more than once has no effect.
func (s *Spinner) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		i := 0
		for {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				frame := s.frames[i%len(s.frames)]
				s.mu.Lock()
				line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.message)
				s.width = max(s.width, len(s.message)+4)
				fmt.Fprintf(s.w, "\r%s", line)
				s.mu.Unlock()
				i++
			}
		}
	}()
}

// SetMessage replaces the text shown next to the spinner.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

// Stop stops the spinner and clears the line.
func (s *Spinner) Stop() {
	s.cancel()
	s.mu.Lock()
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	s.mu.Unlock()
	if s.started.Load() {
		<-s.stopped
	}
	s.clearLine()
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	width := max(s.width, len(s.message)+4)
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", width))
}

// StopWithSuccess stops the spinner and shows a success message.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and shows an error message.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled returns true if the spinner was stopped due to context cancellation.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

// =============================================================================
// Analysis Progress
// =============================================================================

// spinnerObserver shows analysis progress on a Spinner.
type spinnerObserver struct {
	spinner *Spinner
	total   int
	seen    atomic.Int32
	found   atomic.Int32
}

var _ analyzer.Observer = (*spinnerObserver)(nil)

// newSpinnerObserver starts a spinner that follows an analysis of total
// candidate files.
func newSpinnerObserver(ctx context.Context, w io.Writer, total int) *spinnerObserver {
	o := &spinnerObserver{
		spinner: newSpinnerWithContext(ctx, w, "Starting analysis..."),
		total:   total,
	}
	o.spinner.Start()
	return o
}

func (o *spinnerObserver) OnPhase(_ context.Context, phase analyzer.Phase, repo string) {
	o.spinner.SetMessage(phaseMessage(phase, repo))
}

func (o *spinnerObserver) OnFile(_ context.Context, _ string, found bool) {
	n := o.seen.Add(1)
	if found {
		o.found.Add(1)
	}
	o.spinner.SetMessage(fmt.Sprintf("Fetching files (%d/%d)...", n, o.total))
}

func (o *spinnerObserver) OnDone(_ context.Context, repo string, err error) {
	if err != nil {
		// The caller prints the error itself.
		if o.spinner.Cancelled() {
			o.spinner.Stop()
			return
		}
		o.spinner.StopWithError(fmt.Sprintf("Analysis of %s failed", repo))
		return
	}
	o.spinner.StopWithSuccess(fmt.Sprintf("Analyzed %s (%d of %d files found)", repo, o.found.Load(), o.total))
}

func phaseMessage(phase analyzer.Phase, repo string) string {
	switch phase {
	case analyzer.PhaseRateLimit:
		return "Checking rate limit..."
	case analyzer.PhaseMetadata:
		return "Fetching repository info for " + repo + "..."
	case analyzer.PhaseLanguages:
		return "Fetching languages..."
	case analyzer.PhaseFiles:
		return "Fetching files..."
	case analyzer.PhaseAssemble:
		return "Assembling summary..."
	}
	return string(phase) + "..."
}
