package httputil

import (
	"context"
	"time"
)

// DefaultProbeInterval is the fixed delay between liveness checks.
const DefaultProbeInterval = 5 * time.Second

// Probe runs check immediately and then every interval until ctx is done.
// The outcome of each check (nil on success) is passed to report. A failing
// check does not stop the loop and does not change the delay.
// Probe always returns ctx.Err().
func Probe(ctx context.Context, interval time.Duration, check func(context.Context) error, report func(error)) error {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	for {
		err := check(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if report != nil {
			report(err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}
