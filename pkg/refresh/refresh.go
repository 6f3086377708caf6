// Package refresh re-runs a render on a fixed interval so day counts roll
// over at midnight without user input.
package refresh

import (
	"context"
	"time"
)

// DefaultInterval matches the countdown widget's one minute tick.
const DefaultInterval = time.Minute

// Run calls fn once immediately and then every interval until ctx is done.
// A non-positive interval uses DefaultInterval. An error from fn stops the
// loop and is returned; cancellation returns nil.
func Run(ctx context.Context, interval time.Duration, fn func(context.Context) error) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if err := fn(ctx); err != nil {
		return err
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if ctx.Err() != nil {
				return nil
			}
			if err := fn(ctx); err != nil {
				return err
			}
		}
	}
}
