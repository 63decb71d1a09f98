package watchdog

import (
	"log/slog"
	"time"
)

// NewWatchdog reports when the input stream goes quiet for longer than
// the timeout, once per quiet period. The stream itself is left alone;
// starvation is observable, not acted on. Returns when the input closes.
func NewWatchdog[T any](timeout time.Duration, stalled func(timeout time.Duration), input <-chan T) func() error {
	return func() error {
		t := time.NewTicker(timeout)
		defer t.Stop()
		awake := true
		reported := false
		slog.Debug("watchdog started", "timeout", timeout, "module", "watchdog")
		for {
			select {
			case _, ok := <-input:
				if !ok {
					return nil
				}
				awake = true
				reported = false
			case <-t.C:
				if !awake && !reported {
					stalled(timeout)
					reported = true
				}
				awake = false
			}
		}
	}
}
