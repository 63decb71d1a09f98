package busy

import (
	"context"
	"runtime"

	"github.com/thermoscope/thermoscope/pkg/rtos"
)

const spin = 100000

// NewBusy returns a synthetic load runner: burn a fixed arithmetic spin,
// charge one work unit, yield, repeat. Exists so the CPU column of the
// task-stats report has a spread to show.
func NewBusy(ctx context.Context, task *rtos.Handle) func() error {
	return func() error {
		done := ctx.Done()
		x := 1
		for {
			select {
			case <-done:
				return nil
			default:
			}
			for i := 0; i < spin; i++ {
				x = x*7 + 13
			}
			task.Tally(1)
			runtime.Gosched()
		}
	}
}
