package filter

import (
	"log/slog"

	"github.com/thermoscope/thermoscope/pkg/rtos"
	"github.com/thermoscope/thermoscope/pkg/serial"
	"github.com/thermoscope/thermoscope/pkg/swma"
	"github.com/thermoscope/thermoscope/pkg/window"
)

// FilteredChannel returns a bounded channel of moving-average values and
// the consumer runner. The shared window size is checked before every
// receive; an observed change resets the filter and takes effect at the
// next sample. The output channel closes when the input does.
func FilteredChannel(input <-chan int, shared *window.Shared, port serial.Port, queueSize int, task *rtos.Handle) (<-chan int, func() error) {
	c := make(chan int, queueSize)
	size := shared.Load()
	w := swma.New(size, window.Max)
	return c, func() error {
		defer close(c)
		for {
			if n := shared.Load(); n != size {
				size = n
				w.Resize(n)
				port.WriteString("\nFilter window size updated.\n")
			}

			raw, ok := <-input
			if !ok {
				return nil
			}

			filtered := w.Add(raw)
			slog.Debug("filtered sample", "raw", raw, "value", filtered, "module", "filter")
			c <- filtered
			task.Tally(1)
		}
	}
}
