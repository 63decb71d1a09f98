package diag

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/thermoscope/thermoscope/pkg/rtos"
	"github.com/thermoscope/thermoscope/pkg/serial"
	"github.com/thermoscope/thermoscope/pkg/stats"
)

// NewMonitorStack returns the watermark reporter runner: one stack
// high-water-mark line per pipeline task, every interval.
func NewMonitorStack(ctx context.Context, port serial.Port, interval time.Duration, tasks []*rtos.Handle, self *rtos.Handle) func() error {
	return func() error {
		done := ctx.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return nil
			case <-ticker.C:
				port.WriteString("\nStack High Water Marks:\n")
				for _, task := range tasks {
					port.WriteString(fmt.Sprintf("%s HWM: %d\n", task.Name(), task.HighWaterMark()))
				}
				self.Tally(1)
			}
		}
	}
}

// NewTop returns the system-load reporter runner: free heap plus one
// stats line per live task, every interval. The snapshot table grows
// when the task count does and never shrinks.
func NewTop(ctx context.Context, port serial.Port, interval time.Duration, sim *rtos.Sim, self *rtos.Handle) func() error {
	return func() error {
		var table []rtos.TaskStatus
		done := ctx.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return nil
			case <-ticker.C:
				port.WriteString(fmt.Sprintf("\nFree Heap: %d\n", sim.FreeHeap()))

				if n := sim.TaskCount(); n > len(table) {
					table = make([]rtos.TaskStatus, n)
				}
				n, total := sim.SystemState(table)

				port.WriteString("\nTask Stats:\n")
				for _, task := range table[:n] {
					var cpu uint64
					if total > 0 {
						cpu = task.RunTime * 100 / total
					}
					port.WriteString(fmt.Sprintf("Name: %-9s | CPU: %-3d%% | Stack Free: %d | State: %s\n",
						task.Name, cpu, task.HighWaterMark, task.State))
				}
				self.Tally(1)
			}
		}
	}
}

// NewSignalStats returns the filtered-signal statistics runner: slope
// and deviation of the recent window, logged every interval once the
// window has filled. Returns when the input closes.
func NewSignalStats(input <-chan int, size int, interval time.Duration) func() error {
	series := stats.NewSeries(size)
	return func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case v, ok := <-input:
				if !ok {
					return nil
				}
				series.Add(v)
			case <-ticker.C:
				if !series.Full() {
					continue
				}
				slog.Info("signal stats", "slope", fmt.Sprintf("%0.3f", series.Slope()), "stddev", fmt.Sprintf("%0.3f", series.StdDev()), "module", "diag")
			}
		}
	}
}
