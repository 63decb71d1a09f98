package faults

import (
	"log/slog"

	"github.com/thermoscope/thermoscope/pkg/rtos"
	"github.com/thermoscope/thermoscope/pkg/serial"
)

// Sentinel is the single byte emitted when a task overflows its stack
// budget.
const Sentinel = byte('S')

// StopHandler returns the overflow callback: emit the sentinel, then
// halt forward progress for good. A corrupted stack makes every task
// untrustworthy, so there is no recovery path; the callback never
// returns and the scheduler's detector wedges with it.
func StopHandler(port serial.Port) rtos.OverflowHandler {
	return func(task *rtos.Handle) {
		port.WriteByte(Sentinel)
		slog.Error("stack overflow, halting", "task", task.Name(), "module", "faults")
		select {}
	}
}
