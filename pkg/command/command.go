package command

import (
	"context"
	"log/slog"
	"time"

	"github.com/thermoscope/thermoscope/pkg/rtos"
	"github.com/thermoscope/thermoscope/pkg/serial"
	"github.com/thermoscope/thermoscope/pkg/window"
)

// inputBufferSize is the entry buffer, one byte reserved: at most nine
// accumulated digits.
const inputBufferSize = 10

// NewReader returns the operator-console runner. Digits accumulate an
// entry, CR or LF commits it, any other byte discards it; every byte is
// echoed as it arrives. Committed values in [10,100] retune the shared
// filter window. With no input pending the reader sleeps one poll
// interval instead of spinning.
func NewReader(ctx context.Context, port serial.Port, shared *window.Shared, poll time.Duration, task *rtos.Handle) func() error {
	return func() error {
		done := ctx.Done()
		buf := make([]byte, 0, inputBufferSize)
		for {
			if !port.Avail() {
				select {
				case <-done:
					return nil
				case <-time.After(poll):
				}
				continue
			}

			c := port.ReadByte()
			port.WriteByte(c) // local echo
			task.Tally(1)

			switch {
			case c >= '0' && c <= '9':
				if len(buf) < inputBufferSize-1 {
					buf = append(buf, c)
				} else {
					buf = buf[:0]
					port.WriteString("\nVery long entry. Try again.\r\n")
				}
			case c == '\r' || c == '\n':
				port.WriteString("\r\n")
				if len(buf) > 0 {
					if n := Atoi(string(buf)); n >= window.Min && n <= window.Max {
						shared.Store(n)
						slog.Debug("filter window retuned", "size", n, "module", "command")
						port.WriteString("\n Filter now N = " + string(buf) + "\r\n")
					} else {
						port.WriteString("\n Invalid N (10-100).\r\n")
					}
				} else {
					port.WriteString("\n Empty buffer.\r\n")
				}
				buf = buf[:0]
			default:
				buf = buf[:0]
				port.WriteString("\n Non numeric character.\r\n")
			}
		}
	}
}

// Atoi parses a digit-only string. An empty string or any non-digit
// byte yields -1. The committed-entry path only ever sees accumulated
// digits, so the sentinel is unreachable there.
func Atoi(s string) int {
	if s == "" {
		return -1
	}
	value := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return -1
		}
		value = value*10 + int(s[i]-'0')
	}
	return value
}
