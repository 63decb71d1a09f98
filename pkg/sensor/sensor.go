package sensor

import (
	"context"
	"log/slog"
	"time"

	"github.com/thermoscope/thermoscope/pkg/lcg"
	"github.com/thermoscope/thermoscope/pkg/rtos"
)

// Synthetic reading domain, degrees C
const (
	MinTemperature = 15
	Range          = 20
)

// TemperatureChannel returns a bounded channel of synthetic readings and
// the producer runner. One reading per interval, in [15,35]; the send
// blocks when the channel is full. The channel closes when the context
// ends.
func TemperatureChannel(ctx context.Context, rng *lcg.Rand, interval time.Duration, queueSize int, task *rtos.Handle) (<-chan int, func() error) {
	c := make(chan int, queueSize)
	ctx, cancelFunc := context.WithCancel(ctx)
	return c, func() error {
		defer cancelFunc()
		defer close(c)
		done := ctx.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return nil
			case <-ticker.C:
				temperature := MinTemperature + rng.Next()%(Range+1)
				slog.Debug("publishing reading", "value", temperature, "module", "sensor")
				select {
				case c <- temperature:
					task.Tally(1)
				case <-done:
					return nil
				}
			}
		}
	}
}
