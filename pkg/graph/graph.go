package graph

import (
	"fmt"
	"time"

	"github.com/thermoscope/thermoscope/pkg/display"
	"github.com/thermoscope/thermoscope/pkg/framebuf"
	"github.com/thermoscope/thermoscope/pkg/rtos"
	"github.com/thermoscope/thermoscope/pkg/sensor"
)

const (
	maxHeight = 15 // vertical pixel range of the plot
	xAxisRow  = 15
	imageX    = 4
	imageY    = 4
)

// NewGraph returns the renderer runner: scroll the frame one column per
// filtered value and plot it in the rightmost column, axes redrawn every
// frame. The per-frame sleep is independent of the arrival rate, so
// render cadence and data cadence may drift; that is accepted behavior.
func NewGraph(input <-chan int, dev display.Device, interval time.Duration, task *rtos.Handle) func() error {
	buf := framebuf.New()
	return func() error {
		for value := range input {
			// map [15,35] degrees onto [0,15] pixels, truncating
			y := (value - sensor.MinTemperature) * maxHeight / sensor.Range
			if y < 0 {
				y = 0
			}
			if y > maxHeight {
				y = maxHeight
			}

			buf.ShiftLeft()
			// row 0 is the top, warmer draws higher
			buf.Set(framebuf.Width-1, maxHeight-y)

			for i := 0; i < framebuf.Rows; i++ {
				buf.Set(0, i)
			}
			for i := 0; i < framebuf.Width; i++ {
				buf.Set(i, xAxisRow)
			}

			dev.Clear()
			dev.DrawImage(buf.Bytes(), imageX, imageY, framebuf.Width, framebuf.Pages)
			dev.DrawText(fmt.Sprintf("T: %dC", value), imageX, imageY)
			task.Tally(1)

			time.Sleep(interval)
		}
		return nil
	}
}
