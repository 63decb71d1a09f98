package thermoscope

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thermoscope/thermoscope/pkg/filter"
	"github.com/thermoscope/thermoscope/pkg/graph"
	"github.com/thermoscope/thermoscope/pkg/router"
	"github.com/thermoscope/thermoscope/pkg/rtos"
	"github.com/thermoscope/thermoscope/pkg/window"
	"golang.org/x/sync/errgroup"
)

type nullPort struct {
	mu  sync.Mutex
	out strings.Builder
}

func (p *nullPort) Avail() bool { return false }

func (p *nullPort) ReadByte() byte { return 0 }

func (p *nullPort) WriteByte(b byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out.WriteByte(b)
}

func (p *nullPort) WriteString(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out.WriteString(s)
}

type captureDevice struct {
	mu     sync.Mutex
	labels []string
}

func (d *captureDevice) Init(fast bool) error { return nil }

func (d *captureDevice) On() {}

func (d *captureDevice) Clear() {}

func (d *captureDevice) DrawImage(img []byte, x, y, width, pages int) {}

func (d *captureDevice) DrawText(s string, x, y int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.labels = append(d.labels, s)
}

// runPipeline pushes raw samples through filter, fan and graph the way
// the real wiring does, and returns the filtered stream plus the frame
// labels the renderer produced.
func runPipeline(t *testing.T, windowSize int, raw []int) ([]int, []string) {
	t.Helper()
	sim := rtos.NewSim()
	shared := window.NewShared(windowSize)
	port := &nullPort{}
	dev := &captureDevice{}

	var g errgroup.Group
	input := make(chan int)
	filteredCh, filterFn := filter.FilteredChannel(input, shared, port, 10, sim.NewTask("FilterTask", 96, 2))
	g.Go(filterFn)

	fan := router.NewFan[int]("filtered", filteredCh)
	tap := fan.Subscribe("test")
	g.Go(fan.Run)
	g.Go(graph.NewGraph(fan.Subscribe("graph"), dev, 0, sim.NewTask("GraphTask", 96, 3)))

	go func() {
		defer close(input)
		for _, v := range raw {
			input <- v
		}
	}()

	var filtered []int
	for v := range tap {
		filtered = append(filtered, v)
	}
	require.NoError(t, g.Wait())

	dev.mu.Lock()
	defer dev.mu.Unlock()
	return filtered, dev.labels
}

func TestEndToEndConstant(t *testing.T) {
	filtered, labels := runPipeline(t, 5, []int{20, 20, 20, 20, 20})
	require.Equal(t, []int{20, 20, 20, 20, 20}, filtered)
	require.Equal(t, []string{"T: 20C", "T: 20C", "T: 20C", "T: 20C", "T: 20C"}, labels)
}

func TestEndToEndRamp(t *testing.T) {
	filtered, labels := runPipeline(t, 3, []int{10, 20, 30})
	require.Equal(t, []int{10, 15, 20}, filtered)
	require.Equal(t, []string{"T: 10C", "T: 15C", "T: 20C"}, labels)
}
