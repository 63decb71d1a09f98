package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thermoscope/thermoscope/pkg/framebuf"
	"github.com/thermoscope/thermoscope/pkg/rtos"
)

type fakeDevice struct {
	frames []frame
}

type frame struct {
	img   []byte
	width int
	pages int
	label string
}

func (d *fakeDevice) Init(fast bool) error { return nil }

func (d *fakeDevice) On() {}

func (d *fakeDevice) Clear() {}

func (d *fakeDevice) DrawImage(img []byte, x, y, width, pages int) {
	d.frames = append(d.frames, frame{
		img:   append([]byte(nil), img...),
		width: width,
		pages: pages,
	})
}

func (d *fakeDevice) DrawText(s string, x, y int) {
	d.frames[len(d.frames)-1].label = s
}

func (f frame) at(x, y int) bool {
	return f.img[(y/8)*f.width+x]&(1<<(y%8)) != 0
}

// dataRow finds the single plotted bit in a column above the x axis. A
// blank column means the sample merged with the axis at row 15.
func (f frame) dataRow(t *testing.T, x int) int {
	t.Helper()
	row := 15
	for y := 0; y < f.pages*8-1; y++ {
		if f.at(x, y) {
			require.Equal(t, 15, row, "more than one data bit in column %d", x)
			row = y
		}
	}
	return row
}

func render(t *testing.T, values ...int) *fakeDevice {
	t.Helper()
	dev := &fakeDevice{}
	input := make(chan int)
	sim := rtos.NewSim()
	fn := NewGraph(input, dev, 0, sim.NewTask("GraphTask", 96, 3))

	errc := make(chan error, 1)
	go func() { errc <- fn() }()
	for _, v := range values {
		input <- v
	}
	close(input)
	require.NoError(t, <-errc)
	require.Len(t, dev.frames, len(values))
	return dev
}

func TestVerticalMapping(t *testing.T) {
	tests := []struct {
		value int
		row   int
	}{
		{15, 15}, // bottom
		{25, 8},  // (25-15)*15/20 = 7
		{35, 0},  // top
		{40, 0},  // clamps high
		{10, 15}, // clamps low
	}
	for _, tc := range tests {
		dev := render(t, tc.value)
		require.Equal(t, tc.row, dev.frames[0].dataRow(t, framebuf.Width-1), "value %d", tc.value)
	}
}

func TestAxesRedrawnEveryFrame(t *testing.T) {
	dev := render(t, 20, 25, 30)
	for i, f := range dev.frames {
		for y := 0; y < framebuf.Rows; y++ {
			require.True(t, f.at(0, y), "frame %d missing y axis at row %d", i, y)
		}
		for x := 0; x < framebuf.Width; x++ {
			require.True(t, f.at(x, 15), "frame %d missing x axis at column %d", i, x)
		}
	}
}

func TestScrolling(t *testing.T) {
	dev := render(t, 35, 15)
	last := dev.frames[1]
	// previous sample moved one column left
	require.Equal(t, 0, last.dataRow(t, framebuf.Width-2))
	require.Equal(t, 15, last.dataRow(t, framebuf.Width-1))
}

func TestLabel(t *testing.T) {
	dev := render(t, 27)
	require.Equal(t, "T: 27C", dev.frames[0].label)
	require.Equal(t, framebuf.Width, dev.frames[0].width)
	require.Equal(t, framebuf.Pages, dev.frames[0].pages)
}
