package sensor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/thermoscope/thermoscope/pkg/lcg"
	"github.com/thermoscope/thermoscope/pkg/rtos"
)

func TestDeterministicReadings(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sim := rtos.NewSim()
	task := sim.NewTask("TempSensor", 96, 1)
	c, fn := TemperatureChannel(ctx, lcg.New(lcg.DefaultSeed), time.Millisecond, 10, task)
	go fn()

	want := []int{18, 29, 30, 32, 28, 23, 19, 27, 18, 31}
	for i, w := range want {
		select {
		case got := <-c:
			require.Equal(t, w, got, "reading %d", i)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for reading")
		}
	}
	require.GreaterOrEqual(t, task.RunTime(), uint64(len(want)))
}

func TestReadingsInDomain(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sim := rtos.NewSim()
	c, fn := TemperatureChannel(ctx, lcg.New(12345), time.Millisecond, 10, sim.NewTask("TempSensor", 96, 1))
	go fn()

	for i := 0; i < 100; i++ {
		v := <-c
		require.GreaterOrEqual(t, v, 15)
		require.LessOrEqual(t, v, 35)
	}
}

func TestChannelClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sim := rtos.NewSim()
	c, fn := TemperatureChannel(ctx, lcg.New(lcg.DefaultSeed), time.Millisecond, 10, sim.NewTask("TempSensor", 96, 1))

	errc := make(chan error, 1)
	go func() { errc <- fn() }()
	cancel()

	require.NoError(t, <-errc)
	for range c {
	}
}
