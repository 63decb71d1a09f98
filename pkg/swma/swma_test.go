package swma

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPartialFill(t *testing.T) {
	w := New(3, 100)
	require.Equal(t, 10, w.Add(10)) // 10/1
	require.Equal(t, 15, w.Add(20)) // 30/2
	require.Equal(t, 20, w.Add(30)) // 60/3
}

func TestSteadyState(t *testing.T) {
	w := New(5, 100)
	for i := 0; i < 5; i++ {
		require.Equal(t, 20, w.Add(20))
	}
	require.Equal(t, 5, w.Fill())
	require.Equal(t, 100, w.Sum())
}

func TestEvictionAcrossWraparound(t *testing.T) {
	w := New(3, 100)
	w.Add(10)
	w.Add(20)
	w.Add(30)
	// 10 falls out of the window
	require.Equal(t, 30, w.Add(40)) // (20+30+40)/3
	require.Equal(t, 40, w.Add(50)) // (30+40+50)/3
	require.Equal(t, 90, w.Sum())
	require.Equal(t, 3, w.Fill())
}

func TestTruncatingDivision(t *testing.T) {
	w := New(2, 100)
	w.Add(10)
	require.Equal(t, 12, w.Add(15)) // 25/2 truncates
}

func TestResizeResets(t *testing.T) {
	w := New(5, 100)
	w.Add(20)
	w.Add(30)
	w.Resize(3)
	require.Equal(t, 3, w.Size())
	require.Equal(t, 0, w.Fill())
	require.Equal(t, 0, w.Sum())
	// average restarts from zero evidence
	require.Equal(t, 40, w.Add(40))
	require.Equal(t, 100, w.Capacity())
}

func TestResizeZeroesArena(t *testing.T) {
	w := New(2, 4)
	w.Add(100)
	w.Add(100)
	w.Resize(4)
	// evictions must not see stale samples
	require.Equal(t, 1, w.Add(1))
	require.Equal(t, 1, w.Add(1))
	require.Equal(t, 1, w.Add(1))
	require.Equal(t, 1, w.Add(1))
	require.Equal(t, 4, w.Sum())
}
