package lcg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSeedSequence(t *testing.T) {
	r := New(DefaultSeed)
	want := []int{20478, 30212, 11649, 10412, 22987, 13448, 19408, 21516, 25035, 15409}
	for i, w := range want {
		require.Equal(t, w, r.Next(), "value %d", i)
	}
}

func TestReproducible(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 1000; i++ {
		require.Equal(t, a.Next(), b.Next())
	}
}

func TestRange(t *testing.T) {
	r := New(DefaultSeed)
	for i := 0; i < 10000; i++ {
		v := r.Next()
		assert.GreaterOrEqual(t, v, 0)
		assert.LessOrEqual(t, v, 0x7fff)
	}
}

func TestReseed(t *testing.T) {
	r := New(DefaultSeed)
	first := r.Next()
	r.Next()
	r.Seed(DefaultSeed)
	require.Equal(t, first, r.Next())
}
