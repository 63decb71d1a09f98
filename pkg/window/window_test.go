package window

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSharedLoadStore(t *testing.T) {
	s := NewShared(Default)
	require.Equal(t, 5, s.Load())
	s.Store(42)
	require.Equal(t, 42, s.Load())
}

func TestDefaultBelowMin(t *testing.T) {
	// The startup default is deliberately outside the validated range.
	require.Less(t, Default, Min)
}
