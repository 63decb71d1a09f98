package window

import "sync/atomic"

const (
	// Min and Max bound operator-supplied window sizes.
	Min = 10
	Max = 100

	// Default is the startup window size. It sits below Min, so once an
	// operator retunes the filter it can never be set back; kept rather
	// than raised to preserve the historical startup behavior.
	Default = 5
)

// Shared is the filter window size, written by the command reader and
// read by the filter once per sample. Single writer, single reader; the
// reader may observe an update one sample late.
type Shared struct {
	size atomic.Int32
}

func NewShared(size int) *Shared {
	s := &Shared{}
	s.size.Store(int32(size))
	return s
}

func (s *Shared) Load() int {
	return int(s.size.Load())
}

func (s *Shared) Store(size int) {
	s.size.Store(int32(size))
}
