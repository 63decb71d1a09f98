package stats

import (
	"gonum.org/v1/gonum/stat"
)

// Series is a fixed-length window over the most recent samples for
// slope and deviation statistics.
type Series struct {
	count  int
	values []float64
	x      []float64
}

func NewSeries(size int) *Series {
	x := make([]float64, size)
	for i := range x {
		x[i] = float64(i + 1)
	}
	return &Series{
		values: make([]float64, size),
		x:      x,
	}
}

func (s *Series) Add(value int) {
	s.values = append(s.values[1:], float64(value))
	if s.count < len(s.x) {
		s.count++
	}
}

// Full reports whether enough samples have arrived to cover the window.
func (s *Series) Full() bool {
	return s.count == len(s.x)
}

// Slope is the per-sample linear-regression beta over the window.
func (s *Series) Slope() float64 {
	_, beta := stat.LinearRegression(s.x, s.values, nil, false)
	return beta
}

func (s *Series) StdDev() float64 {
	return stat.StdDev(s.values, nil)
}
