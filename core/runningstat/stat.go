// Package runningstat implements Knuth and Welford's method for computing the standard deviation.
package runningstat

import (
	"math"
)

// IntStat collects statistics of unsigned integer inputs, and allows computing min, max, mean, and variance.
// Algorithm comes from https://www.johndcook.com/blog/standard_deviation/ .
//
// IntStat is not thread-safe.
type IntStat struct {
	i    uint64
	n    uint64
	mask uint64
	min  uint64
	max  uint64
	m1   float64
	m2   float64
}

// Init initializes the instance and clears existing data.
// sampleInterval: how often to collect sample, will be adjusted to nearest power of two and truncated between 1 and 2^30.
func (s *IntStat) Init(sampleInterval int) {
	interval := uint64(1)
	for interval < uint64(sampleInterval) && interval < 1<<30 {
		interval <<= 1
	}
	*s = IntStat{
		mask: interval - 1,
		min:  math.MaxUint64,
	}
}

// Push adds an input.
func (s *IntStat) Push(x uint64) {
	s.min, s.max = min(s.min, x), max(s.max, x)
	s.i++
	if s.i&s.mask != 0 {
		return
	}

	s.n++
	v := float64(x)
	if s.n == 1 {
		s.m1 = v
		return
	}
	delta := v - s.m1
	s.m1 += delta / float64(s.n)
	s.m2 += delta * (v - s.m1)
}

// Read returns current counters as Snapshot.
func (s *IntStat) Read() Snapshot {
	return newSnapshot(s.i, s.n, s.m1, s.m2, s.i > 0, s.min, s.max)
}
