package mocks

// RandomSource is a scripted ports.RandomSource.
// IntN and Float64 replay their queues in order and fall back to the
// lowest legal value once a queue is exhausted.
type RandomSource struct {
	Ints   []int
	Floats []float64

	IntNCalls    int
	Float64Calls int
}

// IntN returns the next scripted integer, clamped into [lo, hi).
func (m *RandomSource) IntN(lo, hi int) int {
	m.IntNCalls++
	if hi <= lo {
		return lo
	}
	if len(m.Ints) == 0 {
		return lo
	}
	v := m.Ints[0]
	m.Ints = m.Ints[1:]
	return max(lo, min(hi-1, v))
}

// Float64 returns the next scripted float, or 1 when none are left.
func (m *RandomSource) Float64() float64 {
	m.Float64Calls++
	if len(m.Floats) == 0 {
		return 1
	}
	v := m.Floats[0]
	m.Floats = m.Floats[1:]
	return v
}
