// Package ports defines interfaces for external service communication.
package ports

// RandomSource is a seedable uniform random generator.
// Implementations are not required to be safe for concurrent use.
type RandomSource interface {
	// IntN returns a uniform integer in [lo, hi). It returns lo when hi <= lo.
	IntN(lo, hi int) int

	// Float64 returns a uniform value in (0, 1]. Zero is never returned.
	Float64() float64
}
