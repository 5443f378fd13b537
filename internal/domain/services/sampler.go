package services

import (
	"math"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
	"github.com/ersonp/liferpg-core/internal/domain/ports"
)

// AttributeSampler draws body attributes from sex-conditioned Gaussian distributions.
type AttributeSampler struct {
	rng ports.RandomSource
}

// NewAttributeSampler creates a new AttributeSampler.
func NewAttributeSampler(rng ports.RandomSource) *AttributeSampler {
	return &AttributeSampler{rng: rng}
}

// SampleHeight returns a height in centimeters within [MinHeight, MaxHeight].
func (s *AttributeSampler) SampleHeight(sex entities.Sex) int {
	stats := entities.StatisticsFor(sex)
	h := s.gaussian(stats.HeightMean, stats.HeightStdDev)
	return clampRound(h, entities.MinHeight, entities.MaxHeight)
}

// SampleWeight returns a weight in kilograms within [MinWeight, MaxWeight].
// The mean is the sex's target BMI applied to the given height.
func (s *AttributeSampler) SampleWeight(sex entities.Sex, height int) int {
	stats := entities.StatisticsFor(sex)
	mean := stats.TargetBMI * squaredMeters(height)
	w := s.gaussian(mean, stats.WeightStdDev)
	return clampRound(w, entities.MinWeight, entities.MaxWeight)
}

// SampleMuscleMass returns skeletal muscle mass in kilograms within
// [MinMuscleMass, MaxMuscleMass], derived from a sampled fat-free-mass index.
func (s *AttributeSampler) SampleMuscleMass(sex entities.Sex, height int) int {
	stats := entities.StatisticsFor(sex)
	ffmi := s.gaussian(stats.FFMIMean, entities.FFMIStdDev)
	lean := ffmi * squaredMeters(height) * entities.SkeletalMuscleFraction
	return clampRound(lean, entities.MinMuscleMass, entities.MaxMuscleMass)
}

// gaussian draws from N(mean, stdDev) with the Box-Muller transform.
// The random source never returns 0, so the logarithm is always defined.
func (s *AttributeSampler) gaussian(mean, stdDev float64) float64 {
	u1 := s.rng.Float64()
	u2 := s.rng.Float64()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + stdDev*z
}

func squaredMeters(heightCm int) float64 {
	m := float64(heightCm) / 100
	return m * m
}

func clampRound(v float64, lo, hi int) int {
	r := int(math.Round(v))
	return max(lo, min(hi, r))
}
