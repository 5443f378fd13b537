package entities

// BodyStatistics holds the Gaussian parameters used to sample body attributes.
type BodyStatistics struct {
	HeightMean   float64
	HeightStdDev float64
	TargetBMI    float64
	WeightStdDev float64
	FFMIMean     float64
}

// Attribute clamps.
const (
	MinHeight     = 100
	MaxHeight     = 220
	MinWeight     = 40
	MaxWeight     = 200
	MinMuscleMass = 15
	MaxMuscleMass = 40

	// FFMIStdDev is shared by every sex.
	FFMIStdDev = 1.5
	// SkeletalMuscleFraction is the share of fat-free mass counted as muscle.
	SkeletalMuscleFraction = 0.4
)

// SexStatistics is keyed by sex. Values not in the table use the SexOther row.
var SexStatistics = map[Sex]BodyStatistics{
	SexMale: {
		HeightMean:   175,
		HeightStdDev: 7,
		TargetBMI:    24.5,
		WeightStdDev: 12,
		FFMIMean:     20.5,
	},
	SexFemale: {
		HeightMean:   162,
		HeightStdDev: 6,
		TargetBMI:    23.5,
		WeightStdDev: 10,
		FFMIMean:     18.5,
	},
	SexOther: {
		HeightMean:   170,
		HeightStdDev: 6.5,
		TargetBMI:    24.0,
		WeightStdDev: 11,
		FFMIMean:     19.5,
	},
}

// StatisticsFor returns the body statistics for a sex.
func StatisticsFor(s Sex) BodyStatistics {
	if stats, ok := SexStatistics[s]; ok {
		return stats
	}
	return SexStatistics[SexOther]
}
