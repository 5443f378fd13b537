package services

import (
	"cmp"
	"iter"
	"slices"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
	"github.com/ersonp/liferpg-core/internal/domain/ports"
)

// Pair is an unordered pair of distinct characters. A precedes B in the input.
type Pair struct {
	A entities.Character
	B entities.Character
}

// Pairs returns every unordered pair of characters in random order.
// See PairsWhere.
func Pairs(rng ports.RandomSource, characters []entities.Character) iter.Seq[Pair] {
	return PairsWhere(rng, characters, nil)
}

// PairsWhere returns every unordered pair accepted by keep, in random order.
// A nil keep accepts all pairs.
//
// Sort keys are drawn each time the sequence is ranged over, so two ranges
// over the same sequence usually yield different orders.
func PairsWhere(rng ports.RandomSource, characters []entities.Character, keep func(a, b entities.Character) bool) iter.Seq[Pair] {
	return func(yield func(Pair) bool) {
		type keyed struct {
			pair Pair
			key  float64
		}

		n := len(characters)
		candidates := make([]keyed, 0, n*(n-1)/2)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				a, b := characters[i], characters[j]
				if keep != nil && !keep(a, b) {
					continue
				}
				candidates = append(candidates, keyed{pair: Pair{A: a, B: b}, key: rng.Float64()})
			}
		}

		slices.SortFunc(candidates, func(x, y keyed) int {
			return cmp.Compare(x.key, y.key)
		})

		for _, c := range candidates {
			if !yield(c.pair) {
				return
			}
		}
	}
}
