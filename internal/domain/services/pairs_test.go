package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
	"github.com/ersonp/liferpg-core/internal/domain/mocks"
)

func makeCharacters(n int) []entities.Character {
	chars := make([]entities.Character, n)
	for i := range chars {
		chars[i] = newCharacter(fmt.Sprintf("c%02d", i), date(1990, 1, 1))
	}
	return chars
}

func TestPairs_YieldsEveryUnorderedPairOnce(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 7, 12} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			chars := makeCharacters(n)
			seen := make(map[[2]string]bool)

			for pair := range Pairs(newSeededRNG(uint64(n)), chars) {
				assert.NotEqual(t, pair.A.ID, pair.B.ID, "self pair")
				key := [2]string{pair.A.ID, pair.B.ID}
				assert.False(t, seen[key], "pair repeated: %v", key)
				assert.False(t, seen[[2]string{pair.B.ID, pair.A.ID}], "reverse pair repeated: %v", key)
				seen[key] = true
			}

			assert.Len(t, seen, n*(n-1)/2)
		})
	}
}

func TestPairs_KeepsInputOrderWithinPair(t *testing.T) {
	chars := makeCharacters(5)
	index := make(map[string]int, len(chars))
	for i, c := range chars {
		index[c.ID] = i
	}

	for pair := range Pairs(newSeededRNG(3), chars) {
		assert.Less(t, index[pair.A.ID], index[pair.B.ID])
	}
}

func TestPairs_OrderFollowsSortKeys(t *testing.T) {
	chars := makeCharacters(3)
	// Enumeration order is (0,1), (0,2), (1,2).
	rng := &mocks.RandomSource{Floats: []float64{0.9, 0.1, 0.5}}

	var got [][2]string
	for pair := range Pairs(rng, chars) {
		got = append(got, [2]string{pair.A.ID, pair.B.ID})
	}

	assert.Equal(t, [][2]string{{"c00", "c02"}, {"c01", "c02"}, {"c00", "c01"}}, got)
}

func TestPairs_DrawsFreshKeysPerRange(t *testing.T) {
	chars := makeCharacters(4)
	rng := &mocks.RandomSource{}
	seq := Pairs(rng, chars)

	for range seq {
	}
	for range seq {
	}

	assert.Equal(t, 12, rng.Float64Calls)
}

func TestPairs_StopsEarly(t *testing.T) {
	count := 0
	for range Pairs(newSeededRNG(1), makeCharacters(6)) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestPairsWhere_FiltersBeforeOrdering(t *testing.T) {
	chars := makeCharacters(4)
	rng := &mocks.RandomSource{}
	keep := func(a, b entities.Character) bool {
		return a.ID != "c00" && b.ID != "c00"
	}

	var got []Pair
	for pair := range PairsWhere(rng, chars, keep) {
		got = append(got, pair)
	}

	assert.Len(t, got, 3)
	assert.Equal(t, 3, rng.Float64Calls, "keys drawn only for kept pairs")
	for _, p := range got {
		assert.NotEqual(t, "c00", p.A.ID)
		assert.NotEqual(t, "c00", p.B.ID)
	}
}
