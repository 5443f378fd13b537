package svc

import (
	"math/rand" // want "math/rand imported in domain package: use ports.RandomSource"
	"time"
)

type RandomSource interface {
	IntN(lo, hi int) int
}

func roll() int {
	return rand.Intn(6)
}

func born(now time.Time) time.Time {
	return now.AddDate(-20, 0, 0)
}

func stamp() time.Time {
	return time.Now() // want "time.Now in domain package: take the time as a parameter"
}

func pick(rng RandomSource) int {
	return rng.IntN(1, 6)
}
