package clock

import (
	"math/rand"
	"time"
)

func Now() time.Time {
	return time.Now()
}

func Jitter() int {
	return rand.Intn(10)
}
