package svc

import (
	"io"

	"github.com/google/uuid"
)

func globalID() string {
	return uuid.New().String() // want "uuid.New in domain package: use uuid.NewRandomFromReader over ports.RandomSource"
}

func globalString() string {
	return uuid.NewString() // want "uuid.NewString in domain package: use uuid.NewRandomFromReader over ports.RandomSource"
}

func seededID(r io.Reader) string {
	return uuid.Must(uuid.NewRandomFromReader(r)).String()
}
