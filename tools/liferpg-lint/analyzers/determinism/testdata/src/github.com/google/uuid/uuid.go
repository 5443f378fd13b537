package uuid

import "io"

type UUID [16]byte

func New() UUID { return UUID{} }

func NewString() string { return "" }

func NewRandom() (UUID, error) { return UUID{}, nil }

func NewV7() (UUID, error) { return UUID{}, nil }

func NewRandomFromReader(r io.Reader) (UUID, error) {
	var u UUID
	_, err := io.ReadFull(r, u[:])
	return u, err
}

func Must(u UUID, err error) UUID {
	if err != nil {
		panic(err)
	}
	return u
}

func (u UUID) String() string { return "" }
