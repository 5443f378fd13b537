package entities

import (
	"strings"
	"time"
)

// Sex is a character's biological sex.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

// SexLabels maps each sex to its display label.
var SexLabels = map[Sex]string{
	SexMale:   "Male",
	SexFemale: "Female",
	SexOther:  "Other",
}

// Label returns the display label, falling back to the Other label.
func (s Sex) Label() string {
	if label, ok := SexLabels[s]; ok {
		return label
	}
	return SexLabels[SexOther]
}

// ParseSex converts a case-insensitive name to a Sex.
// Anything unrecognized becomes SexOther.
func ParseSex(s string) Sex {
	switch Sex(strings.ToLower(strings.TrimSpace(s))) {
	case SexMale:
		return SexMale
	case SexFemale:
		return SexFemale
	default:
		return SexOther
	}
}

// Character is a simulated person. Body measurements are in centimeters and kilograms.
type Character struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	BirthDate  time.Time `json:"birth_date"`
	Sex        Sex       `json:"sex"`
	Height     int       `json:"height"`
	Weight     int       `json:"weight"`
	MuscleMass int       `json:"muscle_mass"`
	Energy     int       `json:"energy"`
	CreatedAt  time.Time `json:"created_at"`
}

// Energy bounds.
const (
	MinEnergy = 0
	MaxEnergy = 100
)

// AgeAt returns the character's age in whole years at the given date.
func (c *Character) AgeAt(now time.Time) int {
	years := now.Year() - c.BirthDate.Year()
	if now.Month() < c.BirthDate.Month() ||
		(now.Month() == c.BirthDate.Month() && now.Day() < c.BirthDate.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
