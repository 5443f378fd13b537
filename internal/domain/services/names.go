package services

import "github.com/ersonp/liferpg-core/internal/domain/entities"

// First names by sex. SexOther draws from both lists.
var maleFirstNames = []string{
	"James", "Lucas", "Mateo", "Kenji", "Arjun", "Omar", "Kofi", "Theo",
	"Liam", "Noah", "Ravi", "Diego", "Jabari", "Hiroshi", "Elias", "Samuel",
	"Tariq", "Marcus", "Felix", "Adrian",
}

var femaleFirstNames = []string{
	"Emma", "Sofia", "Amara", "Mei", "Priya", "Layla", "Lucia", "Nia",
	"Chloe", "Hana", "Zara", "Camila", "Imani", "Yuki", "Clara", "Leila",
	"Anaya", "Elena", "Isla", "Maya",
}

var surnames = []string{
	"Martin", "Bernard", "Dubois", "Garcia", "Okafor", "Tanaka", "Patel",
	"Haddad", "Silva", "Nguyen", "Kowalski", "Mensah", "Rossi", "Fischer",
	"Moreau", "Larsen", "Khan", "Ibrahim", "Lopez", "Sato",
}

// sexWeights is the relative chance of each sex for generated characters.
var sexWeights = []struct {
	sex    entities.Sex
	weight int
}{
	{entities.SexMale, 48},
	{entities.SexFemale, 48},
	{entities.SexOther, 4},
}
