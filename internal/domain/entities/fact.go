// Package entities contains core domain data structures.
package entities

// Fact is an atomic piece of knowledge a character can learn.
type Fact struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Trait is an atomic character attribute such as "shy" or "athletic".
type Trait struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// SearchText is the text embedded for semantic fact search.
func (f Fact) SearchText() string {
	if f.Description == "" {
		return f.Name
	}
	return f.Name + ": " + f.Description
}
