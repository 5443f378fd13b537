package entities

// DialogueOutcome is the result of resolving a dialogue option.
// Empty strings mean "nothing selected" for the text fields.
type DialogueOutcome struct {
	OptionName string `json:"option_name"`
	SpokenText string `json:"spoken_text,omitempty"`

	// ResultApplied is false when no result's conditions held; nothing below applies then.
	ResultApplied           bool     `json:"result_applied"`
	ResultSpokenText        string   `json:"result_spoken_text,omitempty"`
	ResultNarration         string   `json:"result_narration,omitempty"`
	RelationshipValueChange *int     `json:"relationship_value_change,omitempty"`
	LearnedFact             string   `json:"learned_fact,omitempty"`
	SpecialAction           string   `json:"special_action,omitempty"`
	NextOptionNames         []string `json:"next_option_names,omitempty"`
	EndsDialogue            bool     `json:"ends_dialogue"`
}

// ExplorationOutcome is the result of resolving an exploration action.
type ExplorationOutcome struct {
	Label          string `json:"label"`
	ResultApplied  bool   `json:"result_applied"`
	Narration      string `json:"narration,omitempty"`
	MinutesElapsed int    `json:"minutes_elapsed"`
	EnergyChange   *int   `json:"energy_change,omitempty"`
}
