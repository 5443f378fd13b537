package entities

// GatedText is a piece of text offered only when its conditions hold.
type GatedText struct {
	Text       string      `json:"text" yaml:"text"`
	Conditions []Condition `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}

// DialogueOption is an authored line of conversation the actor can pick.
type DialogueOption struct {
	Name        string           `json:"name" yaml:"name"`
	Label       string           `json:"label" yaml:"label"`
	SpokenTexts []GatedText      `json:"spoken_texts,omitempty" yaml:"spoken_texts,omitempty"`
	Results     []DialogueResult `json:"results,omitempty" yaml:"results,omitempty"`
	Conditions  []Condition      `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}

// DialogueResult is one branch of a dialogue option. Results are ordered by priority.
type DialogueResult struct {
	TargetRelationshipValueChange *int        `json:"target_relationship_value_change,omitempty" yaml:"target_relationship_value_change,omitempty"`
	ActorLearnFact                string      `json:"actor_learn_fact,omitempty" yaml:"actor_learn_fact,omitempty"`
	ActorTargetSpecialAction      string      `json:"actor_target_special_action,omitempty" yaml:"actor_target_special_action,omitempty"`
	NextDialogueOptionNames       []string    `json:"next_dialogue_option_names,omitempty" yaml:"next_dialogue_option_names,omitempty"`
	EndsDialogue                  bool        `json:"ends_dialogue,omitempty" yaml:"ends_dialogue,omitempty"`
	ResultSpokenTexts             []GatedText `json:"result_spoken_texts,omitempty" yaml:"result_spoken_texts,omitempty"`
	ResultNarrations              []GatedText `json:"result_narrations,omitempty" yaml:"result_narrations,omitempty"`
	Conditions                    []Condition `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}

// ExplorationAction is something the actor can do in a room.
type ExplorationAction struct {
	Label         string                    `json:"label" yaml:"label"`
	LocationName  string                    `json:"location_name" yaml:"location_name"`
	RoomName      string                    `json:"room_name" yaml:"room_name"`
	NeededMinutes int                       `json:"needed_minutes" yaml:"needed_minutes"`
	Results       []ExplorationActionResult `json:"results,omitempty" yaml:"results,omitempty"`
}

// ExplorationActionResult is one branch of an exploration action.
type ExplorationActionResult struct {
	AddMinutes       bool        `json:"add_minutes,omitempty" yaml:"add_minutes,omitempty"`
	EnergyChange     *int        `json:"energy_change,omitempty" yaml:"energy_change,omitempty"`
	ResultNarrations []GatedText `json:"result_narrations,omitempty" yaml:"result_narrations,omitempty"`
	Conditions       []Condition `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}
