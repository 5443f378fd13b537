package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
)

func newEngine() *DialogueEngine {
	return NewDialogueEngine(NewConditionEvaluator(NewDefaultSpecialConditions(func() time.Time { return today })))
}

func complimentOption() entities.DialogueOption {
	return entities.DialogueOption{
		Name:  "compliment",
		Label: "Pay a compliment",
		SpokenTexts: []entities.GatedText{
			{Text: "You look fearless today.", Conditions: []entities.Condition{{ActorHasTrait: "shy"}}},
			{Text: "Nice shoes.", Conditions: []entities.Condition{{ActorHasTrait: "brave"}}},
			{Text: "Hello."},
		},
		Results: []entities.DialogueResult{
			{
				Conditions:                    []entities.Condition{{ActorRelationshipValue: cmpOf(entities.OpGreaterThan, 50)}},
				TargetRelationshipValueChange: intPtr(10),
			},
			{
				Conditions:                    []entities.Condition{{ActorRelationshipValue: cmpOf(entities.OpGreaterThan, 0)}},
				TargetRelationshipValueChange: intPtr(5),
				ActorLearnFact:                "likes_shoes",
				ActorTargetSpecialAction:      "become_friends",
				NextDialogueOptionNames:       []string{"ask_out", "leave"},
				ResultSpokenTexts: []entities.GatedText{
					{Text: "Thanks!"},
				},
				ResultNarrations: []entities.GatedText{
					{Text: "They blush.", Conditions: []entities.Condition{{ActorHasTrait: "shy"}}},
					{Text: "They smile."},
				},
			},
			{
				TargetRelationshipValueChange: intPtr(-5),
				EndsDialogue:                  true,
			},
		},
	}
}

func TestDialogueEngine_ResolveDialogueOption_FirstMatch(t *testing.T) {
	actor, target := newStates()
	option := complimentOption()

	outcome, err := newEngine().ResolveDialogueOption(&option, actor, target)
	require.NoError(t, err)

	assert.Equal(t, "compliment", outcome.OptionName)
	assert.Equal(t, "Nice shoes.", outcome.SpokenText)
	assert.True(t, outcome.ResultApplied)
	require.NotNil(t, outcome.RelationshipValueChange)
	assert.Equal(t, 5, *outcome.RelationshipValueChange)
	assert.Equal(t, "likes_shoes", outcome.LearnedFact)
	assert.Equal(t, "become_friends", outcome.SpecialAction)
	assert.Equal(t, []string{"ask_out", "leave"}, outcome.NextOptionNames)
	assert.False(t, outcome.EndsDialogue)
	assert.Equal(t, "Thanks!", outcome.ResultSpokenText)
	assert.Equal(t, "They smile.", outcome.ResultNarration)
}

func TestDialogueEngine_ResolveDialogueOption_FallsThroughToUngatedResult(t *testing.T) {
	_, target := newStates()
	stranger := entities.NewCharacterState(newCharacter("stranger", bornA), nil, nil, nil)
	option := complimentOption()

	outcome, err := newEngine().ResolveDialogueOption(&option, stranger, target)
	require.NoError(t, err)

	assert.Equal(t, "Hello.", outcome.SpokenText)
	assert.True(t, outcome.ResultApplied)
	assert.Equal(t, -5, *outcome.RelationshipValueChange)
	assert.True(t, outcome.EndsDialogue)
	assert.Empty(t, outcome.ResultNarration)
}

func TestDialogueEngine_ResolveDialogueOption_NoResultMatches(t *testing.T) {
	actor, target := newStates()
	option := entities.DialogueOption{
		Name: "insult",
		Results: []entities.DialogueResult{
			{Conditions: []entities.Condition{{ActorHasTrait: "rude"}}, TargetRelationshipValueChange: intPtr(-20)},
		},
	}

	outcome, err := newEngine().ResolveDialogueOption(&option, actor, target)
	require.NoError(t, err)

	assert.False(t, outcome.ResultApplied)
	assert.Nil(t, outcome.RelationshipValueChange)
	assert.Empty(t, outcome.SpokenText)
}

func TestDialogueEngine_ResolveDialogueOption_EmptyOption(t *testing.T) {
	actor, target := newStates()
	option := entities.DialogueOption{Name: "silence"}

	outcome, err := newEngine().ResolveDialogueOption(&option, actor, target)
	require.NoError(t, err)
	assert.False(t, outcome.ResultApplied)
}

func TestDialogueEngine_ResolveDialogueOption_DoesNotAliasContent(t *testing.T) {
	actor, target := newStates()
	option := complimentOption()

	outcome, err := newEngine().ResolveDialogueOption(&option, actor, target)
	require.NoError(t, err)

	*outcome.RelationshipValueChange = 99
	outcome.NextOptionNames[0] = "changed"
	assert.Equal(t, 5, *option.Results[1].TargetRelationshipValueChange)
	assert.Equal(t, "ask_out", option.Results[1].NextDialogueOptionNames[0])
}

func TestDialogueEngine_ResolveDialogueOption_PropagatesErrors(t *testing.T) {
	actor, target := newStates()
	option := entities.DialogueOption{
		Name: "odd",
		Results: []entities.DialogueResult{
			{Conditions: []entities.Condition{{ActorTargetSpecialCondition: &entities.SpecialCondition{Label: "nope"}}}},
		},
	}

	_, err := newEngine().ResolveDialogueOption(&option, actor, target)
	assert.ErrorIs(t, err, ErrUnknownSpecialCondition)
}

func TestDialogueEngine_IsOffered(t *testing.T) {
	actor, target := newStates()
	engine := newEngine()

	tests := []struct {
		name  string
		conds []entities.Condition
		want  bool
	}{
		{"no conditions", nil, true},
		{"all true", []entities.Condition{{ActorHasTrait: "brave"}, {ActorTargetSpecialCondition: &entities.SpecialCondition{Label: "target_is_adult"}}}, true},
		{"one false", []entities.Condition{{ActorHasTrait: "brave"}, {ActorHasTrait: "shy"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			option := entities.DialogueOption{Name: tt.name, Conditions: tt.conds}
			got, err := engine.IsOffered(&option, actor, target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDialogueEngine_AvailableOptions(t *testing.T) {
	actor, target := newStates()
	options := []entities.DialogueOption{
		{Name: "greet"},
		{Name: "flirt", Conditions: []entities.Condition{{ActorHasTrait: "charming"}}},
		{Name: "brag", Conditions: []entities.Condition{{ActorHasTrait: "brave"}}},
	}

	got, err := newEngine().AvailableOptions(options, actor, target)
	require.NoError(t, err)

	names := make([]string, len(got))
	for i := range got {
		names[i] = got[i].Name
	}
	assert.Equal(t, []string{"greet", "brag"}, names)
}

func TestDialogueEngine_ResolveExplorationAction(t *testing.T) {
	actor, _ := newStates()
	action := entities.ExplorationAction{
		Label:         "search_drawers",
		LocationName:  "home",
		RoomName:      "bedroom",
		NeededMinutes: 15,
		Results: []entities.ExplorationActionResult{
			{
				Conditions: []entities.Condition{{ActorEnergy: cmpOf(entities.OpLessThan, 20)}},
				ResultNarrations: []entities.GatedText{
					{Text: "You are too tired."},
				},
			},
			{
				AddMinutes:   true,
				EnergyChange: intPtr(-5),
				ResultNarrations: []entities.GatedText{
					{Text: "You notice a draft.", Conditions: []entities.Condition{{ActorTargetSpecialCondition: &entities.SpecialCondition{Label: "target_knows_actor"}}}},
					{Text: "You find an old letter."},
				},
			},
		},
	}

	outcome, err := newEngine().ResolveExplorationAction(&action, actor)
	require.NoError(t, err)

	assert.Equal(t, "search_drawers", outcome.Label)
	assert.True(t, outcome.ResultApplied)
	assert.Equal(t, "You find an old letter.", outcome.Narration)
	assert.Equal(t, 15, outcome.MinutesElapsed)
	require.NotNil(t, outcome.EnergyChange)
	assert.Equal(t, -5, *outcome.EnergyChange)
}

func TestDialogueEngine_ResolveExplorationAction_NoMinutes(t *testing.T) {
	actor, _ := newStates()
	action := entities.ExplorationAction{
		Label:         "look_around",
		NeededMinutes: 30,
		Results:       []entities.ExplorationActionResult{{}},
	}

	outcome, err := newEngine().ResolveExplorationAction(&action, actor)
	require.NoError(t, err)
	assert.True(t, outcome.ResultApplied)
	assert.Zero(t, outcome.MinutesElapsed)
	assert.Nil(t, outcome.EnergyChange)
}
