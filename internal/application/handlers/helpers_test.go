package handlers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
	"github.com/ersonp/liferpg-core/internal/domain/mocks"
	"github.com/ersonp/liferpg-core/internal/domain/services"
	"github.com/ersonp/liferpg-core/internal/infrastructure/content"
	"github.com/ersonp/liferpg-core/internal/infrastructure/random"
)

var today = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return today }

const testContent = `
traits: [{id: shy, name: Shy}]
facts:
  - {id: secret, name: Secret, description: The baker is a spy}
  - {id: rumor, name: Rumor}
dialogue_options:
  - name: greet
    label: Say hi
    spoken_texts: [{text: Hello.}]
    results:
      - target_relationship_value_change: 5
        next_dialogue_option_names: [gossip, flirt]
  - name: gossip
    label: Gossip
    conditions: [{actor_hasnt_learned_fact: secret}]
    results:
      - actor_learn_fact: secret
        ends_dialogue: true
        result_spoken_texts: [{text: Psst.}]
        conditions: [{target_relationship_value: {operator: ">=", value: 0}}]
  - name: flirt
    label: Flirt
    conditions: [{actor_relationship_value: {operator: ">=", value: 50}}]
    results:
      - actor_target_special_action: start_dating
        ends_dialogue: true
exploration_actions:
  - label: jog
    location_name: Town
    room_name: Park
    needed_minutes: 30
    results:
      - add_minutes: true
        energy_change: -150
        result_narrations: [{text: You collapse.}]
`

// fixture wires the domain services over an in-memory database.
type fixture struct {
	db         *mocks.RelationalDB
	defs       *content.Definitions
	characters *services.CharacterService
	social     *services.SocialGraphService
	game       *services.GameService
	engine     *services.DialogueEngine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	defs, err := content.YAMLDecoder{}.Decode(strings.NewReader(testContent))
	require.NoError(t, err)
	require.NoError(t, defs.Validate())

	db := mocks.NewRelationalDB()
	rng := random.New(7)

	actions := services.NewActionDispatcher()
	services.RegisterDefaultActions(actions, fixedNow)

	return &fixture{
		db:         db,
		defs:       defs,
		characters: services.NewCharacterService(db, rng, nil),
		social:     services.NewSocialGraphService(db, rng, services.DefaultSocialSettings(), nil),
		game:       services.NewGameService(db, actions, nil),
		engine: services.NewDialogueEngine(services.NewConditionEvaluator(
			services.NewDefaultSpecialConditions(fixedNow),
		)),
	}
}

func (f *fixture) addCharacter(t *testing.T, id, name string, born time.Time) entities.Character {
	t.Helper()
	c := entities.Character{
		ID:        id,
		Name:      name,
		BirthDate: born,
		Sex:       entities.SexFemale,
		Height:    170,
		Weight:    65,
		Energy:    entities.MaxEnergy,
	}
	require.NoError(t, f.db.SaveCharacter(context.Background(), &c))
	return c
}

func (f *fixture) link(t *testing.T, a, b string, relType entities.RelationType, value int) {
	t.Helper()
	for _, rel := range []entities.Relationship{
		{SourceCharacterID: a, TargetCharacterID: b, Type: relType, Value: value, FirstInteraction: today, LastInteraction: today},
		{SourceCharacterID: b, TargetCharacterID: a, Type: relType.Reciprocal(), Value: value, FirstInteraction: today, LastInteraction: today},
	} {
		require.NoError(t, f.db.SaveRelationship(context.Background(), &rel))
	}
}

func (f *fixture) dialogueHandler() *DialogueHandler {
	return NewDialogueHandler(f.characters, f.engine, f.game, f.defs, fixedNow)
}

func optionNames(opts []entities.DialogueOption) []string {
	names := make([]string, 0, len(opts))
	for _, o := range opts {
		names = append(names, o.Name)
	}
	return names
}
