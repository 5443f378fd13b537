package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
	"github.com/ersonp/liferpg-core/internal/domain/mocks"
	"github.com/ersonp/liferpg-core/internal/domain/ports"
)

func seedPair(t *testing.T, db *mocks.RelationalDB, value int) {
	t.Helper()
	ctx := context.Background()
	a := newCharacter("a", bornA)
	b := newCharacter("b", bornB)
	require.NoError(t, db.SaveCharacter(ctx, &a))
	require.NoError(t, db.SaveCharacter(ctx, &b))
	for _, rel := range []entities.Relationship{
		{SourceCharacterID: "a", TargetCharacterID: "b", Type: entities.RelationFriend, Value: value, FirstInteraction: bornB, LastInteraction: bornB},
		{SourceCharacterID: "b", TargetCharacterID: "a", Type: entities.RelationFriend, Value: value, FirstInteraction: bornB, LastInteraction: bornB},
	} {
		require.NoError(t, db.SaveRelationship(ctx, &rel))
	}
}

func TestGameService_ApplyDialogueOutcome(t *testing.T) {
	ctx := context.Background()
	db := mocks.NewRelationalDB()
	seedPair(t, db, 95)

	d := NewActionDispatcher()
	var handled string
	d.Register("wink", func(_ context.Context, _ ports.RelationalDB, actorID, targetID string) error {
		handled = actorID + ">" + targetID
		return nil
	})

	svc := NewGameService(db, d, nil)
	err := svc.ApplyDialogueOutcome(ctx, "a", "b", entities.DialogueOutcome{
		OptionName:              "compliment",
		ResultApplied:           true,
		RelationshipValueChange: intPtr(10),
		LearnedFact:             "likes_shoes",
		SpecialAction:           "wink",
	}, today)
	require.NoError(t, err)

	ab := db.Relationships[[2]string{"a", "b"}]
	assert.Equal(t, entities.MaxRelationshipValue, ab.Value, "clamped")
	assert.Equal(t, today, ab.LastInteraction)
	assert.Equal(t, 95, db.Relationships[[2]string{"b", "a"}].Value, "reverse edge untouched")

	assert.True(t, db.Facts["a"]["likes_shoes"])
	assert.Equal(t, "a>b", handled)

	require.Len(t, db.Audit, 1)
	assert.Equal(t, ActionDialogue, db.Audit[0].Action)
	assert.Equal(t, 10, db.Audit[0].Details["relationship_change"])
}

func TestGameService_ApplyDialogueOutcome_FailedActionRollsBack(t *testing.T) {
	ctx := context.Background()
	db := mocks.NewRelationalDB()
	seedPair(t, db, 40)

	boom := errors.New("boom")
	d := NewActionDispatcher()
	d.Register("boom", func(ctx context.Context, tx ports.RelationalDB, actorID, _ string) error {
		if err := tx.AddTrait(ctx, actorID, "reckless"); err != nil {
			return err
		}
		return boom
	})

	outcome := entities.DialogueOutcome{
		OptionName:              "dare",
		ResultApplied:           true,
		RelationshipValueChange: intPtr(5),
		LearnedFact:             "mayor_secret",
		SpecialAction:           "boom",
	}
	svc := NewGameService(db, d, nil)

	for range 2 {
		err := svc.ApplyDialogueOutcome(ctx, "a", "b", outcome, today)
		require.ErrorIs(t, err, boom)
	}

	assert.Equal(t, 40, db.Relationships[[2]string{"a", "b"}].Value, "delta not kept")
	assert.Equal(t, bornB, db.Relationships[[2]string{"a", "b"}].LastInteraction)
	assert.Empty(t, db.Facts["a"])
	assert.Empty(t, db.Traits["a"])
	assert.Empty(t, db.Audit)
	assert.Equal(t, 2, db.Rollbacks)
}

func TestGameService_ApplyDialogueOutcome_CreatesAcquaintance(t *testing.T) {
	db := mocks.NewRelationalDB()
	svc := NewGameService(db, nil, nil)

	err := svc.ApplyDialogueOutcome(context.Background(), "a", "b", entities.DialogueOutcome{
		ResultApplied:           true,
		RelationshipValueChange: intPtr(-250),
	}, today)
	require.NoError(t, err)

	require.Len(t, db.Relationships, 2)
	for _, rel := range db.Relationships {
		assert.Equal(t, entities.RelationAcquaintance, rel.Type)
		assert.Equal(t, entities.MinRelationshipValue, rel.Value)
		assert.Equal(t, today, rel.FirstInteraction)
	}
}

func TestGameService_ApplyDialogueOutcome_NotApplied(t *testing.T) {
	db := mocks.NewRelationalDB()
	err := NewGameService(db, nil, nil).ApplyDialogueOutcome(context.Background(), "a", "b", entities.DialogueOutcome{
		RelationshipValueChange: intPtr(5),
	}, today)
	require.NoError(t, err)
	assert.Empty(t, db.Relationships)
	assert.Empty(t, db.Audit)
}

func TestGameService_ApplyDialogueOutcome_UnknownAction(t *testing.T) {
	db := mocks.NewRelationalDB()
	outcome := entities.DialogueOutcome{ResultApplied: true, SpecialAction: "teleport"}

	err := NewGameService(db, nil, nil).ApplyDialogueOutcome(context.Background(), "a", "b", outcome, today)
	assert.ErrorIs(t, err, ErrUnknownSpecialAction)

	err = NewGameService(db, NewActionDispatcher(), nil).ApplyDialogueOutcome(context.Background(), "a", "b", outcome, today)
	assert.ErrorIs(t, err, ErrUnknownSpecialAction)
}

func TestGameService_ApplyDialogueOutcome_DBError(t *testing.T) {
	db := mocks.NewRelationalDB()
	db.Err = errors.New("locked")

	err := NewGameService(db, nil, nil).ApplyDialogueOutcome(context.Background(), "a", "b", entities.DialogueOutcome{
		ResultApplied:           true,
		RelationshipValueChange: intPtr(1),
	}, today)
	assert.ErrorContains(t, err, "locked")
}

func TestGameService_ApplyExplorationOutcome(t *testing.T) {
	ctx := context.Background()
	db := mocks.NewRelationalDB()
	seedPair(t, db, 0)
	svc := NewGameService(db, nil, nil)

	tests := []struct {
		name   string
		change int
		want   int
	}{
		{"drain", -30, 70},
		{"drain past zero", -500, entities.MinEnergy},
		{"restore past max", 500, entities.MaxEnergy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db.Characters["a"].Energy = 100
			err := svc.ApplyExplorationOutcome(ctx, "a", entities.ExplorationOutcome{
				Label:          "jog",
				ResultApplied:  true,
				MinutesElapsed: 30,
				EnergyChange:   intPtr(tt.change),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, db.Characters["a"].Energy)
		})
	}

	assert.Len(t, db.Audit, 3)
	assert.Equal(t, ActionExploration, db.Audit[0].Action)
}

func TestGameService_ApplyExplorationOutcome_UnknownActor(t *testing.T) {
	err := NewGameService(mocks.NewRelationalDB(), nil, nil).ApplyExplorationOutcome(context.Background(), "ghost", entities.ExplorationOutcome{
		ResultApplied: true,
		EnergyChange:  intPtr(-1),
	})
	assert.ErrorIs(t, err, ErrCharacterNotFound)
}

func TestRegisterDefaultActions(t *testing.T) {
	ctx := context.Background()
	db := mocks.NewRelationalDB()
	seedPair(t, db, 60)

	d := NewActionDispatcher()
	RegisterDefaultActions(d, func() time.Time { return today })
	assert.Equal(t, []string{"become_friends", "break_up", "start_dating"}, d.Labels())

	require.NoError(t, d.HandleAction(ctx, db, "start_dating", "a", "b"))
	assert.Equal(t, entities.RelationRomanticPartner, db.Relationships[[2]string{"a", "b"}].Type)
	assert.Equal(t, entities.RelationRomanticPartner, db.Relationships[[2]string{"b", "a"}].Type)
	assert.Equal(t, 60, db.Relationships[[2]string{"a", "b"}].Value, "value kept")

	require.NoError(t, d.HandleAction(ctx, db, "become_friends", "a", "c"))
	assert.Equal(t, entities.RelationFriend, db.Relationships[[2]string{"c", "a"}].Type)
	assert.Equal(t, today, db.Relationships[[2]string{"c", "a"}].FirstInteraction)

	require.Len(t, db.Audit, 2)
	assert.Equal(t, ActionRetype, db.Audit[0].Action)
}
