package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRelationTables(t *testing.T) {
	require.NoError(t, ValidateRelationTables())
}

func TestRelationType_Reciprocal(t *testing.T) {
	tests := []struct {
		in   RelationType
		want RelationType
	}{
		{RelationParent, RelationChild},
		{RelationChild, RelationParent},
		{RelationGrandparent, RelationGrandchild},
		{RelationGrandchild, RelationGrandparent},
		{RelationSibling, RelationSibling},
		{RelationFriend, RelationFriend},
		{RelationSpouse, RelationSpouse},
		{RelationType("nemesis"), RelationType("nemesis")},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Reciprocal())
		})
	}
}

func TestRelationType_ReciprocalIsInvolution(t *testing.T) {
	for _, rt := range AllRelationTypes {
		assert.Equal(t, rt, rt.Reciprocal().Reciprocal(), rt)
	}
}

func TestRelationType_ValueRange(t *testing.T) {
	tests := []struct {
		in   RelationType
		want ValueRange
	}{
		{RelationParent, ValueRange{-100, 100}},
		{RelationSibling, ValueRange{-100, 100}},
		{RelationFriend, ValueRange{40, 100}},
		{RelationEnemy, ValueRange{-100, -40}},
		{RelationCasualRomanticPartner, ValueRange{-100, 100}},
		{RelationSpouse, ValueRange{-100, 100}},
		{RelationAcquaintance, DefaultValueRange},
		{RelationColleague, DefaultValueRange},
		{RelationType("unknown"), ValueRange{-39, 40}},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.ValueRange())
		})
	}
}

func TestRelationType_Classification(t *testing.T) {
	assert.True(t, RelationGrandchild.IsKinship())
	assert.False(t, RelationFriend.IsKinship())
	assert.True(t, RelationSpouse.IsRomantic())
	assert.False(t, RelationSibling.IsRomantic())
}

func TestParseRelationType(t *testing.T) {
	rt, err := ParseRelationType("romantic_partner")
	require.NoError(t, err)
	assert.Equal(t, RelationRomanticPartner, rt)
	assert.Equal(t, "Romantic partner", rt.Label())

	_, err = ParseRelationType("rival")
	assert.Error(t, err)
	assert.Equal(t, "rival", RelationType("rival").Label())
}

func TestClampRelationshipValue(t *testing.T) {
	assert.Equal(t, -100, ClampRelationshipValue(-101))
	assert.Equal(t, 100, ClampRelationshipValue(300))
	assert.Equal(t, 7, ClampRelationshipValue(7))
}
