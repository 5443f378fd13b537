package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
)

func seedExport(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	f.addCharacter(t, "a", "Alice", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))
	f.addCharacter(t, "b", "Bob, Jr.", time.Date(1992, 6, 15, 0, 0, 0, 0, time.UTC))
	f.link(t, "a", "b", entities.RelationFriend, 55)
	require.NoError(t, f.db.AddTrait(t.Context(), "a", "shy"))
	require.NoError(t, f.db.LearnFact(t.Context(), "a", "secret"))
	require.NoError(t, f.db.LearnFact(t.Context(), "a", "rumor"))
	return f
}

func TestExportHandler_JSON(t *testing.T) {
	f := seedExport(t)

	var buf bytes.Buffer
	snap, err := NewExportHandler(f.db).HandleExport(t.Context(), &buf, FormatJSON)
	require.NoError(t, err)
	assert.Len(t, snap.Characters, 2)
	assert.Len(t, snap.Relationships, 2)

	var parsed struct {
		Characters []struct {
			ID     string   `json:"id"`
			Name   string   `json:"name"`
			Traits []string `json:"traits"`
			Facts  []string `json:"facts"`
		} `json:"characters"`
		Relationships []map[string]any `json:"relationships"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	require.Len(t, parsed.Characters, 2)
	assert.Equal(t, "a", parsed.Characters[0].ID)
	assert.Equal(t, []string{"shy"}, parsed.Characters[0].Traits)
	assert.ElementsMatch(t, []string{"secret", "rumor"}, parsed.Characters[0].Facts)
	assert.Equal(t, []string{}, parsed.Characters[1].Traits, "empty lists, not null")
	assert.Equal(t, "friend", parsed.Relationships[0]["type"])
}

func TestExportHandler_CSV(t *testing.T) {
	f := seedExport(t)

	var buf bytes.Buffer
	_, err := NewExportHandler(f.db).HandleExport(t.Context(), &buf, FormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,name,sex,birth_date,height,weight,muscle_mass,energy,traits,facts", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "a,Alice,female,1990-01-01,170,65,0,100,shy,"))
	assert.Contains(t, lines[2], `"Bob, Jr."`, "commas are quoted")
}

func TestExportHandler_RelationshipsCSV(t *testing.T) {
	f := seedExport(t)

	var buf bytes.Buffer
	_, err := NewExportHandler(f.db).HandleExport(t.Context(), &buf, FormatRelationshipsCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "source,target,type,value,first_interaction,last_interaction", lines[0])
	assert.Contains(t, lines, "a,b,friend,55,2020-01-01,2020-01-01")
}

func TestExportHandler_Errors(t *testing.T) {
	f := seedExport(t)
	h := NewExportHandler(f.db)

	_, err := h.HandleExport(t.Context(), &bytes.Buffer{}, "markdown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")

	f.db.Err = errors.New("disk on fire")
	_, err = h.HandleExport(t.Context(), &bytes.Buffer{}, FormatJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing characters")
}
