package handlers

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
	"github.com/ersonp/liferpg-core/internal/domain/ports"
)

// Export formats.
const (
	FormatJSON             = "json"
	FormatCSV              = "csv"
	FormatRelationshipsCSV = "relationships-csv"
)

// ExportFormats lists the supported export formats.
var ExportFormats = []string{FormatJSON, FormatCSV, FormatRelationshipsCSV}

// ExportHandler writes a snapshot of a save.
type ExportHandler struct {
	relationalDB ports.RelationalDB
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(relationalDB ports.RelationalDB) *ExportHandler {
	return &ExportHandler{relationalDB: relationalDB}
}

// CharacterExport is a character with its traits and learned facts.
type CharacterExport struct {
	entities.Character
	Traits []string `json:"traits"`
	Facts  []string `json:"facts"`
}

// Snapshot is the exported state of a save.
type Snapshot struct {
	Characters    []CharacterExport       `json:"characters"`
	Relationships []entities.Relationship `json:"relationships"`
}

// HandleSnapshot reads the whole save.
func (h *ExportHandler) HandleSnapshot(ctx context.Context) (snap *Snapshot, err error) {
	ctx, span := startSpan(ctx, "export.snapshot")
	defer func() { endSpan(span, err) }()

	chars, err := h.relationalDB.ListCharacters(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}

	snap = &Snapshot{Characters: make([]CharacterExport, 0, len(chars))}
	for _, c := range chars {
		traits, err := h.relationalDB.ListTraits(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("listing traits: %w", err)
		}
		facts, err := h.relationalDB.ListFacts(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("listing facts: %w", err)
		}
		snap.Characters = append(snap.Characters, CharacterExport{
			Character: *c,
			Traits:    nonNil(traits),
			Facts:     nonNil(facts),
		})
	}

	rels, err := h.relationalDB.ListRelationships(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing relationships: %w", err)
	}
	snap.Relationships = nonNil(rels)

	return snap, nil
}

// HandleExport writes the save to w in the given format.
func (h *ExportHandler) HandleExport(ctx context.Context, w io.Writer, format string) (*Snapshot, error) {
	if !isExportFormat(format) {
		return nil, fmt.Errorf("invalid format %q, valid formats: %v", format, ExportFormats)
	}

	snap, err := h.HandleSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatCSV:
		err = FormatCharactersCSV(w, snap.Characters)
	case FormatRelationshipsCSV:
		err = FormatRelationshipsAsCSV(w, snap.Relationships)
	default:
		err = FormatSnapshotJSON(w, snap)
	}
	if err != nil {
		return nil, fmt.Errorf("formatting output: %w", err)
	}
	return snap, nil
}

// FormatSnapshotJSON writes an indented JSON snapshot.
func FormatSnapshotJSON(w io.Writer, snap *Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(snap)
}

// FormatCharactersCSV writes one row per character.
func FormatCharactersCSV(w io.Writer, chars []CharacterExport) error {
	writer := csv.NewWriter(w)

	header := []string{"id", "name", "sex", "birth_date", "height", "weight", "muscle_mass", "energy", "traits", "facts"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, c := range chars {
		row := []string{
			c.ID,
			c.Name,
			string(c.Sex),
			c.BirthDate.Format(time.DateOnly),
			strconv.Itoa(c.Height),
			strconv.Itoa(c.Weight),
			strconv.Itoa(c.MuscleMass),
			strconv.Itoa(c.Energy),
			strings.Join(c.Traits, ";"),
			strings.Join(c.Facts, ";"),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// FormatRelationshipsAsCSV writes one row per directed edge.
func FormatRelationshipsAsCSV(w io.Writer, rels []entities.Relationship) error {
	writer := csv.NewWriter(w)

	header := []string{"source", "target", "type", "value", "first_interaction", "last_interaction"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range rels {
		row := []string{
			r.SourceCharacterID,
			r.TargetCharacterID,
			string(r.Type),
			strconv.Itoa(r.Value),
			r.FirstInteraction.Format(time.DateOnly),
			r.LastInteraction.Format(time.DateOnly),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func isExportFormat(format string) bool {
	for _, f := range ExportFormats {
		if f == format {
			return true
		}
	}
	return false
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
