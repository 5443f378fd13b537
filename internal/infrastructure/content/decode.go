package content

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
)

// Decoder reads content definitions in one format.
type Decoder interface {
	Decode(r io.Reader) (*Definitions, error)
}

// ForFormat returns the decoder for the given format.
// Supported formats: "yaml", "json", "csv".
func ForFormat(format string) Decoder {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return &YAMLDecoder{}
	case "json":
		return &JSONDecoder{}
	case "csv":
		return &CSVDecoder{}
	default:
		return nil
	}
}

// ForFile returns the decoder matching the file extension, or nil.
func ForFile(filename string) Decoder {
	return ForFormat(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// YAMLDecoder decodes YAML content. Unknown keys are rejected.
type YAMLDecoder struct{}

// Decode implements Decoder.
func (YAMLDecoder) Decode(r io.Reader) (*Definitions, error) {
	var defs Definitions
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&defs); err != nil {
		if errors.Is(err, io.EOF) {
			return &defs, nil
		}
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	return &defs, nil
}

// JSONDecoder decodes JSON content. Unknown keys are rejected.
type JSONDecoder struct{}

// Decode implements Decoder.
func (JSONDecoder) Decode(r io.Reader) (*Definitions, error) {
	var defs Definitions
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&defs); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return &defs, nil
}

// CSVDecoder decodes flat trait and fact catalogs.
// Expected columns: kind, id, name, description (optional).
type CSVDecoder struct{}

// Decode implements Decoder.
func (d CSVDecoder) Decode(r io.Reader) (*Definitions, error) {
	reader := csv.NewReader(r)

	colIndex, err := d.readHeader(reader)
	if err != nil {
		return nil, err
	}

	return d.readRecords(reader, colIndex)
}

// readHeader reads and validates the CSV header row.
func (CSVDecoder) readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.TrimSpace(col)] = i
	}

	for _, col := range []string{"kind", "id", "name"} {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	return colIndex, nil
}

// readRecords reads all data rows into traits and facts.
func (CSVDecoder) readRecords(reader *csv.Reader, colIndex map[string]int) (*Definitions, error) {
	defs := &Definitions{}
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		id := getColumn(record, colIndex, "id")
		name := getColumn(record, colIndex, "name")
		desc := getColumn(record, colIndex, "description")

		switch kind := getColumn(record, colIndex, "kind"); kind {
		case "trait":
			defs.Traits = append(defs.Traits, entities.Trait{ID: id, Name: name, Description: desc})
		case "fact":
			defs.Facts = append(defs.Facts, entities.Fact{ID: id, Name: name, Description: desc})
		default:
			return nil, fmt.Errorf("line %d: unknown kind %q (want trait or fact)", lineNum, kind)
		}
	}

	return defs, nil
}

// getColumn safely retrieves a trimmed column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}
