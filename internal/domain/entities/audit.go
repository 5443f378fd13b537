package entities

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// AuditEntry records one dialogue turn, exploration step or relationship
// change applied to a save, keyed by the acting character.
type AuditEntry struct {
	ID          int64          `json:"id"`
	Action      string         `json:"action"`
	CharacterID string         `json:"character_id,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Summary renders the details as space separated key=value pairs in key order.
func (e AuditEntry) Summary() string {
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, e.Details[k]))
	}
	return strings.Join(parts, " ")
}
