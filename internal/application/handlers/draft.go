package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
	"github.com/ersonp/liferpg-core/internal/domain/ports"
	"github.com/ersonp/liferpg-core/internal/infrastructure/content"
)

// DraftHandler proposes new catalog facts from prose.
type DraftHandler struct {
	drafter ports.FactDrafter
	content *content.Definitions
}

// NewDraftHandler creates a new DraftHandler.
func NewDraftHandler(drafter ports.FactDrafter, defs *content.Definitions) *DraftHandler {
	return &DraftHandler{
		drafter: drafter,
		content: defs,
	}
}

// DraftResult splits drafted facts into new ones and those the content already defines.
type DraftResult struct {
	Facts    []entities.Fact `json:"facts"`
	Existing []string        `json:"existing,omitempty"`
}

// HandleDraft drafts facts from text. Duplicate IDs within the draft keep the first.
func (h *DraftHandler) HandleDraft(ctx context.Context, text string) (res *DraftResult, err error) {
	ctx, span := startSpan(ctx, "facts.draft", attribute.Int("text_len", len(text)))
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(text) == "" {
		return nil, errors.New("text is empty")
	}

	drafts, err := h.drafter.DraftFacts(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("drafting facts: %w", err)
	}

	res = &DraftResult{Facts: []entities.Fact{}}
	seen := make(map[string]bool, len(drafts))
	for _, f := range drafts {
		if seen[f.ID] {
			continue
		}
		seen[f.ID] = true

		if _, ok := h.content.Fact(f.ID); ok {
			res.Existing = append(res.Existing, f.ID)
			continue
		}
		res.Facts = append(res.Facts, f)
	}

	span.SetAttributes(attribute.Int("drafted", len(res.Facts)))
	return res, nil
}
