// Package openai provides a FactDrafter implementation using OpenAI chat completions.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
	"github.com/ersonp/liferpg-core/internal/infrastructure/config"
)

const draftPrompt = `You help write content for a text life simulation. Characters in the
simulation can learn facts about the town and about each other.

Read the given text and list the facts a character could learn from it.

For each fact return:
- id: a short snake_case identifier
- name: a short human-readable title
- description: one sentence stating the fact

Return ONLY a valid JSON array, no other text.

Example:
Input: "The bakery opens at six. Everyone knows the mayor owes money to half the town."
Output: [
  {"id": "bakery_hours", "name": "Bakery hours", "description": "The bakery opens at six every morning."},
  {"id": "mayor_debt", "name": "The mayor's debt", "description": "The mayor owes money to half the town."}
]`

// Client implements ports.FactDrafter using OpenAI.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new OpenAI chat client.
func NewClient(cfg config.LLMConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required (set OPENAI_API_KEY)")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := "gpt-4o-mini"
	if cfg.Model != "" {
		model = cfg.Model
	}

	return &Client{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}, nil
}

// DraftFacts asks the model for fact definitions found in text.
// Drafts without a name are dropped and missing IDs are derived from the name.
func (c *Client) DraftFacts(ctx context.Context, text string) ([]entities.Fact, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: draftPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("calling OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("no response from OpenAI")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	var drafts []rawFact
	if err := json.Unmarshal([]byte(content), &drafts); err != nil {
		return nil, fmt.Errorf("parsing facts JSON: %w (response: %s)", err, content)
	}

	facts := make([]entities.Fact, 0, len(drafts))
	for _, d := range drafts {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			continue
		}
		id := factID(d.ID)
		if id == "" {
			id = factID(name)
		}
		facts = append(facts, entities.Fact{
			ID:          id,
			Name:        name,
			Description: strings.TrimSpace(d.Description),
		})
	}

	return facts, nil
}

// rawFact is the JSON structure the model returns.
type rawFact struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// factID lowercases s and collapses anything but letters and digits into single underscores.
func factID(s string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// cleanJSONResponse removes markdown code blocks if present.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}

	return strings.TrimSpace(content)
}
