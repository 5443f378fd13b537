package openai

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/liferpg-core/internal/domain/entities"
	"github.com/ersonp/liferpg-core/internal/domain/ports"
	"github.com/ersonp/liferpg-core/internal/infrastructure/config"
)

var _ ports.FactDrafter = (*Client)(nil)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LLMConfig
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid config",
			cfg: config.LLMConfig{
				APIKey: "test-key",
			},
			wantErr: false,
		},
		{
			name: "valid config with model",
			cfg: config.LLMConfig{
				APIKey: "test-key",
				Model:  "gpt-4o",
			},
			wantErr: false,
		},
		{
			name:    "missing API key",
			cfg:     config.LLMConfig{},
			wantErr: true,
			errMsg:  "API key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, client)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, client)
			}
		})
	}
}

// fakeChatServer answers /chat/completions with a single assistant message.
func fakeChatServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "user", req.Messages[1].Role)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  req.Model,
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]string{"role": "assistant", "content": reply},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDraftFacts(t *testing.T) {
	reply := "```json\n" + `[
  {"id": "bakery_hours", "name": "Bakery hours", "description": " The bakery opens at six. "},
  {"name": "The Mayor's Debt", "description": "The mayor owes money."},
  {"id": "nameless"}
]` + "\n```"
	srv := fakeChatServer(t, reply)

	c, err := NewClient(config.LLMConfig{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	facts, err := c.DraftFacts(t.Context(), "The bakery opens at six.")
	require.NoError(t, err)
	assert.Equal(t, []entities.Fact{
		{ID: "bakery_hours", Name: "Bakery hours", Description: "The bakery opens at six."},
		{ID: "the_mayor_s_debt", Name: "The Mayor's Debt", Description: "The mayor owes money."},
	}, facts)
}

func TestDraftFacts_InvalidJSON(t *testing.T) {
	srv := fakeChatServer(t, "I could not find any facts.")

	c, err := NewClient(config.LLMConfig{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.DraftFacts(t.Context(), "nothing here")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing facts JSON")
}

func TestFactID(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"bakery_hours", "bakery_hours"},
		{"Bakery Hours", "bakery_hours"},
		{"  The mayor's   secret! ", "the_mayor_s_secret"},
		{"Route 66", "route_66"},
		{"---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, factID(tt.input))
		})
	}
}

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain JSON",
			input:    `[{"id": "a"}]`,
			expected: `[{"id": "a"}]`,
		},
		{
			name:     "JSON with json code block",
			input:    "```json\n[{\"id\": \"a\"}]\n```",
			expected: `[{"id": "a"}]`,
		},
		{
			name:     "JSON with plain code block",
			input:    "```\n[{\"id\": \"a\"}]\n```",
			expected: `[{"id": "a"}]`,
		},
		{
			name:     "JSON with whitespace",
			input:    "  \n[{\"id\": \"a\"}]\n  ",
			expected: `[{"id": "a"}]`,
		},
		{
			name:     "empty array",
			input:    "[]",
			expected: "[]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cleanJSONResponse(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}
