package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeSaveName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple lowercase",
			input:    "mysave",
			expected: "mysave",
		},
		{
			name:     "uppercase converted",
			input:    "MySave",
			expected: "mysave",
		},
		{
			name:     "spaces to underscores",
			input:    "my save",
			expected: "my_save",
		},
		{
			name:     "special characters removed",
			input:    "my@save!",
			expected: "mysave",
		},
		{
			name:     "consecutive separators collapsed",
			input:    "my--save",
			expected: "my_save",
		},
		{
			name:     "leading trailing underscores trimmed",
			input:    "-my-save-",
			expected: "my_save",
		},
		{
			name:     "empty string returns default",
			input:    "",
			expected: "default",
		},
		{
			name:     "only special chars returns default",
			input:    "../..",
			expected: "default",
		},
		{
			name:     "complex mixed input",
			input:    "Summer Town (Run 2)",
			expected: "summer_town_run_2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeSaveName(tt.input))
		})
	}
}

func TestSavePaths(t *testing.T) {
	assert.Equal(t, "liferpg_summer_town", GenerateCollectionName("Summer Town"))
	assert.Equal(t,
		filepath.Join("/base", ".liferpg", "saves", "summer_town", "liferpg.db"),
		SQLitePathForSave("/base", "Summer Town"),
	)
}

func TestLoad_MissingConfig(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorContains(t, err, "config file not found")
}

func TestLoad_DefaultFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDefault(dir))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "content"), cfg.Content.Dir)
	assert.Zero(t, cfg.Random.Seed)
	assert.InDelta(t, 0.3, cfg.Social.RelationshipChance, 1e-9)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedder.Model)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 6334, cfg.Qdrant.Port)

	assert.Error(t, WriteDefault(dir), "refuses to overwrite")
}

func TestLoad_FileValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(ConfigDir(dir), 0755))
	require.NoError(t, os.WriteFile(ConfigFilePath(dir), []byte(`
content:
  dir: /srv/content
random:
  seed: 42
social:
  relationship_chance: 0.5
  type_weights:
    friend: 3
logging:
  format: json
embedder:
  api_key: from-file
`), 0644))

	t.Setenv("OPENAI_API_KEY", "from-env")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "/srv/content", cfg.Content.Dir)
	assert.Equal(t, uint64(42), cfg.Random.Seed)
	assert.Equal(t, map[string]int{"friend": 3}, cfg.Social.TypeWeights)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "info", cfg.Logging.Level, "default kept")
	assert.Equal(t, "from-file", cfg.Embedder.APIKey, "file key wins")
	assert.Equal(t, "from-env", cfg.LLM.APIKey, "env fills a missing key")
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDefault(dir))

	t.Setenv("LIFERPG_SEED", "7")
	t.Setenv("LIFERPG_CONTENT_DIR", "/tmp/content")
	t.Setenv("LIFERPG_LOG_LEVEL", "debug")
	t.Setenv("LIFERPG_OTEL_ENDPOINT", "http://collector:4318")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("QDRANT_API_KEY", "qd-test")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, uint64(7), cfg.Random.Seed)
	assert.Equal(t, "/tmp/content", cfg.Content.Dir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "http://collector:4318", cfg.Tracing.Endpoint)
	assert.Equal(t, "sk-test", cfg.Embedder.APIKey)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "qd-test", cfg.Qdrant.APIKey)
}

func TestLoad_InvalidSeed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDefault(dir))
	t.Setenv("LIFERPG_SEED", "not-a-number")

	_, err := Load(dir)
	assert.ErrorContains(t, err, "LIFERPG_SEED")
}

func TestWrite_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Random.Seed = 99

	require.NoError(t, Write(dir, cfg))
	assert.True(t, Exists(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, uint64(99), loaded.Random.Seed)
}
