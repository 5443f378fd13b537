// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for liferpg configuration.
	DefaultConfigDir = ".liferpg"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultSavesFile is the default saves registry file name.
	DefaultSavesFile = "saves.yaml"
	// DefaultDBFile is the SQLite file name inside a save directory.
	DefaultDBFile = "liferpg.db"
)

var (
	// reNonAlphanumeric matches characters that aren't alphanumeric or underscore.
	reNonAlphanumeric = regexp.MustCompile(`[^a-z0-9_]`)
	// reMultipleUnderscores matches consecutive underscores.
	reMultipleUnderscores = regexp.MustCompile(`_+`)
)

// Config holds static configuration (read-only after init).
type Config struct {
	Content  ContentConfig  `yaml:"content,omitempty"`
	Random   RandomConfig   `yaml:"random,omitempty"`
	Social   SocialConfig   `yaml:"social,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Embedder EmbedderConfig `yaml:"embedder,omitempty"`
	LLM      LLMConfig      `yaml:"llm,omitempty"`
	Qdrant   QdrantConfig   `yaml:"qdrant,omitempty"`
	SQLite   SQLiteConfig   `yaml:"sqlite,omitempty"`
	Tracing  TracingConfig  `yaml:"tracing,omitempty"`
}

// ContentConfig points at the authored dialogue and exploration definitions.
type ContentConfig struct {
	// Dir is resolved relative to the project directory when not absolute.
	Dir string `yaml:"dir,omitempty"`
}

// RandomConfig controls the random source.
type RandomConfig struct {
	// Seed makes generation reproducible. Zero draws a fresh seed per run.
	Seed uint64 `yaml:"seed,omitempty"`
}

// SocialConfig controls social graph generation.
type SocialConfig struct {
	RelationshipChance float64        `yaml:"relationship_chance,omitempty"`
	TypeWeights        map[string]int `yaml:"type_weights,omitempty"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// EmbedderConfig holds configuration for the embedding provider.
type EmbedderConfig struct {
	Provider string `yaml:"provider,omitempty"`
	Model    string `yaml:"model,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
	// BaseURL overrides the provider endpoint, e.g. for a compatible proxy.
	BaseURL string `yaml:"base_url,omitempty"`
	// Dimensions shortens vectors on models that support it. Required for unknown models.
	Dimensions int `yaml:"dimensions,omitempty"`
}

// LLMConfig holds configuration for the chat model that drafts facts.
type LLMConfig struct {
	Model   string `yaml:"model,omitempty"`
	APIKey  string `yaml:"api_key,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
}

// QdrantConfig holds configuration for the Qdrant vector database.
type QdrantConfig struct {
	Host       string `yaml:"host,omitempty"`
	Port       int    `yaml:"port,omitempty"`
	Collection string `yaml:"collection,omitempty"`
	APIKey     string `yaml:"api_key,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite relational database.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database.
	// For per-save databases, this is computed dynamically using SQLitePathForSave.
	Path string `yaml:"path,omitempty"`
}

// TracingConfig controls OpenTelemetry export. Tracing is off without an endpoint.
type TracingConfig struct {
	Endpoint string `yaml:"endpoint,omitempty"`
}

// envOverrides lists the environment variables that win over the config file.
type envOverrides struct {
	Seed         string `env:"LIFERPG_SEED"`
	ContentDir   string `env:"LIFERPG_CONTENT_DIR"`
	LogLevel     string `env:"LIFERPG_LOG_LEVEL"`
	OTelEndpoint string `env:"LIFERPG_OTEL_ENDPOINT"`
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	QdrantAPIKey string `env:"QDRANT_API_KEY"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Content: ContentConfig{
			Dir: "content",
		},
		Social: SocialConfig{
			RelationshipChance: 0.3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Embedder: EmbedderConfig{
			Provider: "openai",
			Model:    "text-embedding-3-small",
		},
		LLM: LLMConfig{
			Model: "gpt-4o-mini",
		},
		Qdrant: QdrantConfig{
			Host:       "localhost",
			Port:       6334,
			Collection: "liferpg_facts",
		},
	}
}

// Load loads configuration from the .liferpg directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'liferpg init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if cfg.Content.Dir != "" && !filepath.IsAbs(cfg.Content.Dir) {
		cfg.Content.Dir = filepath.Join(basePath, cfg.Content.Dir)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
// API keys from the environment only fill keys missing from the file.
func (c *Config) applyEnvOverrides() error {
	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}

	if ov.Seed != "" {
		seed, err := strconv.ParseUint(ov.Seed, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing LIFERPG_SEED: %w", err)
		}
		c.Random.Seed = seed
	}
	if ov.ContentDir != "" {
		c.Content.Dir = ov.ContentDir
	}
	if ov.LogLevel != "" {
		c.Logging.Level = ov.LogLevel
	}
	if ov.OTelEndpoint != "" {
		c.Tracing.Endpoint = ov.OTelEndpoint
	}
	if ov.OpenAIAPIKey != "" && c.Embedder.APIKey == "" {
		c.Embedder.APIKey = ov.OpenAIAPIKey
	}
	if ov.OpenAIAPIKey != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = ov.OpenAIAPIKey
	}
	if ov.QdrantAPIKey != "" && c.Qdrant.APIKey == "" {
		c.Qdrant.APIKey = ov.QdrantAPIKey
	}
	return nil
}

// ConfigDir returns the path to the .liferpg config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// SavesFilePath returns the path to the saves registry.
func SavesFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultSavesFile)
}

// Exists checks if a liferpg config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}

// SanitizeSaveName converts a save name to a safe directory and collection suffix.
func SanitizeSaveName(name string) string {
	// Convert to lowercase
	name = strings.ToLower(name)

	// Replace spaces and hyphens with underscores
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")

	// Remove any characters that aren't alphanumeric or underscore
	name = reNonAlphanumeric.ReplaceAllString(name, "")

	// Remove consecutive underscores
	name = reMultipleUnderscores.ReplaceAllString(name, "_")

	// Trim leading/trailing underscores
	name = strings.Trim(name, "_")

	if name == "" {
		return "default"
	}

	return name
}

// GenerateCollectionName creates a fact catalog collection name for a save.
func GenerateCollectionName(saveName string) string {
	return "liferpg_" + SanitizeSaveName(saveName)
}

// SaveDir returns the directory path for a given save.
func SaveDir(basePath, saveName string) string {
	return filepath.Join(basePath, DefaultConfigDir, "saves", SanitizeSaveName(saveName))
}

// SQLitePathForSave returns the SQLite database path for a given save.
func SQLitePathForSave(basePath, saveName string) string {
	return filepath.Join(SaveDir(basePath, saveName), DefaultDBFile)
}
