package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// maxListedSaves caps the names suggested when a save is missing.
const maxListedSaves = 5

// SavesConfig holds the save registry (read/write).
type SavesConfig struct {
	Saves map[string]SaveEntry `yaml:"saves,omitempty"`
}

// SaveEntry holds configuration for a specific save.
type SaveEntry struct {
	Collection  string    `yaml:"collection"`
	Description string    `yaml:"description,omitempty"`
	CreatedAt   time.Time `yaml:"created_at"`
}

// LoadSaves loads the save registry from the .liferpg directory.
func LoadSaves(basePath string) (*SavesConfig, error) {
	data, err := os.ReadFile(SavesFilePath(basePath))
	if os.IsNotExist(err) {
		// Return empty registry if file doesn't exist
		return &SavesConfig{
			Saves: make(map[string]SaveEntry),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading saves file: %w", err)
	}

	var cfg SavesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing saves file: %w", err)
	}

	if cfg.Saves == nil {
		cfg.Saves = make(map[string]SaveEntry)
	}

	return &cfg, nil
}

// Save writes the registry to the saves file.
func (s *SavesConfig) Save(basePath string) error {
	configDir := ConfigDir(basePath)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling saves config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(configDir, DefaultSavesFile), data, 0600); err != nil {
		return fmt.Errorf("writing saves file: %w", err)
	}

	return nil
}

// Add adds a save to the registry.
func (s *SavesConfig) Add(name string, entry SaveEntry) {
	if s.Saves == nil {
		s.Saves = make(map[string]SaveEntry)
	}
	s.Saves[name] = entry
}

// Remove removes a save from the registry.
func (s *SavesConfig) Remove(name string) {
	delete(s.Saves, name)
}

// Get returns the entry for a specific save.
func (s *SavesConfig) Get(name string) (*SaveEntry, error) {
	if len(s.Saves) == 0 {
		return nil, errors.New("no saves configured (run 'liferpg saves create NAME')")
	}

	entry, ok := s.Saves[name]
	if !ok {
		names := s.Names()
		if len(names) > maxListedSaves {
			names = append(names[:maxListedSaves], "...")
		}
		return nil, fmt.Errorf("save %q not found (available: %s)", name, strings.Join(names, ", "))
	}

	return &entry, nil
}

// Exists checks if a save exists in the registry.
func (s *SavesConfig) Exists(name string) bool {
	_, ok := s.Saves[name]
	return ok
}

// Names returns the save names, sorted.
func (s *SavesConfig) Names() []string {
	names := make([]string, 0, len(s.Saves))
	for name := range s.Saves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
