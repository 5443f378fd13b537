// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/liferpg-core/internal/infrastructure/config"
)

// InitHandler handles project initialization.
type InitHandler struct{}

// NewInitHandler creates a new init handler.
func NewInitHandler() *InitHandler {
	return &InitHandler{}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath string
	ContentDir string
}

// Handle writes the default configuration under basePath.
func (h *InitHandler) Handle(ctx context.Context, basePath string) (res *InitResult, err error) {
	_, span := startSpan(ctx, "init")
	defer func() { endSpan(span, err) }()

	if config.Exists(basePath) {
		return nil, fmt.Errorf("liferpg already initialized in %s", basePath)
	}

	if err := config.WriteDefault(basePath); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}

	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &InitResult{
		ConfigPath: config.ConfigFilePath(basePath),
		ContentDir: cfg.Content.Dir,
	}, nil
}
