package gemini

import (
	"fmt"

	"github.com/mikey/phish-trainer/internal/config"
	"go.uber.org/zap"
)

// Factory creates new instances of GeminiClient
type Factory struct {
	cfg    config.GeminiConfig
	logger *zap.Logger
}

// NewFactory creates a new factory for GeminiClient instances
func NewFactory(cfg config.GeminiConfig, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClient creates a client for model, or the configured default
// model when model is empty
func (f *Factory) CreateClient(model string) (*GeminiClient, error) {
	if f.cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = f.cfg.ModelName
	}
	return NewGeminiClient(f.cfg.APIKey, model, f.cfg.MaxTokens, f.cfg.TopP, f.logger)
}
