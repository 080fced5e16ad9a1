package openai

import (
	"fmt"

	"github.com/mikey/phish-trainer/internal/config"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Factory creates new instances of OpenAIClient
type Factory struct {
	cfg    config.OpenAIConfig
	logger *zap.Logger
}

// NewFactory creates a new factory for OpenAIClient instances
func NewFactory(cfg config.OpenAIConfig, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClient creates a client for model, or the configured default
// model when model is empty
func (f *Factory) CreateClient(model string) (*OpenAIClient, error) {
	if f.cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	if model == "" {
		model = f.cfg.ModelName
	}

	clientCfg := openai.DefaultConfig(f.cfg.APIKey)
	if f.cfg.BaseURL != "" {
		clientCfg.BaseURL = f.cfg.BaseURL
	}

	return NewOpenAIClient(
		openai.NewClientWithConfig(clientCfg),
		model,
		f.cfg.MaxTokens,
		f.cfg.TopP,
		f.logger,
	), nil
}
