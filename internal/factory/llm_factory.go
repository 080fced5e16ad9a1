package factory

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikey/phish-trainer/internal/config"
	"github.com/mikey/phish-trainer/internal/core"
	"go.uber.org/zap"
)

// errMissingCredential marks a backend that cannot be built because its
// provider has no credential configured
type errMissingCredential struct {
	provider string
	reason   error
}

func (e *errMissingCredential) Error() string {
	return fmt.Sprintf("%s backend not configured: %v", e.provider, e.reason)
}

func (e *errMissingCredential) Unwrap() error { return e.reason }

// LLMFactory creates the ordered list of generation backends
type LLMFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewLLMFactory creates a new LLM factory
func NewLLMFactory(cfg *config.Config, logger *zap.Logger) *LLMFactory {
	return &LLMFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateBackends builds one client per llm.backends entry, in order.
// Entries whose provider has no credential are skipped with a warning, so
// the result may be empty; an unknown provider is a configuration error.
func (f *LLMFactory) CreateBackends(ctx context.Context) ([]core.LLMClient, error) {
	entries, err := f.cfg.GetBackends()
	if err != nil {
		return nil, err
	}

	backends := make([]core.LLMClient, 0, len(entries))
	for i, entry := range entries {
		client, err := f.createClient(ctx, entry)
		if err != nil {
			var missing *errMissingCredential
			if errors.As(err, &missing) {
				f.logger.Warn("Skipping generation backend",
					zap.Int("position", i),
					zap.String("provider", entry.Provider),
					zap.Error(err))
				continue
			}
			return nil, fmt.Errorf("llm.backends[%d]: %w", i, err)
		}
		backends = append(backends, client)
	}

	if len(backends) == 0 {
		f.logger.Warn("No generation backend available, live generation serves fallback samples only")
	} else {
		names := make([]string, len(backends))
		for i, b := range backends {
			names[i] = b.Name()
		}
		f.logger.Info("Generation backends configured", zap.Strings("backends", names))
	}

	return backends, nil
}

func (f *LLMFactory) createClient(ctx context.Context, entry config.BackendConfig) (core.LLMClient, error) {
	switch entry.Provider {
	case "openai", "deepseek":
		return f.createOpenAI(entry.Model)
	case "gemini":
		return f.createGemini(entry.Model)
	case "bedrock":
		return f.createBedrock(ctx, entry.Model)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", entry.Provider)
	}
}
