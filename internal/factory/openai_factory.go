package factory

import (
	"errors"

	"github.com/mikey/phish-trainer/internal/adapters/openai"
	"github.com/mikey/phish-trainer/internal/core"
)

// createOpenAI builds a client for the OpenAI-compatible API (DeepSeek by default)
func (f *LLMFactory) createOpenAI(model string) (core.LLMClient, error) {
	cfg := f.cfg.GetOpenAI()
	if cfg.APIKey == "" {
		return nil, &errMissingCredential{provider: "openai", reason: errors.New("openai.api_key is empty")}
	}
	client, err := openai.NewFactory(cfg, f.logger).CreateClient(model)
	if err != nil {
		return nil, err
	}
	return client, nil
}
