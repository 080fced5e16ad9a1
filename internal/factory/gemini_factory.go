package factory

import (
	"errors"

	"github.com/mikey/phish-trainer/internal/adapters/gemini"
	"github.com/mikey/phish-trainer/internal/core"
)

func (f *LLMFactory) createGemini(model string) (core.LLMClient, error) {
	cfg := f.cfg.GetGemini()
	if cfg.APIKey == "" {
		return nil, &errMissingCredential{provider: "gemini", reason: errors.New("gemini.api_key is empty")}
	}
	client, err := gemini.NewFactory(cfg, f.logger).CreateClient(model)
	if err != nil {
		return nil, err
	}
	return client, nil
}
