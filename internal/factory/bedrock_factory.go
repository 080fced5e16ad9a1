package factory

import (
	"context"
	"errors"

	"github.com/mikey/phish-trainer/internal/adapters/bedrock"
	"github.com/mikey/phish-trainer/internal/core"
)

// createBedrock builds a Bedrock client. The region stands in for the
// credential check; keys come from the default AWS chain.
func (f *LLMFactory) createBedrock(ctx context.Context, model string) (core.LLMClient, error) {
	cfg := f.cfg.GetBedrock()
	if cfg.Region == "" {
		return nil, &errMissingCredential{provider: "bedrock", reason: errors.New("bedrock.region is empty")}
	}
	client, err := bedrock.NewFactory(cfg, f.logger).CreateClient(ctx, model)
	if err != nil {
		return nil, err
	}
	return client, nil
}
