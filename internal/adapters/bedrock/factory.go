package bedrock

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/mikey/phish-trainer/internal/config"
	"go.uber.org/zap"
)

// Factory creates Bedrock clients
type Factory struct {
	cfg    config.BedrockConfig
	logger *zap.Logger
}

// NewFactory creates a new Bedrock factory
func NewFactory(cfg config.BedrockConfig, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClient creates a client for model, or the configured default
// model when model is empty. Credentials come from the default AWS chain.
func (f *Factory) CreateClient(ctx context.Context, model string) (*BedrockClient, error) {
	if f.cfg.Region == "" {
		return nil, fmt.Errorf("bedrock region is required")
	}
	if model == "" {
		model = f.cfg.ModelID
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(f.cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return NewBedrockClient(
		bedrockruntime.NewFromConfig(awsCfg),
		model,
		f.cfg.MaxTokens,
		f.cfg.TopP,
		f.logger,
	), nil
}
