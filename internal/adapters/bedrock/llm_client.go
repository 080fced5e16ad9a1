package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/mikey/phish-trainer/internal/core"
	"go.uber.org/zap"
)

const anthropicVersion = "bedrock-2023-05-31"

// ModelInvoker is the subset of the Bedrock runtime client used here
type ModelInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockClient is an implementation of the LLMClient interface using Amazon Bedrock
type BedrockClient struct {
	client    ModelInvoker
	modelID   string
	maxTokens int
	topP      float32
	logger    *zap.Logger
}

// NewBedrockClient creates a new Bedrock client
func NewBedrockClient(
	client ModelInvoker,
	modelID string,
	maxTokens int,
	topP float32,
	logger *zap.Logger,
) *BedrockClient {
	return &BedrockClient{
		client:    client,
		modelID:   modelID,
		maxTokens: maxTokens,
		topP:      topP,
		logger:    logger,
	}
}

// Name identifies the backend in logs and metrics
func (c *BedrockClient) Name() string {
	return "bedrock:" + c.modelID
}

// Complete invokes the model with a payload in the model family's format
func (c *BedrockClient) Complete(ctx context.Context, prompt *core.Prompt) (string, error) {
	payload, err := c.buildPayload(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request payload: %w", err)
	}

	resp, err := c.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.modelID),
		Body:        payload,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		if isThrottled(err) {
			return "", fmt.Errorf("%w: %v", core.ErrRateLimited, err)
		}
		return "", fmt.Errorf("failed to invoke Bedrock model: %w", err)
	}

	text, err := c.parseResponse(resp.Body)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", core.ErrEmptyResponse
	}

	c.logger.Debug("Bedrock response received",
		zap.String("model", c.modelID),
		zap.Int("length", len(text)))

	return text, nil
}

func (c *BedrockClient) buildPayload(prompt *core.Prompt) ([]byte, error) {
	// both families reject temperatures above 1
	temperature := prompt.Temperature
	if temperature > 1 {
		temperature = 1
	}

	if c.isAmazonTitanModel() {
		return json.Marshal(map[string]any{
			"inputText": prompt.System + "\n\n" + prompt.User,
			"textGenerationConfig": map[string]any{
				"maxTokenCount": c.maxTokens,
				"temperature":   temperature,
				"topP":          c.topP,
			},
		})
	}

	return json.Marshal(map[string]any{
		"anthropic_version": anthropicVersion,
		"max_tokens":        c.maxTokens,
		"system":            prompt.System,
		"temperature":       temperature,
		"top_p":             c.topP,
		"messages": []map[string]any{{
			"role": "user",
			"content": []map[string]string{{
				"type": "text",
				"text": prompt.User,
			}},
		}},
	})
}

func (c *BedrockClient) parseResponse(body []byte) (string, error) {
	if c.isAmazonTitanModel() {
		var titanResp struct {
			Results []struct {
				OutputText string `json:"outputText"`
			} `json:"results"`
		}
		if err := json.Unmarshal(body, &titanResp); err != nil {
			return "", fmt.Errorf("failed to unmarshal Titan response: %w", err)
		}
		if len(titanResp.Results) == 0 {
			return "", core.ErrEmptyResponse
		}
		return titanResp.Results[0].OutputText, nil
	}

	var claudeResp struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(body, &claudeResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal Claude response: %w", err)
	}

	var b strings.Builder
	for _, block := range claudeResp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String(), nil
}

// isAmazonTitanModel checks if the model is an Amazon Titan model
func (c *BedrockClient) isAmazonTitanModel() bool {
	return strings.HasPrefix(c.modelID, "amazon.titan")
}

func isThrottled(err error) bool {
	var throttled *types.ThrottlingException
	if errors.As(err, &throttled) {
		return true
	}
	var quota *types.ServiceQuotaExceededException
	return errors.As(err, &quota)
}
