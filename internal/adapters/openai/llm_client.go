package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mikey/phish-trainer/internal/core"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIClient is an implementation of the LLMClient interface for
// OpenAI-compatible chat completion APIs such as DeepSeek
type OpenAIClient struct {
	client    *openai.Client
	modelName string
	maxTokens int
	topP      float32
	logger    *zap.Logger
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(
	client *openai.Client,
	modelName string,
	maxTokens int,
	topP float32,
	logger *zap.Logger,
) *OpenAIClient {
	return &OpenAIClient{
		client:    client,
		modelName: modelName,
		maxTokens: maxTokens,
		topP:      topP,
		logger:    logger,
	}
}

// Name identifies the backend in logs and metrics
func (c *OpenAIClient) Name() string {
	return "openai:" + c.modelName
}

// Complete sends prompt as a single-turn chat and returns the raw reply
func (c *OpenAIClient) Complete(ctx context.Context, prompt *core.Prompt) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: prompt.System,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt.User,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: prompt.Temperature,
		TopP:        c.topP,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		if isRateLimited(err) {
			return "", fmt.Errorf("%w: %v", core.ErrRateLimited, err)
		}
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", core.ErrEmptyResponse
	}

	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", core.ErrEmptyResponse
	}

	c.logger.Debug("Chat completion received",
		zap.String("model", c.modelName),
		zap.String("id", resp.ID),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens))

	return text, nil
}

func isRateLimited(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}
	return false
}
