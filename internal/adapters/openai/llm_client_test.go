package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mikey/phish-trainer/internal/config"
	"github.com/mikey/phish-trainer/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	f := NewFactory(config.OpenAIConfig{
		APIKey:    "sk-test",
		BaseURL:   srv.URL,
		ModelName: "deepseek-chat",
		MaxTokens: 800,
		TopP:      1,
	}, zap.NewNop())

	c, err := f.CreateClient("")
	require.NoError(t, err)
	return c
}

func TestComplete(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cmpl-1","object":"chat.completion","model":"deepseek-chat",
			"choices":[{"index":0,"message":{"role":"assistant","content":"{\"sender\":\"x\"}"},"finish_reason":"stop"}],
			"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`))
	})

	text, err := c.Complete(context.Background(), &core.Prompt{System: "policy", User: "go", Temperature: 1.2})
	require.NoError(t, err)
	assert.Equal(t, `{"sender":"x"}`, text)

	assert.Equal(t, "deepseek-chat", got["model"])
	assert.InDelta(t, 1.2, got["temperature"], 0.001)
	assert.Equal(t, map[string]any{"type": "json_object"}, got["response_format"])
	messages := got["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "policy", messages[0].(map[string]any)["content"])
	assert.Equal(t, "go", messages[1].(map[string]any)["content"])
}

func TestComplete_RateLimited(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"rate_limit_error"}}`))
	})

	_, err := c.Complete(context.Background(), &core.Prompt{User: "go"})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrRateLimited)
}

func TestComplete_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	})

	_, err := c.Complete(context.Background(), &core.Prompt{User: "go"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrRateLimited)
}

func TestComplete_EmptyChoices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cmpl-2","object":"chat.completion","choices":[]}`))
	})

	_, err := c.Complete(context.Background(), &core.Prompt{User: "go"})
	assert.ErrorIs(t, err, core.ErrEmptyResponse)
}

func TestFactory_RequiresKey(t *testing.T) {
	_, err := NewFactory(config.OpenAIConfig{}, zap.NewNop()).CreateClient("deepseek-chat")
	assert.Error(t, err)
}

func TestName(t *testing.T) {
	c := NewOpenAIClient(nil, "deepseek-chat", 0, 0, zap.NewNop())
	assert.Equal(t, "openai:deepseek-chat", c.Name())
}
