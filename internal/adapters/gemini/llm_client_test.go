package gemini

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/mikey/phish-trainer/internal/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
)

func TestIsRateLimited(t *testing.T) {
	assert.True(t, isRateLimited(fmt.Errorf("call: %w", &googleapi.Error{Code: 429})))
	assert.True(t, isRateLimited(errors.New("rpc error: code = ResourceExhausted desc = Quota exceeded")))
	assert.True(t, isRateLimited(errors.New("googleapi: Error 429: RESOURCE_EXHAUSTED")))
	assert.False(t, isRateLimited(&googleapi.Error{Code: 500, Message: "internal"}))
	assert.False(t, isRateLimited(errors.New("context deadline exceeded")))
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{
				genai.Text(`{"sender":`),
				genai.Text(`"x"}`),
			}},
		}},
	}
	assert.Equal(t, `{"sender":"x"}`, responseText(resp))

	assert.Empty(t, responseText(nil))
	assert.Empty(t, responseText(&genai.GenerateContentResponse{}))
	assert.Empty(t, responseText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}))
}

func TestFactory_RequiresKey(t *testing.T) {
	_, err := NewFactory(config.GeminiConfig{}, zap.NewNop()).CreateClient("")
	assert.Error(t, err)
}
