package core

import (
	"context"
	"errors"
)

var (
	// ErrRateLimited marks a backend failure caused by a rate limit or quota
	ErrRateLimited = errors.New("backend rate limited")
	// ErrNoBackends is returned when no generation backend is configured
	ErrNoBackends = errors.New("no generation backend configured")
	// ErrEmptyResponse is returned when a backend answers with no text
	ErrEmptyResponse = errors.New("empty response from backend")
)

// Prompt is a single, history-free request to a text generation backend
type Prompt struct {
	System      string
	User        string
	Temperature float32
}

// LLMClient defines the interface for text generation backends
type LLMClient interface {
	// Name identifies the backend in logs and metrics, e.g. "openai:deepseek-chat"
	Name() string

	// Complete submits the prompt and returns the raw response text
	Complete(ctx context.Context, prompt *Prompt) (string, error)
}

// PoolRepository persists generated pools, one per locale
type PoolRepository interface {
	// Load returns the stored pool; a missing pool is an empty slice
	Load(ctx context.Context, locale Locale) ([]EmailSample, error)

	// Save replaces the stored pool with samples
	Save(ctx context.Context, locale Locale, samples []EmailSample) error
}

// SeedCatalog supplies scenario seeds per locale
type SeedCatalog interface {
	Seeds(locale Locale) []ScenarioSeed
}

// SampleChecker performs post-validation quality checks
type SampleChecker interface {
	// Check returns a non-nil error when the sample must be rejected
	Check(sample *EmailSample, strict bool) error
}
