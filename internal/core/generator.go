package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mikey/phish-trainer/internal/metrics"
	"go.uber.org/zap"
)

// GeneratorOptions tunes the retry and quality policy of the generator
type GeneratorOptions struct {
	AttemptTimeout     time.Duration
	RateLimitPause     time.Duration
	StrictQuality      bool
	PreloadConcurrency int
}

// attemptState drives the walk over the ordered backend list
type attemptState int

const (
	stateAttempting attemptState = iota
	stateSucceeded
	stateExhausted
)

// SampleGenerator produces schema-valid samples from an ordered list of
// backends and degrades to a static fallback when all of them fail.
type SampleGenerator struct {
	backends []LLMClient
	prompts  *PromptBuilder
	checker  SampleChecker
	logger   *zap.Logger
	metrics  *metrics.Metrics
	opts     GeneratorOptions
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewSampleGenerator creates a new sample generator
func NewSampleGenerator(
	backends []LLMClient,
	prompts *PromptBuilder,
	checker SampleChecker,
	logger *zap.Logger,
	m *metrics.Metrics,
	opts GeneratorOptions,
) *SampleGenerator {
	if opts.AttemptTimeout <= 0 {
		opts.AttemptTimeout = 45 * time.Second
	}
	if opts.RateLimitPause < 0 {
		opts.RateLimitPause = 0
	}
	if opts.PreloadConcurrency < 1 {
		opts.PreloadConcurrency = 1
	}
	if opts.PreloadConcurrency > 5 {
		opts.PreloadConcurrency = 5
	}

	return &SampleGenerator{
		backends: backends,
		prompts:  prompts,
		checker:  checker,
		logger:   logger,
		metrics:  m,
		opts:     opts,
		sleep:    sleepContext,
	}
}

// Backends returns the names of the configured backends in attempt order
func (g *SampleGenerator) Backends() []string {
	names := make([]string, len(g.backends))
	for i, b := range g.backends {
		names[i] = b.Name()
	}
	return names
}

// Generate always returns a schema-valid sample: a generated one, or the
// static fallback when no backend is configured or every attempt failed.
func (g *SampleGenerator) Generate(ctx context.Context, req GenerationRequest) GenerationResult {
	result, err := g.TryGenerate(ctx, req)
	if err == nil {
		return *result
	}

	reason := "exhausted"
	if errors.Is(err, ErrNoBackends) {
		reason = "no_backends"
	}
	g.metrics.Fallback(reason)
	g.logger.Warn("Returning fallback sample",
		zap.String("locale", string(req.Locale)),
		zap.String("reason", reason),
		zap.Error(err))

	attempts := 0
	if result != nil {
		attempts = result.Attempts
	}
	return GenerationResult{
		Sample:   FallbackSample(req.Locale),
		Backend:  "fallback",
		Attempts: attempts,
		Fallback: true,
	}
}

// TryGenerate walks the backend list until one produces a valid sample.
// On failure the returned result only carries the attempt count.
func (g *SampleGenerator) TryGenerate(ctx context.Context, req GenerationRequest) (*GenerationResult, error) {
	if len(g.backends) == 0 {
		return nil, ErrNoBackends
	}

	prompt := g.prompts.Build(req)

	state := stateAttempting
	index := 0
	var sample *EmailSample
	var lastErr error

	for state == stateAttempting {
		backend := g.backends[index]
		s, err := g.attempt(ctx, backend, prompt, index)

		switch {
		case err == nil:
			sample = s
			state = stateSucceeded
		case ctx.Err() != nil:
			lastErr = fmt.Errorf("generation cancelled: %w", ctx.Err())
			state = stateExhausted
		case index+1 >= len(g.backends):
			lastErr = err
			state = stateExhausted
		default:
			lastErr = err
			if errors.Is(err, ErrRateLimited) && g.opts.RateLimitPause > 0 {
				g.logger.Info("Backend rate limited, pausing before next backend",
					zap.String("backend", backend.Name()),
					zap.Duration("pause", g.opts.RateLimitPause))
				if err := g.sleep(ctx, g.opts.RateLimitPause); err != nil {
					lastErr = fmt.Errorf("generation cancelled: %w", err)
					state = stateExhausted
					continue
				}
			}
			index++
		}
	}

	attempts := index + 1
	if state == stateExhausted {
		return &GenerationResult{Attempts: attempts}, fmt.Errorf("all %d backend attempts failed: %w", attempts, lastErr)
	}

	return &GenerationResult{
		Sample:   *sample,
		Backend:  g.backends[index].Name(),
		Attempts: attempts,
	}, nil
}

// attempt performs one backend call, decode and validation
func (g *SampleGenerator) attempt(ctx context.Context, backend LLMClient, prompt *Prompt, index int) (*EmailSample, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, g.opts.AttemptTimeout)
	defer cancel()

	start := time.Now()
	raw, err := backend.Complete(attemptCtx, prompt)
	if err != nil {
		g.recordFailure(backend, index, "backend_error", err)
		return nil, fmt.Errorf("%s: %w", backend.Name(), err)
	}

	sample, err := DecodeSample(raw)
	if err != nil {
		g.recordFailure(backend, index, "invalid_schema", err)
		return nil, fmt.Errorf("%s: %w", backend.Name(), err)
	}

	// the checker sees clues on legitimate samples before they are dropped
	if g.checker != nil {
		if err := g.checker.Check(sample, g.opts.StrictQuality); err != nil {
			g.recordFailure(backend, index, "rejected_quality", err)
			return nil, fmt.Errorf("%s: %w", backend.Name(), err)
		}
	}
	normalizeSample(sample)

	g.metrics.GenerationAttempt(backend.Name(), "success")
	g.logger.Info("Generated sample",
		zap.String("backend", backend.Name()),
		zap.Int("attempt", index+1),
		zap.Bool("is_phishing", sample.IsPhishing),
		zap.String("sender", sample.Sender),
		zap.Duration("latency", time.Since(start)))

	return sample, nil
}

func (g *SampleGenerator) recordFailure(backend LLMClient, index int, outcome string, err error) {
	g.metrics.GenerationAttempt(backend.Name(), outcome)
	g.logger.Warn("Generation attempt failed",
		zap.String("backend", backend.Name()),
		zap.Int("attempt", index+1),
		zap.String("outcome", outcome),
		zap.Error(err))
}

// normalizeSample enforces the data-model rules the schema does not cover
func normalizeSample(s *EmailSample) {
	if s.Clues == nil || !s.IsPhishing {
		s.Clues = []string{}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
