package core

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Preload runs n live generations concurrently for a new session.
// Failed calls are dropped; if none succeed the fallback sample is returned
// alone so the caller always has something to show.
func (g *SampleGenerator) Preload(ctx context.Context, locale Locale, n int) []EmailSample {
	if n < 1 {
		n = 1
	}

	results := make([]*EmailSample, n)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.opts.PreloadConcurrency)

	for i := 0; i < n; i++ {
		eg.Go(func() error {
			res, err := g.TryGenerate(egCtx, GenerationRequest{Locale: locale})
			if err != nil {
				g.logger.Warn("Preload generation failed",
					zap.Int("slot", i),
					zap.String("locale", string(locale)),
					zap.Error(err))
				return nil
			}
			results[i] = &res.Sample
			return nil
		})
	}
	_ = eg.Wait()

	samples := make([]EmailSample, 0, n)
	for _, s := range results {
		if s != nil {
			samples = append(samples, *s)
		}
	}

	g.logger.Info("Preload finished",
		zap.String("locale", string(locale)),
		zap.Int("requested", n),
		zap.Int("generated", len(samples)))

	if len(samples) == 0 {
		g.metrics.Fallback("preload_empty")
		samples = append(samples, FallbackSample(locale))
	}

	return samples
}
