package core

import (
	"context"
	"fmt"
	"time"

	"github.com/mikey/phish-trainer/internal/metrics"
	"go.uber.org/zap"
)

// PoolBuilder generates samples from the seed catalog and appends them to
// the persisted pool of a locale.
type PoolBuilder struct {
	generator *SampleGenerator
	repo      PoolRepository
	catalog   SeedCatalog
	logger    *zap.Logger
	metrics   *metrics.Metrics
	delay     time.Duration
	now       func() time.Time
	sleep     func(ctx context.Context, d time.Duration) error
}

// NewPoolBuilder creates a new pool builder. delay is the pause between
// consecutive generation calls.
func NewPoolBuilder(
	generator *SampleGenerator,
	repo PoolRepository,
	catalog SeedCatalog,
	logger *zap.Logger,
	m *metrics.Metrics,
	delay time.Duration,
) *PoolBuilder {
	return &PoolBuilder{
		generator: generator,
		repo:      repo,
		catalog:   catalog,
		logger:    logger,
		metrics:   m,
		delay:     delay,
		now:       time.Now,
		sleep:     sleepContext,
	}
}

// Build generates n samples for locale, cycling through the seed catalog,
// then merges them into the stored pool. Individual failures are skipped.
func (b *PoolBuilder) Build(ctx context.Context, locale Locale, n int) (*BuildSummary, error) {
	if n < 1 {
		return nil, fmt.Errorf("sample count must be positive, got %d", n)
	}
	seeds := b.catalog.Seeds(locale)
	if len(seeds) == 0 {
		return nil, fmt.Errorf("no scenario seeds for locale %q", locale)
	}

	start := b.now()
	fresh := make([]EmailSample, 0, n)

	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			b.logger.Warn("Pool build interrupted", zap.Int("completed", i), zap.Error(ctx.Err()))
			break
		}

		seed := seeds[i%len(seeds)]
		b.logger.Info("Generating pool sample",
			zap.Int("index", i+1),
			zap.Int("total", n),
			zap.String("type", string(seed.Type)),
			zap.Int("seed_id", seed.ID),
			zap.String("hint", seed.Hint))

		res, err := b.generator.TryGenerate(ctx, GenerationRequest{Locale: locale, Seed: &seed})
		if err != nil {
			b.metrics.BuildSample(string(locale), "failure")
			b.logger.Error("Pool sample generation failed, skipping",
				zap.Int("index", i+1),
				zap.Int("seed_id", seed.ID),
				zap.Error(err))
		} else {
			sample := res.Sample
			sample.ID = fmt.Sprintf("email_%d_%d", b.now().UnixMilli(), i)
			fresh = append(fresh, sample)
			b.metrics.BuildSample(string(locale), "success")
			b.logger.Info("Pool sample generated",
				zap.String("id", sample.ID),
				zap.String("backend", res.Backend),
				zap.String("sender", sample.Sender),
				zap.String("subject", sample.Subject))
		}

		if i < n-1 && b.delay > 0 {
			if err := b.sleep(ctx, b.delay); err != nil {
				b.logger.Warn("Pool build interrupted during delay", zap.Error(err))
				break
			}
		}
	}

	existing, err := b.repo.Load(ctx, locale)
	if err != nil {
		b.logger.Warn("Existing pool unreadable, starting from empty",
			zap.String("locale", string(locale)),
			zap.Error(err))
		existing = nil
	}

	merged, added := MergePools(existing, fresh)
	if err := b.repo.Save(ctx, locale, merged); err != nil {
		return nil, fmt.Errorf("failed to persist pool: %w", err)
	}

	summary := &BuildSummary{
		Locale:     locale,
		Requested:  n,
		Succeeded:  len(fresh),
		Added:      added,
		Total:      len(merged),
		Duration:   b.now().Sub(start),
		FinishedAt: b.now(),
	}

	b.logger.Info("Pool build finished",
		zap.String("locale", string(locale)),
		zap.Int("requested", summary.Requested),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("added", summary.Added),
		zap.Int("total", summary.Total))

	return summary, nil
}

// MergePools appends the fresh samples whose id is not already present.
// Existing entries are never removed, reordered or modified.
func MergePools(existing, fresh []EmailSample) ([]EmailSample, int) {
	seen := make(map[string]struct{}, len(existing)+len(fresh))
	merged := make([]EmailSample, 0, len(existing)+len(fresh))

	for _, s := range existing {
		seen[s.ID] = struct{}{}
		merged = append(merged, s)
	}

	added := 0
	for _, s := range fresh {
		if _, dup := seen[s.ID]; dup {
			continue
		}
		seen[s.ID] = struct{}{}
		merged = append(merged, s)
		added++
	}

	return merged, added
}
