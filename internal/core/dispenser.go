package core

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/mikey/phish-trainer/internal/metrics"
	"go.uber.org/zap"
)

// displaySlots are the times of day a dispensed sample may claim to have
// arrived at. Minutes since midnight.
var displaySlots = []int{
	8*60 + 15, 8*60 + 47, 9*60 + 3, 9*60 + 21, 9*60 + 45,
	10*60 + 12, 10*60 + 38, 11*60 + 5, 11*60 + 29, 13*60 + 10,
	13*60 + 42, 14*60 + 8, 14*60 + 33, 15*60 + 1, 15*60 + 28,
	16*60 + 5, 16*60 + 42, 17*60 + 11,
}

// PoolStats describes the serving state of one locale
type PoolStats struct {
	Locale   Locale `json:"locale"`
	Loaded   bool   `json:"loaded"`
	Size     int    `json:"size"`
	Consumed int    `json:"consumed"`
}

// poolState is the consumption state of one locale. It lives for the
// process lifetime only and is never persisted.
type poolState struct {
	mu       sync.Mutex
	loaded   bool
	pool     []EmailSample
	consumed map[int]struct{}
	rng      *rand.Rand
}

// Dispenser serves samples from persisted pools without repeating a sample
// until every sample of the locale has been served once.
type Dispenser struct {
	repo    PoolRepository
	logger  *zap.Logger
	metrics *metrics.Metrics
	newRand func() *rand.Rand

	mu     sync.Mutex
	states map[Locale]*poolState
}

// NewDispenser creates a dispenser with empty consumption state
func NewDispenser(repo PoolRepository, logger *zap.Logger, m *metrics.Metrics) *Dispenser {
	return &Dispenser{
		repo:    repo,
		logger:  logger,
		metrics: m,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
		states: make(map[Locale]*poolState),
	}
}

func (d *Dispenser) state(locale Locale) *poolState {
	d.mu.Lock()
	defer d.mu.Unlock()

	st, ok := d.states[locale]
	if !ok {
		st = &poolState{
			consumed: make(map[int]struct{}),
			rng:      d.newRand(),
		}
		d.states[locale] = st
	}
	return st
}

// Dispense returns one unused sample of locale with a fresh display time.
// An empty or unreadable pool yields the "not available" placeholder.
func (d *Dispenser) Dispense(ctx context.Context, locale Locale) EmailSample {
	st := d.state(locale)
	st.mu.Lock()
	defer st.mu.Unlock()

	d.ensureLoaded(ctx, locale, st)
	if len(st.pool) == 0 {
		return UnavailableSample(locale)
	}
	return d.dispenseLocked(locale, st)
}

// DispenseN returns n samples drawn one after another under the same
// no-repeat policy as Dispense.
func (d *Dispenser) DispenseN(ctx context.Context, locale Locale, n int) []EmailSample {
	st := d.state(locale)
	st.mu.Lock()
	defer st.mu.Unlock()

	d.ensureLoaded(ctx, locale, st)
	if len(st.pool) == 0 {
		return []EmailSample{UnavailableSample(locale)}
	}

	samples := make([]EmailSample, 0, n)
	for i := 0; i < n; i++ {
		samples = append(samples, d.dispenseLocked(locale, st))
	}
	return samples
}

// Reset clears the consumed set of locale and drops the cached pool so the
// next dispense reloads it from storage.
func (d *Dispenser) Reset(locale Locale) {
	st := d.state(locale)
	st.mu.Lock()
	defer st.mu.Unlock()

	clear(st.consumed)
	st.pool = nil
	st.loaded = false
	d.metrics.PoolReset(string(locale))
	d.logger.Info("Dispenser state reset", zap.String("locale", string(locale)))
}

// Stats reports the serving state of locale
func (d *Dispenser) Stats(locale Locale) PoolStats {
	st := d.state(locale)
	st.mu.Lock()
	defer st.mu.Unlock()

	return PoolStats{
		Locale:   locale,
		Loaded:   st.loaded,
		Size:     len(st.pool),
		Consumed: len(st.consumed),
	}
}

// ensureLoaded reads the pool once. Failures and empty pools are not cached
// so a later batch run is picked up without a restart.
func (d *Dispenser) ensureLoaded(ctx context.Context, locale Locale, st *poolState) {
	if st.loaded {
		return
	}

	pool, err := d.repo.Load(ctx, locale)
	if err != nil {
		d.logger.Error("Failed to load pool, serving placeholder",
			zap.String("locale", string(locale)),
			zap.Error(err))
		return
	}
	if len(pool) == 0 {
		d.logger.Warn("Pool is empty", zap.String("locale", string(locale)))
		return
	}

	st.pool = pool
	st.loaded = true
	clear(st.consumed)
	d.logger.Info("Pool loaded",
		zap.String("locale", string(locale)),
		zap.Int("size", len(pool)))
}

func (d *Dispenser) dispenseLocked(locale Locale, st *poolState) EmailSample {
	if len(st.consumed) >= len(st.pool) {
		clear(st.consumed)
		d.metrics.PoolReset(string(locale))
		d.logger.Info("Pool exhausted, starting a new cycle",
			zap.String("locale", string(locale)),
			zap.Int("size", len(st.pool)))
	}

	available := make([]int, 0, len(st.pool)-len(st.consumed))
	for i := range st.pool {
		if _, used := st.consumed[i]; !used {
			available = append(available, i)
		}
	}

	idx := available[st.rng.IntN(len(available))]
	st.consumed[idx] = struct{}{}

	sample := st.pool[idx].Clone()
	sample.Time = DisplayTime(locale, displaySlots[st.rng.IntN(len(displaySlots))])
	d.metrics.Dispensed(string(locale))

	return sample
}

// DisplayTime formats minutes since midnight the way an inbox in locale
// would show today's arrival time.
func DisplayTime(locale Locale, minutes int) string {
	t := time.Date(2000, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC)
	if locale == LocaleZH {
		period := "上午"
		if t.Hour() >= 12 {
			period = "下午"
		}
		return fmt.Sprintf("%s %s", period, t.Format("15:04"))
	}
	return t.Format("03:04 PM")
}
