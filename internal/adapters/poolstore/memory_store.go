package poolstore

import (
	"context"
	"sync"

	"github.com/mikey/phish-trainer/internal/core"
	"go.uber.org/zap"
)

// MemoryStore keeps pools in process memory. Contents are lost on restart.
type MemoryStore struct {
	pools  map[core.Locale][]core.EmailSample
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		pools:  make(map[core.Locale][]core.EmailSample),
		logger: logger,
	}
}

// Load returns a copy of the pool of locale
func (s *MemoryStore) Load(_ context.Context, locale core.Locale) ([]core.EmailSample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return clonePool(s.pools[locale]), nil
}

// Save replaces the pool of locale with a copy of samples
func (s *MemoryStore) Save(_ context.Context, locale core.Locale, samples []core.EmailSample) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pools[locale] = clonePool(samples)
	s.logger.Debug("Pool stored in memory",
		zap.String("locale", string(locale)),
		zap.Int("size", len(samples)))
	return nil
}

func clonePool(samples []core.EmailSample) []core.EmailSample {
	out := make([]core.EmailSample, len(samples))
	for i, s := range samples {
		out[i] = s.Clone()
	}
	return out
}
