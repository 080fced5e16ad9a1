package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for generation and serving.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	generationAttempts *prometheus.CounterVec
	fallbacks          *prometheus.CounterVec
	dispensed          *prometheus.CounterVec
	poolResets         *prometheus.CounterVec
	buildSamples       *prometheus.CounterVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		generationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "phish_trainer",
			Name:      "generation_attempts_total",
			Help:      "Generation attempts per backend and outcome.",
		}, []string{"backend", "outcome"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "phish_trainer",
			Name:      "fallbacks_total",
			Help:      "Static fallback samples returned instead of generated ones.",
		}, []string{"reason"}),
		dispensed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "phish_trainer",
			Name:      "dispensed_total",
			Help:      "Samples served from a persisted pool.",
		}, []string{"locale"}),
		poolResets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "phish_trainer",
			Name:      "pool_resets_total",
			Help:      "Times the consumed set of a pool was cleared.",
		}, []string{"locale"}),
		buildSamples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "phish_trainer",
			Name:      "pool_build_samples_total",
			Help:      "Samples produced by the pool builder.",
		}, []string{"locale", "outcome"}),
	}

	for _, c := range []prometheus.Collector{
		m.generationAttempts, m.fallbacks, m.dispensed, m.poolResets, m.buildSamples,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// GenerationAttempt records one backend attempt
func (m *Metrics) GenerationAttempt(backend, outcome string) {
	if m == nil {
		return
	}
	m.generationAttempts.WithLabelValues(backend, outcome).Inc()
}

// Fallback records a fallback sample being served
func (m *Metrics) Fallback(reason string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(reason).Inc()
}

// Dispensed records a sample served from a pool
func (m *Metrics) Dispensed(locale string) {
	if m == nil {
		return
	}
	m.dispensed.WithLabelValues(locale).Inc()
}

// PoolReset records a consumed set being cleared
func (m *Metrics) PoolReset(locale string) {
	if m == nil {
		return
	}
	m.poolResets.WithLabelValues(locale).Inc()
}

// BuildSample records one pool builder outcome
func (m *Metrics) BuildSample(locale, outcome string) {
	if m == nil {
		return
	}
	m.buildSamples.WithLabelValues(locale, outcome).Inc()
}
