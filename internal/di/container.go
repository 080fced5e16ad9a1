package di

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/phish-trainer/internal/adapters/httpapi"
	"github.com/mikey/phish-trainer/internal/config"
	"github.com/mikey/phish-trainer/internal/core"
	"github.com/mikey/phish-trainer/internal/factory"
	"github.com/mikey/phish-trainer/internal/logging"
	"github.com/mikey/phish-trainer/internal/metrics"
	"github.com/mikey/phish-trainer/internal/ports"
	"github.com/mikey/phish-trainer/internal/quality"
	"github.com/mikey/phish-trainer/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
// for the HTTP server
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	if err := provideGeneration(container); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register dispenser
	if err := container.Provide(core.NewDispenser); err != nil {
		return nil, err
	}

	// Register training inbox deliverer (nil when disabled)
	if err := container.Provide(factory.NewMailerFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.MailerFactory) httpapi.Deliverer {
		return f.CreateDeliverer()
	}); err != nil {
		return nil, err
	}

	// Register HTTP handler
	if err := container.Provide(func(
		cfg *config.Config,
		dispenser *core.Dispenser,
		generator *core.SampleGenerator,
		text *utils.TextProcessor,
		deliverer httpapi.Deliverer,
		logger *zap.Logger,
	) (*httpapi.Handler, error) {
		serverConfig, err := cfg.GetServer()
		if err != nil {
			return nil, err
		}
		defaultLocale, err := core.ParseLocale(cfg.GetPool().DefaultLocale)
		if err != nil {
			return nil, fmt.Errorf("invalid pool.default_locale: %w", err)
		}
		return httpapi.NewHandler(dispenser, generator, text, deliverer, httpapi.Options{
			DefaultLocale: defaultLocale,
			MaxBatch:      serverConfig.MaxBatch,
		}, logger), nil
	}); err != nil {
		return nil, err
	}

	// Register server
	if err := container.Provide(func(
		cfg *config.Config,
		handler *httpapi.Handler,
		registry *prometheus.Registry,
		logger *zap.Logger,
	) (ports.Server, error) {
		serverConfig, err := cfg.GetServer()
		if err != nil {
			return nil, err
		}
		opts := httpapi.ServerOptions{
			ListenAddress:  serverConfig.ListenAddress,
			RequestTimeout: serverConfig.RequestTimeout,
		}
		if serverConfig.MetricsEnabled {
			opts.Gatherer = registry
		}
		return httpapi.NewServer(handler, opts, logger), nil
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// provideGeneration registers everything shared by the server and the batch
// builder: metrics, backends, quality checker, generator and pool repository.
// The caller registers *config.Config and *zap.Logger.
func provideGeneration(container *dig.Container) error {
	// Register metrics
	if err := container.Provide(func() *prometheus.Registry {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		return reg
	}); err != nil {
		return err
	}
	if err := container.Provide(func(reg *prometheus.Registry) (*metrics.Metrics, error) {
		return metrics.New(reg)
	}); err != nil {
		return err
	}

	// Register factories
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewPoolFactory); err != nil {
		return err
	}

	// Register generation backends
	if err := container.Provide(func(f *factory.LLMFactory) ([]core.LLMClient, error) {
		return f.CreateBackends(context.Background())
	}); err != nil {
		return err
	}

	// Register quality checker
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.SampleChecker {
		q := cfg.GetQuality()
		return quality.NewChecker(quality.Options{
			TrustedDomains: q.TrustedDomains,
			MinWords:       q.MinWords,
			MaxWords:       q.MaxWords,
			MinClues:       q.MinClues,
			MaxClues:       q.MaxClues,
		}, logger)
	}); err != nil {
		return err
	}

	// Register sample generator
	if err := container.Provide(func(
		cfg *config.Config,
		backends []core.LLMClient,
		checker core.SampleChecker,
		logger *zap.Logger,
		m *metrics.Metrics,
	) (*core.SampleGenerator, error) {
		genConfig, err := cfg.GetGenerator()
		if err != nil {
			return nil, err
		}
		return core.NewSampleGenerator(
			backends,
			core.NewPromptBuilder(genConfig.LiveTemperature, genConfig.BatchTemperature),
			checker,
			logger,
			m,
			core.GeneratorOptions{
				AttemptTimeout:     genConfig.AttemptTimeout,
				RateLimitPause:     genConfig.RateLimitPause,
				StrictQuality:      genConfig.StrictQuality,
				PreloadConcurrency: genConfig.PreloadConcurrency,
			},
		), nil
	}); err != nil {
		return err
	}

	// Register pool repository
	return container.Provide(func(f *factory.PoolFactory) (core.PoolRepository, error) {
		return f.CreatePoolRepository()
	})
}
