package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/phish-trainer/internal/config"
	"github.com/mikey/phish-trainer/internal/core"
	"github.com/mikey/phish-trainer/internal/logging"
	"github.com/mikey/phish-trainer/internal/metrics"
	"github.com/mikey/phish-trainer/internal/seeds"
)

// CLIFlags contains the command line flags of the pool builder
type CLIFlags struct {
	Count      int
	Lang       string
	ConfigFile string
	Verbose    bool
	JSONLog    bool
}

// BuildCLIContainer creates and configures a dependency injection container
// for the batch pool builder
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.NewFromFile(flags.ConfigFile)
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", flags.ConfigFile))
			return cfg, nil
		}
		return config.New()
	}); err != nil {
		return nil, err
	}

	if err := provideGeneration(container); err != nil {
		return nil, err
	}

	// Register seed catalog
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) (core.SeedCatalog, error) {
		builderConfig, err := cfg.GetBuilder()
		if err != nil {
			return nil, err
		}
		if builderConfig.SeedsFile == "" {
			return seeds.Builtin(), nil
		}
		catalog, err := seeds.LoadFile(builderConfig.SeedsFile)
		if err != nil {
			return nil, err
		}
		logger.Info("Loaded scenario seeds", zap.String("file", builderConfig.SeedsFile))
		return catalog, nil
	}); err != nil {
		return nil, err
	}

	// Register pool builder
	if err := container.Provide(func(
		cfg *config.Config,
		generator *core.SampleGenerator,
		repo core.PoolRepository,
		catalog core.SeedCatalog,
		logger *zap.Logger,
		m *metrics.Metrics,
	) (*core.PoolBuilder, error) {
		builderConfig, err := cfg.GetBuilder()
		if err != nil {
			return nil, err
		}
		return core.NewPoolBuilder(generator, repo, catalog, logger, m, builderConfig.Delay), nil
	}); err != nil {
		return nil, err
	}

	return container, nil
}
