package factory

import (
	"fmt"

	"github.com/mikey/phish-trainer/internal/adapters/poolstore"
	"github.com/mikey/phish-trainer/internal/config"
	"github.com/mikey/phish-trainer/internal/core"
	"go.uber.org/zap"
)

// PoolFactory creates the pool repository selected by pool.store
type PoolFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewPoolFactory creates a new pool factory
func NewPoolFactory(cfg *config.Config, logger *zap.Logger) *PoolFactory {
	return &PoolFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreatePoolRepository creates a new pool repository based on the configuration
func (f *PoolFactory) CreatePoolRepository() (core.PoolRepository, error) {
	poolConfig := f.cfg.GetPool()

	switch poolConfig.Store {
	case "", "file":
		f.logger.Info("Using JSON file pool store", zap.String("dir", poolConfig.Dir))
		return poolstore.NewFileStore(poolConfig.Dir, f.logger), nil
	case "memory":
		f.logger.Info("Using in-memory pool store")
		return poolstore.NewMemoryStore(f.logger), nil
	case "sqlite":
		f.logger.Info("Using SQLite pool store", zap.String("path", poolConfig.SQLitePath))
		store, err := poolstore.NewSQLiteStore(poolConfig.SQLitePath, f.logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "mysql":
		if poolConfig.MySQLDSN == "" {
			return nil, fmt.Errorf("pool.mysql_dsn is required for the mysql store")
		}
		f.logger.Info("Using MySQL pool store")
		store, err := poolstore.NewMySQLStore(poolConfig.MySQLDSN, f.logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported pool store: %q", poolConfig.Store)
	}
}
