package poolstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLiteStore is a SQLite implementation of the PoolRepository interface
type SQLiteStore struct {
	sqlStore
}

// NewSQLiteStore opens or creates the pool database at dbPath
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS email_pool (
			locale TEXT NOT NULL,
			position INTEGER NOT NULL,
			sample_id TEXT NOT NULL,
			is_phishing BOOLEAN NOT NULL,
			record TEXT NOT NULL,
			PRIMARY KEY (locale, position)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_email_pool_sample ON email_pool(locale, sample_id)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &SQLiteStore{sqlStore{db: db, logger: logger, driver: "sqlite"}}, nil
}
