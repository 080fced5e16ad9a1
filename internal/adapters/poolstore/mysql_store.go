package poolstore

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// MySQLStore is a MySQL implementation of the PoolRepository interface
type MySQLStore struct {
	sqlStore
}

// NewMySQLStore connects to dsn and creates the pool table if needed
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS email_pool (
			locale VARCHAR(8) NOT NULL,
			position INT NOT NULL,
			sample_id VARCHAR(64) NOT NULL,
			is_phishing BOOLEAN NOT NULL,
			record MEDIUMTEXT NOT NULL,
			PRIMARY KEY (locale, position),
			INDEX idx_email_pool_sample (locale, sample_id)
		) CHARACTER SET utf8mb4
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLStore{sqlStore{db: db, logger: logger, driver: "mysql"}}, nil
}
