package poolstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mikey/phish-trainer/internal/core"
	"go.uber.org/zap"
)

// sqlStore is the shared table logic behind the SQLite and MySQL stores.
// Each row holds one sample as a JSON document at its pool position.
type sqlStore struct {
	db     *sql.DB
	logger *zap.Logger
	driver string
}

func (s *sqlStore) Load(ctx context.Context, locale core.Locale) ([]core.EmailSample, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT record
		FROM email_pool
		WHERE locale = ?
		ORDER BY position
	`, string(locale))
	if err != nil {
		return nil, fmt.Errorf("failed to query pool: %w", err)
	}
	defer rows.Close()

	samples := []core.EmailSample{}
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("failed to scan pool row: %w", err)
		}

		sample, err := decodeRecord([]byte(record))
		if err != nil {
			return nil, fmt.Errorf("failed to decode pool row: %w", err)
		}
		samples = append(samples, sample)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pool rows: %w", err)
	}

	return samples, nil
}

// Save replaces every row of locale in one transaction. Rows whose sample
// is unchanged keep their stored document.
func (s *sqlStore) Save(ctx context.Context, locale core.Locale, samples []core.EmailSample) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stored, err := storedRows(ctx, tx, locale)
	if err != nil {
		return err
	}
	records, err := encodeRecords(stored, samples, "", "")
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM email_pool WHERE locale = ?`, string(locale)); err != nil {
		return fmt.Errorf("failed to clear pool: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO email_pool (locale, position, sample_id, is_phishing, record)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, sample := range samples {
		if _, err := stmt.ExecContext(ctx, string(locale), i, sample.ID, sample.IsPhishing, string(records[i])); err != nil {
			return fmt.Errorf("failed to insert sample %s: %w", sample.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit pool: %w", err)
	}

	s.logger.Info("Pool saved",
		zap.String("driver", s.driver),
		zap.String("locale", string(locale)),
		zap.Int("size", len(samples)))

	return nil
}

// storedRows reads the current documents of locale in position order
func storedRows(ctx context.Context, tx *sql.Tx, locale core.Locale) ([]json.RawMessage, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT record
		FROM email_pool
		WHERE locale = ?
		ORDER BY position
	`, string(locale))
	if err != nil {
		return nil, fmt.Errorf("failed to query pool: %w", err)
	}
	defer rows.Close()

	var stored []json.RawMessage
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("failed to scan pool row: %w", err)
		}
		stored = append(stored, json.RawMessage(record))
	}
	return stored, rows.Err()
}

// Close closes the database connection
func (s *sqlStore) Close() error {
	return s.db.Close()
}
