package poolstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/mikey/phish-trainer/internal/core"
	"go.uber.org/zap"
)

// poolFiles maps each locale to its pool file name
var poolFiles = map[core.Locale]string{
	core.LocaleZH: "email-pool.json",
	core.LocaleEN: "email-pool-en.json",
}

// FileName returns the pool file name used for locale
func FileName(locale core.Locale) string {
	if name, ok := poolFiles[locale]; ok {
		return name
	}
	return fmt.Sprintf("email-pool-%s.json", locale)
}

// FileStore keeps each locale's pool as a pretty-printed JSON array
type FileStore struct {
	dir    string
	logger *zap.Logger
	mu     sync.Mutex
}

// NewFileStore creates a file store rooted at dir
func NewFileStore(dir string, logger *zap.Logger) *FileStore {
	return &FileStore{
		dir:    dir,
		logger: logger,
	}
}

// Path returns the pool file path for locale
func (s *FileStore) Path(locale core.Locale) string {
	return filepath.Join(s.dir, FileName(locale))
}

// Load reads the pool of locale. A missing file is an empty pool.
func (s *FileStore) Load(ctx context.Context, locale core.Locale) ([]core.EmailSample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.Path(locale)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("Pool file does not exist", zap.String("path", path))
			return []core.EmailSample{}, nil
		}
		return nil, fmt.Errorf("failed to read pool file %s: %w", path, err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse pool file %s: %w", path, err)
	}

	samples := make([]core.EmailSample, 0, len(records))
	for i, raw := range records {
		sample, err := decodeRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse pool file %s: record %d: %w", path, i, err)
		}
		samples = append(samples, sample)
	}

	return samples, nil
}

// Save replaces the pool file of locale. Records left unchanged keep their
// stored bytes. The write goes through a temporary file so readers never see
// a partial array.
func (s *FileStore) Save(ctx context.Context, locale core.Locale, samples []core.EmailSample) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path(locale)
	records, err := encodeRecords(s.storedRecords(path), samples, "  ", "  ")
	if err != nil {
		return err
	}
	data := joinRecords(records)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create pool directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary pool file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write pool file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write pool file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace pool file: %w", err)
	}

	s.logger.Info("Pool saved",
		zap.String("locale", string(locale)),
		zap.String("path", path),
		zap.Int("size", len(samples)))

	return nil
}

// storedRecords returns the records currently in path, or nil when the file
// is missing or unreadable
func (s *FileStore) storedRecords(path string) []json.RawMessage {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn("Existing pool file is not a JSON array, rewriting it",
			zap.String("path", path),
			zap.Error(err))
		return nil
	}
	return records
}

// joinRecords lays records out as a JSON array with two-space indentation
func joinRecords(records [][]byte) []byte {
	if len(records) == 0 {
		return []byte("[]")
	}

	var buf bytes.Buffer
	buf.WriteString("[\n")
	for i, record := range records {
		buf.WriteString("  ")
		buf.Write(record)
		if i < len(records)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteByte(']')
	return buf.Bytes()
}
