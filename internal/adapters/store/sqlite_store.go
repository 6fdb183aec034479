package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/phishguard/phishguard/internal/core"
)

// SQLiteStore is a SQLite implementation of the SignatureStore interface.
// Each increment is a single UPSERT statement, so it is atomic per token and
// readers never observe a half-applied counter.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore creates a new SQLite signature store
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS signature_records (
			token TEXT PRIMARY KEY,
			safe_count INTEGER NOT NULL DEFAULT 0,
			phish_count INTEGER NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger,
	}, nil
}

// Increment atomically bumps the safe or phish counter for token.
func (s *SQLiteStore) Increment(ctx context.Context, token string, safe bool) error {
	safeDelta, phishDelta := 0, 1
	if safe {
		safeDelta, phishDelta = 1, 0
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO signature_records (token, safe_count, phish_count)
		VALUES (?, ?, ?)
		ON CONFLICT(token) DO UPDATE SET
			safe_count = safe_count + excluded.safe_count,
			phish_count = phish_count + excluded.phish_count
	`, token, safeDelta, phishDelta)
	if err != nil {
		return fmt.Errorf("failed to increment signature record: %w", err)
	}
	return nil
}

// LookupMany returns the records for the tokens present in the store.
func (s *SQLiteStore) LookupMany(ctx context.Context, tokens []string) ([]core.SignatureRecord, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(tokens))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]interface{}, len(tokens))
	for i, token := range tokens {
		args[i] = token
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT token, safe_count, phish_count
		FROM signature_records
		WHERE token IN (`+placeholders+`)
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query signature records: %w", err)
	}
	defer rows.Close()

	var records []core.SignatureRecord
	for rows.Next() {
		var record core.SignatureRecord
		if err := rows.Scan(&record.Token, &record.SafeCount, &record.PhishCount); err != nil {
			return nil, fmt.Errorf("failed to scan signature record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read signature records: %w", err)
	}
	return records, nil
}

// Stop closes the database connection
func (s *SQLiteStore) Stop() {
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close SQLite database", zap.Error(err))
	}
}
