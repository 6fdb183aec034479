package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/phishguard/phishguard/internal/core"
)

// MySQLStore is a MySQL implementation of the SignatureStore interface.
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore creates a new MySQL signature store
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS signature_records (
			token VARCHAR(191) PRIMARY KEY,
			safe_count BIGINT NOT NULL DEFAULT 0,
			phish_count BIGINT NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLStore{
		db:     db,
		logger: logger,
	}, nil
}

// Increment atomically bumps the safe or phish counter for token.
func (s *MySQLStore) Increment(ctx context.Context, token string, safe bool) error {
	safeDelta, phishDelta := 0, 1
	if safe {
		safeDelta, phishDelta = 1, 0
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO signature_records (token, safe_count, phish_count)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE
			safe_count = safe_count + VALUES(safe_count),
			phish_count = phish_count + VALUES(phish_count)
	`, token, safeDelta, phishDelta)
	if err != nil {
		return fmt.Errorf("failed to increment signature record: %w", err)
	}
	return nil
}

// LookupMany returns the records for the tokens present in the store.
func (s *MySQLStore) LookupMany(ctx context.Context, tokens []string) ([]core.SignatureRecord, error) {
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
func (s *MySQLStore) Stop() {
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close MySQL database", zap.Error(err))
	}
}
