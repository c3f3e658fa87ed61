// Package store persists emitted company records to SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/companyinfo-cli/internal/model"
)

// SQLiteStore implements record persistence using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS records (
	id                TEXT PRIMARY KEY,
	domain            TEXT NOT NULL,
	company_name      TEXT NOT NULL,
	extraction_status TEXT,
	record            TEXT NOT NULL,
	created_at        DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_records_domain ON records(domain);
CREATE INDEX IF NOT EXISTS idx_records_status ON records(extraction_status);
`

// Migrate creates the schema if it does not exist.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveRecord persists one emitted record and returns its generated ID.
func (s *SQLiteStore) SaveRecord(ctx context.Context, rec *model.CompanyRecord) (string, error) {
	id := uuid.New().String()

	recJSON, err := json.Marshal(rec)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: marshal record")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO records (id, domain, company_name, extraction_status, record, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, rec.Domain, rec.CompanyName, string(rec.ExtractionStatus), string(recJSON), time.Now().UTC(),
	)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: insert record")
	}

	return id, nil
}

// GetRecord loads a persisted record by ID.
func (s *SQLiteStore) GetRecord(ctx context.Context, id string) (*model.CompanyRecord, error) {
	var recJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM records WHERE id = ?`, id,
	).Scan(&recJSON)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("sqlite: record %s not found", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get record %s", id)
	}

	var rec model.CompanyRecord
	if err := json.Unmarshal([]byte(recJSON), &rec); err != nil {
		return nil, eris.Wrapf(err, "sqlite: unmarshal record %s", id)
	}
	return &rec, nil
}

// ListByDomain loads all persisted records for a domain, newest first.
func (s *SQLiteStore) ListByDomain(ctx context.Context, domain string) ([]*model.CompanyRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT record FROM records WHERE domain = ? ORDER BY created_at DESC`, domain,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list records for %s", domain)
	}
	defer rows.Close()

	var records []*model.CompanyRecord
	for rows.Next() {
		var recJSON string
		if err := rows.Scan(&recJSON); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan record")
		}
		var rec model.CompanyRecord
		if err := json.Unmarshal([]byte(recJSON), &rec); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal record")
		}
		records = append(records, &rec)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: iterate records")
}
