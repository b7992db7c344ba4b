// Package store is the local sqlite cache. It is not a system of record:
// commerce data lives behind the remote API and the realtime database. Only
// two things persist here, the last-known snapshot per realtime path and the
// digest send ledger.
package store

import (
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

type Store struct {
	DB *sqlx.DB
}

func NewStore(dataSourceName string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &Store{DB: db}, nil
}

func (s *Store) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS snapshots (
		seller_key TEXT NOT NULL,
		path TEXT NOT NULL,
		raw BLOB,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (seller_key, path)
	);

	CREATE TABLE IF NOT EXISTS digest_log (
		seller_key TEXT NOT NULL,
		digest_date TEXT NOT NULL,
		sent_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (seller_key, digest_date)
	);
	`
	_, err := s.DB.Exec(query)
	if err != nil {
		slog.Error("Error creating schema", "error", err)
		return err
	}
	return nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}
