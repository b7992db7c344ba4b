package store

import (
	"database/sql"
	"errors"
)

// SaveSnapshot upserts the last-known raw snapshot for a seller/path pair.
func (s *Store) SaveSnapshot(sellerKey, path string, raw []byte) error {
	query := `
		INSERT INTO snapshots (seller_key, path, raw, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (seller_key, path) DO UPDATE SET raw = excluded.raw, updated_at = CURRENT_TIMESTAMP
	`
	_, err := s.DB.Exec(query, sellerKey, path, raw)
	return err
}

// LoadSnapshot returns the cached snapshot, with ok=false when none exists.
func (s *Store) LoadSnapshot(sellerKey, path string) ([]byte, bool, error) {
	var raw []byte
	err := s.DB.Get(&raw, `SELECT raw FROM snapshots WHERE seller_key = ? AND path = ?`, sellerKey, path)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}
