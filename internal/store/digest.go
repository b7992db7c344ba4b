package store

// DigestSent reports whether a digest already went out for this seller on
// the given date (YYYY-MM-DD). Reruns of cmd/digest on the same day no-op.
func (s *Store) DigestSent(sellerKey, date string) (bool, error) {
	var count int
	err := s.DB.Get(&count, `SELECT COUNT(*) FROM digest_log WHERE seller_key = ? AND digest_date = ?`, sellerKey, date)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// RecordDigest marks the digest for a date as sent.
func (s *Store) RecordDigest(sellerKey, date string) error {
	_, err := s.DB.Exec(`INSERT OR IGNORE INTO digest_log (seller_key, digest_date) VALUES (?, ?)`, sellerKey, date)
	return err
}
