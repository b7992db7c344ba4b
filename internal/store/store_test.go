package store

import (
	"path/filepath"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := s.InitSchema(); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := testStore(t)

	if _, ok, err := s.LoadSnapshot("seller", "orders"); err != nil || ok {
		t.Fatalf("empty cache: ok=%v err=%v, want miss", ok, err)
	}

	if err := s.SaveSnapshot("seller", "orders", []byte(`[{"order_id":1}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, ok, err := s.LoadSnapshot("seller", "orders")
	if err != nil || !ok || string(raw) != `[{"order_id":1}]` {
		t.Errorf("load = %q ok=%v err=%v", raw, ok, err)
	}

	// Upsert replaces.
	if err := s.SaveSnapshot("seller", "orders", []byte(`[]`)); err != nil {
		t.Fatalf("second save: %v", err)
	}
	raw, _, _ = s.LoadSnapshot("seller", "orders")
	if string(raw) != `[]` {
		t.Errorf("after upsert = %q, want []", raw)
	}
}

func TestSnapshotIsolatedPerPath(t *testing.T) {
	s := testStore(t)
	s.SaveSnapshot("seller", "orders", []byte(`1`))
	s.SaveSnapshot("seller", "products", []byte(`2`))
	s.SaveSnapshot("other", "orders", []byte(`3`))

	raw, _, _ := s.LoadSnapshot("seller", "orders")
	if string(raw) != `1` {
		t.Errorf("seller/orders = %q, want 1", raw)
	}
}

func TestDigestLedger(t *testing.T) {
	s := testStore(t)

	sent, err := s.DigestSent("seller", "2026-08-31")
	if err != nil || sent {
		t.Fatalf("fresh ledger: sent=%v err=%v", sent, err)
	}
	if err := s.RecordDigest("seller", "2026-08-31"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if sent, _ := s.DigestSent("seller", "2026-08-31"); !sent {
		t.Error("digest should be recorded")
	}
	// Same-day rerun is a no-op, not an error.
	if err := s.RecordDigest("seller", "2026-08-31"); err != nil {
		t.Errorf("duplicate record should be ignored: %v", err)
	}
	if sent, _ := s.DigestSent("seller", "2026-09-01"); sent {
		t.Error("next day should not be marked sent")
	}
}
