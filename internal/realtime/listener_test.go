package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func sseServer(t *testing.T, events []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "text/event-stream" {
			t.Errorf("missing event-stream accept header")
		}
		w.Header().Set("Content-Type", "text/event-stream")
		for _, ev := range events {
			fmt.Fprint(w, ev)
		}
	}))
}

func TestListenerAppliesFullPuts(t *testing.T) {
	srv := sseServer(t, []string{
		"event: put\ndata: {\"path\":\"/\",\"data\":[{\"order_id\":1}]}\n\n",
		"event: keep-alive\ndata: null\n\n",
		"event: put\ndata: {\"path\":\"/\",\"data\":[{\"order_id\":1},{\"order_id\":2}]}\n\n",
	})
	defer srv.Close()

	var applied []json.RawMessage
	l := &Listener{
		kind:   "orders",
		url:    srv.URL,
		client: srv.Client(),
		apply: func(raw json.RawMessage) {
			applied = append(applied, raw)
		},
		backoff: time.Millisecond,
	}

	err := l.stream(context.Background())
	if err == nil {
		t.Fatal("stream should report an error when the server closes")
	}
	if len(applied) != 2 {
		t.Fatalf("applied %d snapshots, want 2 (keep-alive ignored)", len(applied))
	}
	var orders []struct {
		OrderID int `json:"order_id"`
	}
	if err := json.Unmarshal(applied[1], &orders); err != nil || len(orders) != 2 {
		t.Errorf("second snapshot = %s", applied[1])
	}
}

func TestListenerRefetchesOnPartialUpdate(t *testing.T) {
	srv := sseServer(t, []string{
		"event: put\ndata: {\"path\":\"/3\",\"data\":{\"order_id\":3}}\n\n",
	})
	defer srv.Close()

	fetched := false
	var applied []json.RawMessage
	l := &Listener{
		kind:   "orders",
		url:    srv.URL,
		client: srv.Client(),
		fetch: func(ctx context.Context) (json.RawMessage, error) {
			fetched = true
			return json.RawMessage(`[{"order_id":3}]`), nil
		},
		apply: func(raw json.RawMessage) {
			applied = append(applied, raw)
		},
		backoff: time.Millisecond,
	}

	l.stream(context.Background())

	if !fetched {
		t.Error("partial put should trigger a full refetch")
	}
	if len(applied) != 1 || string(applied[0]) != `[{"order_id":3}]` {
		t.Errorf("applied = %v, want the refetched snapshot", applied)
	}
}

func TestListenerRejectsNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	l := &Listener{kind: "orders", url: srv.URL, client: srv.Client(), backoff: time.Millisecond}
	if err := l.stream(context.Background()); err == nil {
		t.Error("non-200 stream should error")
	}
}
