package realtime

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	snapshotEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sellerdesk_snapshot_events_total",
			Help: "Realtime snapshot events applied, per path kind",
		},
		[]string{"path"},
	)

	listenerReconnects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sellerdesk_listener_reconnects_total",
			Help: "Realtime listener reconnect attempts, per path kind",
		},
		[]string{"path"},
	)
)

// streamEvent is one server-sent event from the database REST stream.
// A put at path "/" carries the full value of the subscribed location;
// anything else means partial change and the listener refetches the whole
// path, keeping the snapshot-replaces-state contract.
type streamEvent struct {
	Path string          `json:"path"`
	Data json.RawMessage `json:"data"`
}

// Listener consumes the event stream of one database path and hands every
// full-value snapshot to its callback. It reconnects forever with capped
// exponential backoff until the context is cancelled.
type Listener struct {
	kind    string // metric label: orders, products, customers, buyers
	url     string // full .json URL of the subscribed path
	client  *http.Client
	fetch   func(ctx context.Context) (json.RawMessage, error) // one-shot re-read of the path
	apply   func(raw json.RawMessage)
	backoff time.Duration
}

const maxBackoff = time.Minute

func (l *Listener) run(ctx context.Context) {
	delay := l.backoff
	for {
		err := l.stream(ctx)
		if ctx.Err() != nil {
			return
		}
		listenerReconnects.WithLabelValues(l.kind).Inc()
		slog.Warn("Realtime listener disconnected, retrying", "path", l.kind, "delay", delay, "error", err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		delay *= 2
		if delay > maxBackoff {
			delay = maxBackoff
		}
	}
}

func (l *Listener) stream(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := l.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream returned status %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 8*1024*1024)

	var event string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			l.handle(ctx, event, strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return fmt.Errorf("stream closed")
}

func (l *Listener) handle(ctx context.Context, event, data string) {
	switch event {
	case "put", "patch":
	case "keep-alive", "":
		return
	case "cancel", "auth_revoked":
		slog.Warn("Realtime stream interrupted by server", "path", l.kind, "event", event)
		return
	default:
		return
	}

	var ev streamEvent
	if err := json.Unmarshal([]byte(data), &ev); err != nil {
		slog.Error("Failed to decode stream event", "path", l.kind, "error", err)
		return
	}

	if event == "put" && ev.Path == "/" {
		l.apply(ev.Data)
		snapshotEvents.WithLabelValues(l.kind).Inc()
		return
	}

	// Partial update: re-read the whole path so local state is still a full
	// replacement, never a patch.
	raw, err := l.fetch(ctx)
	if err != nil {
		slog.Error("Failed to refetch after partial update", "path", l.kind, "error", err)
		return
	}
	l.apply(raw)
	snapshotEvents.WithLabelValues(l.kind).Inc()
}
