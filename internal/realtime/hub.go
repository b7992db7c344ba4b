// Package realtime mirrors the platform's realtime database into local
// snapshot state. Each subscribed path is replaced wholesale on every event;
// independent paths update in any order and readers tolerate transient
// inconsistency between them, because the aggregators downstream recompute
// from full snapshots.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"
	apihttp "google.golang.org/api/transport/http"

	"sellerdesk/internal/models"
)

// SnapshotCache persists the last-known raw snapshot per path so a restart
// can render stale data while listeners reconnect.
type SnapshotCache interface {
	SaveSnapshot(seller, path string, raw []byte) error
	LoadSnapshot(seller, path string) ([]byte, bool, error)
}

type Hub struct {
	sellerKey string
	dbURL     string
	dbc       *db.Client
	stream    *http.Client
	cache     SnapshotCache
	backoff   time.Duration
	cancel    context.CancelFunc

	mu           sync.RWMutex
	orders       []models.Order
	ordersVer    uint64
	products     []models.Product
	productsVer  uint64
	customers    []string
	customersVer uint64
	buyers       map[string]models.Buyer
	buyersVer    uint64
}

var streamScopes = []string{
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/firebase.database",
}

// NewHub builds the database clients for one seller. sellerID is the raw
// email identity; it is sanitized here, once, for every path the hub touches.
func NewHub(ctx context.Context, sellerID, dbURL, credsFile string, backoff time.Duration, cache SnapshotCache) (*Hub, error) {
	var opts []option.ClientOption
	if credsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: dbURL}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	dbc, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("database client: %w", err)
	}

	streamOpts := append(opts, option.WithScopes(streamScopes...))
	streamClient, _, err := apihttp.NewClient(ctx, streamOpts...)
	if err != nil {
		return nil, fmt.Errorf("stream client: %w", err)
	}

	return &Hub{
		sellerKey: SafeKey(sellerID),
		dbURL:     strings.TrimSuffix(dbURL, "/"),
		dbc:       dbc,
		stream:    streamClient,
		cache:     cache,
		backoff:   backoff,
	}, nil
}

// Start loads cached snapshots and opens one listener per fixed path. It
// returns immediately; listeners run until Close.
func (h *Hub) Start(ctx context.Context) {
	ctx, h.cancel = context.WithCancel(ctx)

	paths := []struct {
		kind  string
		path  string
		apply func(json.RawMessage)
	}{
		{"orders", h.sellerPath("orders"), h.applyOrders},
		{"products", h.sellerPath("products"), h.applyProducts},
		{"customers", h.sellerPath("customers"), h.applyCustomers},
		{"buyers", "buyers", h.applyBuyers},
	}

	for _, p := range paths {
		if h.cache != nil {
			if raw, ok, err := h.cache.LoadSnapshot(h.sellerKey, p.kind); err != nil {
				slog.Error("Failed to load cached snapshot", "path", p.kind, "error", err)
			} else if ok {
				p.apply(raw)
				slog.Debug("Loaded cached snapshot", "path", p.kind, "bytes", len(raw))
			}
		}

		l := &Listener{
			kind:    p.kind,
			url:     h.dbURL + "/" + p.path + ".json",
			client:  h.stream,
			fetch:   h.fetcher(p.path),
			apply:   h.persisting(p.kind, p.apply),
			backoff: h.backoff,
		}
		go l.run(ctx)
	}
}

// Close tears down every listener. Guaranteed on shutdown so no callback
// outlives the hub.
func (h *Hub) Close() {
	if h.cancel != nil {
		h.cancel()
	}
}

func (h *Hub) sellerPath(leaf string) string {
	return "sellers/" + h.sellerKey + "/" + leaf
}

func (h *Hub) fetcher(path string) func(ctx context.Context) (json.RawMessage, error) {
	return func(ctx context.Context) (json.RawMessage, error) {
		var raw json.RawMessage
		if err := h.dbc.NewRef(path).Get(ctx, &raw); err != nil {
			return nil, err
		}
		return raw, nil
	}
}

func (h *Hub) persisting(kind string, apply func(json.RawMessage)) func(json.RawMessage) {
	return func(raw json.RawMessage) {
		apply(raw)
		if h.cache != nil {
			if err := h.cache.SaveSnapshot(h.sellerKey, kind, raw); err != nil {
				slog.Error("Failed to cache snapshot", "path", kind, "error", err)
			}
		}
	}
}

func (h *Hub) applyOrders(raw json.RawMessage) {
	decoded := decodeOrders(raw)
	h.mu.Lock()
	h.orders = decoded
	h.ordersVer++
	h.mu.Unlock()
}

func (h *Hub) applyProducts(raw json.RawMessage) {
	decoded := decodeProducts(raw)
	h.mu.Lock()
	h.products = decoded
	h.productsVer++
	h.mu.Unlock()
}

func (h *Hub) applyCustomers(raw json.RawMessage) {
	decoded := decodeCustomers(raw)
	h.mu.Lock()
	h.customers = decoded
	h.customersVer++
	h.mu.Unlock()
}

func (h *Hub) applyBuyers(raw json.RawMessage) {
	decoded := decodeBuyers(raw)
	h.mu.Lock()
	h.buyers = decoded
	h.buyersVer++
	h.mu.Unlock()
}

// Orders returns the current snapshot and its version. The slice is shared;
// callers must not mutate it.
func (h *Hub) Orders() ([]models.Order, uint64) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.orders, h.ordersVer
}

func (h *Hub) Products() ([]models.Product, uint64) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.products, h.productsVer
}

func (h *Hub) Customers() ([]string, uint64) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.customers, h.customersVer
}

func (h *Hub) Buyers() (map[string]models.Buyer, uint64) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.buyers, h.buyersVer
}

// Conversation reads the chat history subtree for one buyer phone, ordered
// by timestamp. A one-shot read: conversation views are request-scoped, so
// no long-lived per-phone listener is held.
func (h *Hub) Conversation(ctx context.Context, phone string) ([]models.ConversationMessage, error) {
	path := h.sellerPath("conv_history") + "/" + SafeKey(phone)
	var raw json.RawMessage
	if err := h.dbc.NewRef(path).Get(ctx, &raw); err != nil {
		return nil, fmt.Errorf("conversation %s: %w", SafeKey(phone), err)
	}
	return decodeConversation(raw), nil
}
