package config

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            string
	APIBaseURL      string // remote commerce backend, e.g. https://platform.example.com/api
	FirebaseDBURL   string // realtime database root URL
	FirebaseCreds   string // path to the service account JSON, empty for ADC
	SellerID        string // seller identity, usually the account email
	CachePath       string // sqlite snapshot cache
	SessionKey      []byte
	CSRFKey         []byte
	CookieDomain    string
	CookieSecure    bool
	ListenerBackoff time.Duration // initial realtime reconnect delay
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8585"),
		APIBaseURL:      getEnv("API_BASE_URL", "http://localhost:5000/api"),
		FirebaseDBURL:   getEnv("FIREBASE_DB_URL", ""),
		FirebaseCreds:   getEnv("FIREBASE_CREDENTIALS", ""),
		SellerID:        getEnv("SELLER_ID", ""),
		CachePath:       getEnv("CACHE_PATH", "./sellerdesk.db"),
		CookieDomain:    getEnv("COOKIE_DOMAIN", ""),
		CookieSecure:    getEnv("COOKIE_SECURE", "false") == "true",
		ListenerBackoff: time.Second,
	}

	if cfg.SellerID == "" {
		return nil, errors.New("SELLER_ID must be set")
	}

	cfg.SessionKey = loadKey("SESSION_KEY")
	cfg.CSRFKey = loadKey("CSRF_KEY")

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", os.Getenv("PORT"))
		cfg.Port = "8585"
	}

	if backoff := os.Getenv("LISTENER_BACKOFF"); backoff != "" {
		if d, err := time.ParseDuration(backoff); err == nil && d > 0 {
			cfg.ListenerBackoff = d
		} else {
			slog.Warn("Invalid LISTENER_BACKOFF, keeping default", "value", backoff)
		}
	}

	return cfg, nil
}

// loadKey reads a base64 key from the environment, falling back to a random
// key for development. Random keys invalidate sessions on every restart.
func loadKey(name string) []byte {
	raw := os.Getenv(name)
	if raw == "" {
		slog.Warn(name + " not set. Generating a random key for development. PLEASE SET " + name + " IN PRODUCTION!")
		return generateRandomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(decoded) < 32 {
		slog.Warn(name + " is invalid or too short (min 32 bytes). Generating a random key for development.")
		return generateRandomBytes(32)
	}
	return decoded
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func generateRandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		slog.Error("Failed to read random bytes", "error", err)
		// Panic-prevention fallback only, never for production use.
		fallbackKey := "fallback-insecure-key-" + strconv.FormatInt(time.Now().UnixNano(), 10)
		if len(fallbackKey) < n {
			padded := make([]byte, n)
			copy(padded, fallbackKey)
			return padded
		}
		return []byte(fallbackKey)[:n]
	}
	return b
}
