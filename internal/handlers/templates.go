package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"sellerdesk/internal/models"
	"sellerdesk/internal/notify"
)

// TemplateCache holds parsed templates
type TemplateCache struct {
	cache map[string]*template.Template
	mu    sync.RWMutex
	funcs template.FuncMap
}

func NewTemplateCache() *TemplateCache {
	return &TemplateCache{
		cache: make(map[string]*template.Template),
		funcs: make(template.FuncMap),
	}
}

func (tc *TemplateCache) AddFunc(name string, fn interface{}) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.funcs[name] = fn
}

// Load parses all templates in the templates/ dir
func (tc *TemplateCache) Load(dir string) error {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	// Global template functions
	tc.funcs["inr"] = notify.FormatINR
	tc.funcs["pct"] = func(v float64) string {
		if v >= 0 {
			return "+" + trimFloat(v) + "%"
		}
		return trimFloat(v) + "%"
	}
	tc.funcs["inc"] = func(i int) int { return i + 1 }
	tc.funcs["dec"] = func(i int) int { return i - 1 }
	tc.funcs["featuresJSON"] = func(features []models.FeatureDef) string {
		data, err := json.Marshal(features)
		if err != nil {
			return ""
		}
		return string(data)
	}
	tc.funcs["nextStatus"] = func(status string) string {
		statuses := models.OrderStatuses()
		for i, s := range statuses {
			if s == status && i+1 < len(statuses) && statuses[i+1] != models.OrderCancelled {
				return statuses[i+1]
			}
		}
		return status
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return err
	}
	for _, file := range files {
		name := filepath.Base(file)
		tmpl, err := template.New(name).Funcs(tc.funcs).ParseFiles(file)
		if err != nil {
			slog.Error("Failed to parse template", "file", file, "error", err)
			return err
		}
		tc.cache[name] = tmpl
		slog.Debug("Cached template", "name", name)
	}
	return nil
}

func (tc *TemplateCache) Get(name string) *template.Template {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.cache[name]
}

// trimFloat renders a percentage with one decimal place, dropping ".0".
func trimFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}
