package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"sellerdesk/internal/aggregate"
	"sellerdesk/internal/api"
	"sellerdesk/internal/realtime"
)

const sessionName = "admin-session"

// nowFunc is swapped in tests.
var nowFunc = time.Now

// Base carries what every screen handler needs. Screen handlers embed it;
// the same instance is shared so the selector memo and the hub are global.
type Base struct {
	API          *api.Client
	Hub          *realtime.Hub
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
	Selector     *aggregate.Selector
}

func (b *Base) session(r *http.Request) *sessions.Session {
	session, _ := b.SessionStore.Get(r, sessionName)
	return session
}

// apiFor binds the shared client to this operator's remote session.
func (b *Base) apiFor(r *http.Request) *api.Client {
	session := b.session(r)
	remote, _ := session.Values["remote_session"].(string)
	return b.API.WithSession(remote)
}

// render executes a page template with the common keys (CsrfField, Flashes)
// merged in. Saving the session here clears consumed flashes.
func (b *Base) render(w http.ResponseWriter, r *http.Request, name string, data map[string]interface{}) {
	tmpl := b.Templates.Get(name)
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	if data == nil {
		data = map[string]interface{}{}
	}
	session := b.session(r)
	data["CsrfField"] = csrf.TemplateField(r)
	data["Flashes"] = GetFlash(session)
	session.Save(r, w)
	if err := tmpl.Execute(w, data); err != nil {
		slog.Error("Failed to render template", "template", name, "error", err)
	}
}

func isUnauthorized(err error) bool {
	return errors.Is(err, api.ErrUnauthorized)
}

// flashError records a write failure and redirects. An expired remote
// session redirects to login instead, a 401 anywhere means the session
// is gone.
func (b *Base) flashError(w http.ResponseWriter, r *http.Request, err error, message, redirect string) {
	if isUnauthorized(err) {
		b.redirectToLogin(w, r)
		return
	}
	slog.Error(message, "error", err, "path", r.URL.Path)
	session := b.session(r)
	session.AddFlash(FlashMessage{Type: "error", Message: message})
	session.Save(r, w)
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

func (b *Base) flashSuccess(w http.ResponseWriter, r *http.Request, message, redirect string) {
	session := b.session(r)
	session.AddFlash(FlashMessage{Type: "success", Message: message})
	session.Save(r, w)
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

func (b *Base) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	session := b.session(r)
	session.Values["authenticated"] = false
	session.AddFlash(FlashMessage{Type: "error", Message: "Your session has expired. Please log in again."})
	session.Save(r, w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// AuthMiddleware ensures the operator is logged in.
func (b *Base) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := b.session(r)
		if auth, ok := session.Values["authenticated"].(bool); !ok || !auth {
			session.AddFlash(FlashMessage{Type: "error", Message: "You must be logged in to access this page."})
			session.Save(r, w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// view recomputes (or reuses, via the memoized selector) the aggregate view
// models from the current snapshots.
func (b *Base) view() aggregate.View {
	orders, ordersVer := b.Hub.Orders()
	products, productsVer := b.Hub.Products()
	buyers, buyersVer := b.Hub.Buyers()
	known, customersVer := b.Hub.Customers()
	return b.Selector.Select(orders, products, buyers, known, ordersVer, productsVer, buyersVer, customersVer, nowFunc())
}
