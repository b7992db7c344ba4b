package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"sellerdesk/internal/api"
)

type AuthHandler struct {
	*Base
}

func (h *AuthHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login.html", nil)
}

// LoginPost relays credentials to the backend. The form carries either a
// Google ID token (from the sign-in widget) or an email/password pair; the
// backend verifies either and answers with its session cookie, which is the
// only credential this server holds onto.
func (h *AuthHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)

	var remote string
	var err error
	if credential := r.FormValue("credential"); credential != "" {
		remote, err = h.API.GoogleAuth(r.Context(), credential)
	} else {
		remote, err = h.API.Login(r.Context(), r.FormValue("email"), r.FormValue("password"))
	}
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			session.AddFlash(FlashMessage{Type: "error", Message: "Invalid credentials"})
		} else {
			slog.Error("Login failed", "error", err)
			session.AddFlash(FlashMessage{Type: "error", Message: "Login failed. Please try again."})
		}
		session.Save(r, w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	session.Values["authenticated"] = true
	session.Values["remote_session"] = remote
	session.Options.Path = "/"

	// A seller who never finished onboarding goes there first.
	info, err := h.API.WithSession(remote).SellerInfo(r.Context())
	if err != nil {
		slog.Warn("Could not load seller info after login", "error", err)
	}
	session.Values["seller_name"] = info.Name

	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	if err == nil && !info.Onboarded {
		http.Redirect(w, r, "/onboarding", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.apiFor(r).Logout(r.Context()); err != nil && !errors.Is(err, api.ErrUnauthorized) {
		slog.Warn("Remote logout failed", "error", err)
	}
	session := h.session(r)
	session.Values["authenticated"] = false
	session.Options.MaxAge = -1 // Expire immediately
	session.Save(r, w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) OnboardingGet(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "onboarding.html", nil)
}

func (h *AuthHandler) OnboardingPost(w http.ResponseWriter, r *http.Request) {
	form := api.OnboardingForm{
		BusinessName: r.FormValue("business_name"),
		Phone:        r.FormValue("phone"),
		Category:     r.FormValue("category"),
		UPIId:        r.FormValue("upi_id"),
		Description:  r.FormValue("description"),
	}
	if form.BusinessName == "" || form.Phone == "" {
		h.flashError(w, r, nil, "Business name and phone are required.", "/onboarding")
		return
	}

	if err := h.apiFor(r).Onboard(r.Context(), form); err != nil {
		RecordWrite("onboarding", false)
		h.flashError(w, r, err, "Could not complete onboarding.", "/onboarding")
		return
	}
	RecordWrite("onboarding", true)
	h.flashSuccess(w, r, "Welcome aboard!", "/")
}
