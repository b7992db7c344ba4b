package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"sellerdesk/internal/models"
)

type IntegrationHandler struct {
	*Base
}

// Integrations shows Razorpay and WhatsApp connection state. Either status
// call failing renders the page with that integration marked disconnected
// rather than blanking the whole screen.
func (h *IntegrationHandler) Integrations(w http.ResponseWriter, r *http.Request) {
	client := h.apiFor(r)

	razorpay, err := client.RazorpayStatus(r.Context())
	if err != nil {
		if redirected := h.handleAuthError(w, r, err); redirected {
			return
		}
		slog.Warn("Razorpay status unavailable", "error", err)
		razorpay = models.RazorpayStatus{}
	}

	whatsapp, err := client.WhatsAppStatus(r.Context())
	if err != nil {
		slog.Warn("WhatsApp status unavailable", "error", err)
		whatsapp = models.WhatsAppStatus{}
	}

	h.render(w, r, "integrations.html", map[string]interface{}{
		"Razorpay": razorpay,
		"WhatsApp": whatsapp,
	})
}

func (h *IntegrationHandler) ConnectRazorpay(w http.ResponseWriter, r *http.Request) {
	keyID := strings.TrimSpace(r.FormValue("key_id"))
	keySecret := strings.TrimSpace(r.FormValue("key_secret"))
	if keyID == "" || keySecret == "" {
		h.flashError(w, r, nil, "Both key ID and secret are required.", "/integrations")
		return
	}

	if err := h.apiFor(r).SetRazorpayCredentials(r.Context(), keyID, keySecret); err != nil {
		RecordWrite("razorpay_connect", false)
		h.flashError(w, r, err, "Could not save Razorpay credentials.", "/integrations")
		return
	}
	RecordWrite("razorpay_connect", true)
	h.flashSuccess(w, r, "Razorpay connected.", "/integrations")
}

func (h *IntegrationHandler) DisconnectRazorpay(w http.ResponseWriter, r *http.Request) {
	if err := h.apiFor(r).RazorpayDisconnect(r.Context()); err != nil {
		RecordWrite("razorpay_disconnect", false)
		h.flashError(w, r, err, "Could not disconnect Razorpay.", "/integrations")
		return
	}
	RecordWrite("razorpay_disconnect", true)
	h.flashSuccess(w, r, "Razorpay disconnected.", "/integrations")
}

func (h *IntegrationHandler) SetWhatsApp(w http.ResponseWriter, r *http.Request) {
	client := h.apiFor(r)
	var err error
	var operation, success string
	if r.FormValue("active") == "true" {
		operation, success = "whatsapp_activate", "WhatsApp activated."
		err = client.WhatsAppActivate(r.Context())
	} else {
		operation, success = "whatsapp_deactivate", "WhatsApp deactivated."
		err = client.WhatsAppDeactivate(r.Context())
	}

	if err != nil {
		RecordWrite(operation, false)
		h.flashError(w, r, err, "Could not update WhatsApp status.", "/integrations")
		return
	}
	RecordWrite(operation, true)
	h.flashSuccess(w, r, success, "/integrations")
}

// handleAuthError redirects to login on an expired remote session.
func (h *IntegrationHandler) handleAuthError(w http.ResponseWriter, r *http.Request, err error) bool {
	if isUnauthorized(err) {
		h.redirectToLogin(w, r)
		return true
	}
	return false
}
