package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

type CustomerHandler struct {
	*Base
}

// ListCustomers shows the per-phone rollup, most recent order first.
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	view := h.view()
	h.render(w, r, "customers.html", map[string]interface{}{
		"Customers": view.Customers,
	})
}

// Chat renders the stored WhatsApp conversation for one customer.
func (h *CustomerHandler) Chat(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		http.Error(w, "Missing phone", http.StatusBadRequest)
		return
	}

	messages, err := h.Hub.Conversation(r.Context(), phone)
	if err != nil {
		slog.Error("Failed to load conversation", "phone", phone, "error", err)
	}

	name := phone
	for _, c := range h.view().Customers {
		if c.Phone == phone {
			name = c.Name
			break
		}
	}

	h.render(w, r, "customer_chat.html", map[string]interface{}{
		"Phone":    phone,
		"Name":     name,
		"Messages": messages,
	})
}

func (h *CustomerHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	phone := r.FormValue("phone")
	text := strings.TrimSpace(r.FormValue("message"))
	back := "/customers/chat?phone=" + url.QueryEscape(phone)
	if phone == "" || text == "" {
		h.flashError(w, r, nil, "Message cannot be empty.", back)
		return
	}

	if err := h.apiFor(r).SendMessage(r.Context(), phone, text); err != nil {
		RecordWrite("message_send", false)
		h.flashError(w, r, err, "Failed to send message.", back)
		return
	}
	RecordWrite("message_send", true)
	h.flashSuccess(w, r, "Message sent.", back)
}
