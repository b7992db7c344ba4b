package handlers

import (
	"net/http"
	"strconv"

	"sellerdesk/internal/models"
	"sellerdesk/internal/notify"
)

type CancellationHandler struct {
	*Base
}

func (h *CancellationHandler) ListCancellations(w http.ResponseWriter, r *http.Request) {
	requests, err := h.apiFor(r).ListCancellations(r.Context())
	if err != nil {
		h.flashError(w, r, err, "Could not load cancellation requests.", "/")
		return
	}

	var pending, resolved []models.CancellationRequest
	for _, req := range requests {
		if req.Status == "pending" {
			pending = append(pending, req)
		} else {
			resolved = append(resolved, req)
		}
	}

	h.render(w, r, "cancellations.html", map[string]interface{}{
		"Pending":  pending,
		"Resolved": resolved,
	})
}

// ComposeResolution shows the decision form with the notification message
// prefilled, editable before sending.
func (h *CancellationHandler) ComposeResolution(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}
	approve := r.URL.Query().Get("decision") == "approve"

	requests, err := h.apiFor(r).ListCancellations(r.Context())
	if err != nil {
		h.flashError(w, r, err, "Could not load cancellation requests.", "/cancellations")
		return
	}
	var req *models.CancellationRequest
	for i := range requests {
		if requests[i].OrderID == orderID {
			req = &requests[i]
			break
		}
	}
	if req == nil {
		http.Error(w, "Cancellation request not found", http.StatusNotFound)
		return
	}

	h.render(w, r, "cancellation_compose.html", map[string]interface{}{
		"Request": req,
		"Approve": approve,
		"Message": notify.CancellationMessage(*req, approve),
	})
}

func (h *CancellationHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(r.FormValue("order_id"))
	if err != nil {
		h.flashError(w, r, err, "Invalid order ID.", "/cancellations")
		return
	}
	approve := r.FormValue("decision") == "approve"
	message := r.FormValue("message")

	if err := h.apiFor(r).ResolveCancellation(r.Context(), orderID, approve, message); err != nil {
		RecordWrite("cancellation_resolve", false)
		h.flashError(w, r, err, "Could not resolve cancellation request.", "/cancellations")
		return
	}
	RecordWrite("cancellation_resolve", true)
	if approve {
		h.flashSuccess(w, r, "Cancellation approved.", "/cancellations")
	} else {
		h.flashSuccess(w, r, "Cancellation rejected.", "/cancellations")
	}
}
