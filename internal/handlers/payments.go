package handlers

import (
	"net/http"

	"sellerdesk/internal/aggregate"
	"sellerdesk/internal/models"
)

type PaymentHandler struct {
	*Base
}

// Payments shows the received/outstanding split plus the orders behind each
// bucket so the operator can chase the outstanding ones.
func (h *PaymentHandler) Payments(w http.ResponseWriter, r *http.Request) {
	view := h.view()
	orders, _ := h.Hub.Orders()
	orders = aggregate.SortOrders(orders, aggregate.SortNewest)

	var received, outstanding []models.Order
	for _, o := range orders {
		switch o.PaymentStatus {
		case models.PaymentCompleted:
			received = append(received, o)
		case models.PaymentPending, models.PaymentRequested, models.PaymentVerified:
			outstanding = append(outstanding, o)
		}
	}

	h.render(w, r, "payments.html", map[string]interface{}{
		"Summary":     view.Payments,
		"Received":    received,
		"Outstanding": outstanding,
	})
}
