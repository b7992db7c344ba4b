package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"sellerdesk/internal/aggregate"
	"sellerdesk/internal/api"
	"sellerdesk/internal/models"
	"sellerdesk/internal/notify"
)

type OrderHandler struct {
	*Base
}

// ListOrders renders the filtered, sorted order table. Filters and the sort
// key live in the query string so the page is shareable and re-renders are
// a pure recompute over the current snapshot.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	statusFilter := r.URL.Query().Get("status")
	paymentFilter := r.URL.Query().Get("payment")
	sortKey := aggregate.SortKey(r.URL.Query().Get("sort"))
	if sortKey == "" {
		sortKey = aggregate.SortNewest
	}

	orders, _ := h.Hub.Orders()
	filtered := aggregate.FilterSort(orders, statusFilter, paymentFilter, sortKey)

	h.render(w, r, "orders.html", map[string]interface{}{
		"Orders":          filtered,
		"StatusFilter":    statusFilter,
		"PaymentFilter":   paymentFilter,
		"Sort":            string(sortKey),
		"OrderStatuses":   models.OrderStatuses(),
		"PaymentStatuses": models.PaymentStatuses(),
	})
}

// ComposeUpdate shows the notification message, prefilled from the order
// and the target transition, for the operator to edit before sending.
func (h *OrderHandler) ComposeUpdate(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}
	kind := r.URL.Query().Get("type") // "status" or "payment"
	newStatus := r.URL.Query().Get("to")

	order, ok := h.findOrder(orderID)
	if !ok {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	channel, upiID := h.paymentChannel(r)
	var message string
	if kind == "payment" {
		message = notify.PaymentMessage(order, newStatus, channel, upiID)
	} else {
		kind = "status"
		message = notify.StatusMessage(order, newStatus)
	}

	h.render(w, r, "order_compose.html", map[string]interface{}{
		"Order":     order,
		"Type":      kind,
		"NewStatus": newStatus,
		"Message":   message,
		"Gateway":   channel == notify.ChannelGateway,
	})
}

// SubmitUpdate proxies the transition to the backend. For gateway payment
// requests the custom message is withheld so the backend can generate the
// real payment link; everything else sends the operator-edited text.
func (h *OrderHandler) SubmitUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB
		h.flashError(w, r, err, "Invoice too large. Max 10MB.", "/orders")
		return
	}

	orderID, err := strconv.Atoi(r.FormValue("order_id"))
	if err != nil {
		h.flashError(w, r, err, "Invalid order ID.", "/orders")
		return
	}
	kind := r.FormValue("type")
	newStatus := r.FormValue("new_status")
	message := r.FormValue("custom_message")

	update := api.OrderUpdate{}
	if kind == "payment" {
		update.PaymentStatus = newStatus
	} else {
		update.OrderStatus = newStatus
	}

	channel, _ := h.paymentChannel(r)
	gatewayRequest := kind == "payment" && newStatus == models.PaymentRequested && channel == notify.ChannelGateway
	if !gatewayRequest {
		update.CustomMessage = message
	}

	if kind == "payment" && newStatus == models.PaymentRequested {
		if file, header, err := r.FormFile("invoice"); err == nil {
			defer file.Close()
			update.Invoice = file
			update.InvoiceName = header.Filename
		}
	}

	if err := h.apiFor(r).UpdateOrder(r.Context(), orderID, update); err != nil {
		RecordWrite("order_update", false)
		h.flashError(w, r, err, "Failed to update order.", "/orders")
		return
	}
	RecordWrite("order_update", true)
	h.flashSuccess(w, r, "Order updated and customer notified.", "/orders")
}

func (h *OrderHandler) findOrder(orderID int) (models.Order, bool) {
	orders, _ := h.Hub.Orders()
	for _, o := range orders {
		if o.OrderID == orderID {
			return o, true
		}
	}
	return models.Order{}, false
}

// paymentChannel resolves which payment-request wording applies: automated
// gateway when Razorpay is connected and enabled, UPI when the company has
// an id, contact-seller otherwise. Lookup failures degrade to the fallback
// wording rather than blocking the screen.
func (h *OrderHandler) paymentChannel(r *http.Request) (notify.PaymentChannel, string) {
	client := h.apiFor(r)

	if status, err := client.RazorpayStatus(r.Context()); err == nil {
		if status.Connected && status.Enabled {
			return notify.ChannelGateway, ""
		}
	} else {
		slog.Warn("Failed to fetch Razorpay status", "error", err)
	}

	if company, err := client.GetCompany(r.Context()); err == nil && company.UPIId != "" {
		return notify.ChannelUPI, company.UPIId
	} else if err != nil {
		slog.Warn("Failed to fetch company info", "error", err)
	}

	return notify.ChannelContactSeller, ""
}
