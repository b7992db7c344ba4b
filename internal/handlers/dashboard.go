package handlers

import (
	"net/http"

	"sellerdesk/internal/aggregate"
)

type DashboardHandler struct {
	*Base
}

// Dashboard renders the headline stats, the 7-day revenue sparkline and the
// five most recent orders, all derived from the realtime snapshots. Nothing
// here calls the backend; a dead connection shows the last-known numbers.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	view := h.view()
	orders, _ := h.Hub.Orders()

	var peak float64
	for _, p := range view.Series {
		if p.Revenue > peak {
			peak = p.Revenue
		}
	}

	session := h.session(r)
	name, _ := session.Values["seller_name"].(string)

	h.render(w, r, "dashboard.html", map[string]interface{}{
		"SellerName":     name,
		"Stats":          view.Stats,
		"Series":         view.Series,
		"SeriesPeak":     peak,
		"RecentActivity": aggregate.RecentOrders(orders, 5),
	})
}
