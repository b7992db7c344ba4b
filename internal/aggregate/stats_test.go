package aggregate

import (
	"testing"
	"time"

	"sellerdesk/internal/models"
)

func TestPercentChange(t *testing.T) {
	cases := []struct {
		name              string
		current, previous float64
		want              float64
	}{
		{"zero baseline with activity", 50, 0, 100},
		{"both zero", 0, 0, 0},
		{"growth", 150, 100, 50},
		{"decline", 50, 100, -50},
		{"doubling", 100, 50, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PercentChange(tc.current, tc.previous); got != tc.want {
				t.Errorf("PercentChange(%v, %v) = %v, want %v", tc.current, tc.previous, got, tc.want)
			}
		})
	}
}

func TestComputeStatsMonthPartition(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	orders := []models.Order{
		{OrderID: 1, BuyerPhone: "911", TotalAmount: 100, CreatedAt: "2026-08-10T10:00:00Z"},
		{OrderID: 2, BuyerPhone: "922", TotalAmount: 50, CreatedAt: "2026-07-20T10:00:00Z"},
	}

	stats := ComputeStats(orders, nil, now)

	if stats.Revenue != 150 {
		t.Errorf("total revenue = %v, want 150", stats.Revenue)
	}
	if stats.RevenueChange != 100 {
		t.Errorf("revenue change = %v, want 100", stats.RevenueChange)
	}
	if stats.Orders != 2 || stats.Customers != 2 {
		t.Errorf("orders/customers = %d/%d, want 2/2", stats.Orders, stats.Customers)
	}
	if stats.OrdersChange != 0 {
		t.Errorf("orders change = %v, want 0 (one order each month)", stats.OrdersChange)
	}
}

func TestComputeStatsIgnoresUnparseableDates(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	orders := []models.Order{
		{OrderID: 1, BuyerPhone: "911", TotalAmount: 100, CreatedAt: "not-a-date"},
	}

	stats := ComputeStats(orders, nil, now)

	// Still counted in the overall totals, just bucketed in no month.
	if stats.Revenue != 100 || stats.Orders != 1 {
		t.Errorf("revenue/orders = %v/%d, want 100/1", stats.Revenue, stats.Orders)
	}
	if stats.RevenueChange != 0 {
		t.Errorf("revenue change = %v, want 0", stats.RevenueChange)
	}
}

func TestComputeStatsLegacyAmountFallback(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	orders := []models.Order{
		{OrderID: 1, BuyerPhone: "911", Amount: 75, CreatedAt: "2026-08-01T00:00:00Z"},
	}
	if got := ComputeStats(orders, nil, now).Revenue; got != 75 {
		t.Errorf("revenue = %v, want legacy amount 75", got)
	}
}

func TestRevenueSeries(t *testing.T) {
	now := time.Date(2026, time.August, 15, 23, 0, 0, 0, time.UTC) // a Saturday
	orders := []models.Order{
		{OrderID: 1, TotalAmount: 40, CreatedAt: "2026-08-15T01:00:00Z"}, // today
		{OrderID: 2, TotalAmount: 30, CreatedAt: "2026-08-13T09:00:00Z"}, // two days ago
		{OrderID: 3, TotalAmount: 99, CreatedAt: "2026-08-01T09:00:00Z"}, // outside window
	}

	series := RevenueSeries(orders, now)

	if len(series) != 7 {
		t.Fatalf("series length = %d, want 7", len(series))
	}
	last := series[6]
	if last.Label != "Sat" || last.Revenue != 40 || last.Orders != 1 {
		t.Errorf("today bucket = %+v, want Sat/40/1", last)
	}
	if series[4].Revenue != 30 {
		t.Errorf("two-days-ago bucket revenue = %v, want 30", series[4].Revenue)
	}
	var total float64
	for _, p := range series {
		total += p.Revenue
	}
	if total != 70 {
		t.Errorf("window revenue = %v, want 70 (out-of-window order excluded)", total)
	}
}

func TestRecentOrders(t *testing.T) {
	orders := []models.Order{
		{OrderID: 1, CreatedAt: "2026-08-01T00:00:00Z"},
		{OrderID: 2, CreatedAt: "2026-08-03T00:00:00Z"},
		{OrderID: 3, CreatedAt: "2026-08-02T00:00:00Z"},
	}
	recent := RecentOrders(orders, 2)
	if len(recent) != 2 || recent[0].OrderID != 2 || recent[1].OrderID != 3 {
		t.Errorf("recent = %+v, want orders 2 then 3", recent)
	}
}
