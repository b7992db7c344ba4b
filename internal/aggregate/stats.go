// Package aggregate derives view models from raw realtime snapshots. Every
// function here is pure and total: each call recomputes its outputs from the
// full snapshot, so re-running on every listener event is always safe even
// when independent snapshots are transiently inconsistent with each other.
package aggregate

import (
	"sellerdesk/internal/models"
	"time"
)

type DashboardStats struct {
	Products        int
	Orders          int
	Revenue         float64
	Customers       int
	RevenueChange   float64
	OrdersChange    float64
	CustomersChange float64
}

type DayPoint struct {
	Label   string // short weekday name
	Revenue float64
	Orders  int
}

// PercentChange maps a zero previous period to 100 when there is current
// activity and 0 otherwise, so a month with no baseline never divides by
// zero. A drop from zero is therefore indistinguishable from no activity.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}

// ComputeStats partitions orders into the current and previous calendar
// months around now and derives the dashboard headline numbers.
func ComputeStats(orders []models.Order, products []models.Product, now time.Time) DashboardStats {
	startOfCurrent := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfPrevious := startOfCurrent.AddDate(0, -1, 0)

	var current, previous []models.Order
	for _, o := range orders {
		t, ok := o.Created()
		if !ok {
			continue
		}
		switch {
		case !t.Before(startOfCurrent) && !t.After(now):
			current = append(current, o)
		case !t.Before(startOfPrevious) && t.Before(startOfCurrent):
			previous = append(previous, o)
		}
	}

	stats := DashboardStats{
		Products:  len(products),
		Orders:    len(orders),
		Revenue:   revenue(orders),
		Customers: distinctPhones(orders),
	}
	stats.RevenueChange = PercentChange(revenue(current), revenue(previous))
	stats.OrdersChange = PercentChange(float64(len(current)), float64(len(previous)))
	stats.CustomersChange = PercentChange(float64(distinctPhones(current)), float64(distinctPhones(previous)))
	return stats
}

// RevenueSeries buckets orders into the trailing 7 calendar days including
// today, for the dashboard sparkline.
func RevenueSeries(orders []models.Order, now time.Time) []DayPoint {
	points := make([]DayPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		end := start.AddDate(0, 0, 1)

		p := DayPoint{Label: start.Weekday().String()[:3]}
		for _, o := range orders {
			t, ok := o.Created()
			if !ok {
				continue
			}
			if !t.Before(start) && t.Before(end) {
				p.Revenue += o.Total()
				p.Orders++
			}
		}
		points = append(points, p)
	}
	return points
}

// RecentOrders returns the n most recent orders by creation time.
func RecentOrders(orders []models.Order, n int) []models.Order {
	sorted := SortOrders(orders, SortNewest)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func revenue(orders []models.Order) float64 {
	var sum float64
	for _, o := range orders {
		sum += o.Total()
	}
	return sum
}

func distinctPhones(orders []models.Order) int {
	seen := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		seen[o.BuyerPhone] = struct{}{}
	}
	return len(seen)
}
