package aggregate

import (
	"sort"

	"sellerdesk/internal/models"
)

type SortKey string

const (
	SortNewest  SortKey = "newest"
	SortOldest  SortKey = "oldest"
	SortHighest SortKey = "highest"
	SortLowest  SortKey = "lowest"
)

// FilterSort applies optional exact-match status filters and a stable sort.
// "All" or the empty string disables a filter. The input slice is never
// mutated; callers re-run this on every dependency change.
func FilterSort(orders []models.Order, statusFilter, paymentFilter string, key SortKey) []models.Order {
	result := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if statusFilter != "" && statusFilter != "All" && o.OrderStatus != statusFilter {
			continue
		}
		if paymentFilter != "" && paymentFilter != "All" && o.PaymentStatus != paymentFilter {
			continue
		}
		result = append(result, o)
	}
	return sortInPlace(result, key)
}

// SortOrders returns a sorted copy.
func SortOrders(orders []models.Order, key SortKey) []models.Order {
	result := make([]models.Order, len(orders))
	copy(result, orders)
	return sortInPlace(result, key)
}

func sortInPlace(orders []models.Order, key SortKey) []models.Order {
	switch key {
	case SortOldest:
		sort.SliceStable(orders, func(i, j int) bool {
			return createdBefore(orders[i], orders[j])
		})
	case SortHighest:
		sort.SliceStable(orders, func(i, j int) bool {
			return orders[i].Total() > orders[j].Total()
		})
	case SortLowest:
		sort.SliceStable(orders, func(i, j int) bool {
			return orders[i].Total() < orders[j].Total()
		})
	default: // newest
		sort.SliceStable(orders, func(i, j int) bool {
			return createdBefore(orders[j], orders[i])
		})
	}
	return orders
}

// createdBefore orders unparseable timestamps after everything else.
func createdBefore(a, b models.Order) bool {
	ta, oka := a.Created()
	tb, okb := b.Created()
	if oka != okb {
		return oka
	}
	return ta.Before(tb)
}
