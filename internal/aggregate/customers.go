package aggregate

import (
	"sort"

	"sellerdesk/internal/models"
)

// Rollup groups orders by exact buyer phone and derives per-customer totals.
// Cancelled orders count toward lifetime spend; the legacy static dashboard
// excluded them and that divergence is deliberately left visible rather than
// resolved here. known lists customer phones registered without any order
// yet; they appear with zero totals and sort after every ordered customer.
func Rollup(orders []models.Order, buyers map[string]models.Buyer, known []string) []models.Customer {
	byPhone := make(map[string]*models.Customer)
	var phones []string

	for _, o := range orders {
		c, ok := byPhone[o.BuyerPhone]
		if !ok {
			c = &models.Customer{
				Phone: o.BuyerPhone,
				Name:  displayName(o, buyers),
			}
			byPhone[o.BuyerPhone] = c
			phones = append(phones, o.BuyerPhone)
		}
		c.TotalOrders++
		c.TotalSpent += o.Total()
		c.Orders = append(c.Orders, o)
		if t, ok := o.Created(); ok {
			if !c.HasOrderDate || t.After(c.LastOrderDate) {
				c.LastOrderDate = t
				c.HasOrderDate = true
			}
		}
	}

	for _, phone := range known {
		if _, ok := byPhone[phone]; ok {
			continue
		}
		name := phone
		if b, ok := buyers[phone]; ok && b.Name != "" {
			name = b.Name
		}
		byPhone[phone] = &models.Customer{Phone: phone, Name: name}
		phones = append(phones, phone)
	}

	customers := make([]models.Customer, 0, len(phones))
	for _, phone := range phones {
		customers = append(customers, *byPhone[phone])
	}

	// Most recent order first; customers with no parseable order date last.
	sort.SliceStable(customers, func(i, j int) bool {
		a, b := customers[i], customers[j]
		if a.HasOrderDate != b.HasOrderDate {
			return a.HasOrderDate
		}
		return a.LastOrderDate.After(b.LastOrderDate)
	})
	return customers
}

// displayName resolves: buyer registry name, then the order's buyer name,
// then the raw phone.
func displayName(o models.Order, buyers map[string]models.Buyer) string {
	if b, ok := buyers[o.BuyerPhone]; ok && b.Name != "" {
		return b.Name
	}
	if o.BuyerName != "" {
		return o.BuyerName
	}
	return o.BuyerPhone
}
