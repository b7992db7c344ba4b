package aggregate

import (
	"sync"
	"time"

	"sellerdesk/internal/models"
)

// Selector memoizes the dashboard aggregates against snapshot versions so a
// render between two listener events does not redo the full recompute. The
// realtime hub bumps a version per path on every snapshot; equal versions
// plus an unchanged calendar day mean equal outputs, because every function
// in this package is a pure function of its snapshot.
type Selector struct {
	mu sync.Mutex

	ordersVer    uint64
	productsVer  uint64
	buyersVer    uint64
	customersVer uint64
	day          time.Time

	stats     DashboardStats
	series    []DayPoint
	customers []models.Customer
	payments  PaymentSummary
	valid     bool
}

func NewSelector() *Selector {
	return &Selector{}
}

type View struct {
	Stats     DashboardStats
	Series    []DayPoint
	Customers []models.Customer
	Payments  PaymentSummary
}

func (s *Selector) Select(orders []models.Order, products []models.Product, buyers map[string]models.Buyer,
	known []string, ordersVer, productsVer, buyersVer, customersVer uint64, now time.Time) View {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.valid || ordersVer != s.ordersVer || productsVer != s.productsVer ||
		buyersVer != s.buyersVer || customersVer != s.customersVer || !day.Equal(s.day) {
		s.stats = ComputeStats(orders, products, now)
		s.series = RevenueSeries(orders, now)
		s.customers = Rollup(orders, buyers, known)
		s.payments = SummarizePayments(orders)
		s.ordersVer, s.productsVer, s.buyersVer, s.customersVer = ordersVer, productsVer, buyersVer, customersVer
		s.day = day
		s.valid = true
	}

	return View{Stats: s.stats, Series: s.series, Customers: s.customers, Payments: s.payments}
}
