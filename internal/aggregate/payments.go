package aggregate

import (
	"sellerdesk/internal/models"
)

type PaymentSummary struct {
	Received     float64 // payment Completed
	Outstanding  float64 // Pending, Requested or Verified
	ReceivedN    int
	OutstandingN int
}

// SummarizePayments splits order totals by payment status for the payments
// screen. Verified payments still await settlement, hence outstanding.
func SummarizePayments(orders []models.Order) PaymentSummary {
	var s PaymentSummary
	for _, o := range orders {
		switch o.PaymentStatus {
		case models.PaymentCompleted:
			s.Received += o.Total()
			s.ReceivedN++
		case models.PaymentPending, models.PaymentRequested, models.PaymentVerified:
			s.Outstanding += o.Total()
			s.OutstandingN++
		}
	}
	return s
}
