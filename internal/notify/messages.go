// Package notify renders the customer-facing WhatsApp messages shown to the
// operator for edit-before-send. Rendering is pure string formatting; the
// actual send and any payment-link generation happen on the platform side.
package notify

import (
	"fmt"
	"strconv"
	"strings"

	"sellerdesk/internal/models"
)

// PaymentChannel selects the payment-request wording.
type PaymentChannel int

const (
	ChannelContactSeller PaymentChannel = iota // no payment setup at all
	ChannelUPI
	ChannelGateway // automated link, generated server-side
)

// StatusMessage renders the order-status update template.
func StatusMessage(order models.Order, newStatus string) string {
	return fmt.Sprintf(`🛒 *Order Status Update* 🛒

Order ID: #%d
Items:
%s

Status: *%s*

Thank you for your order!`, order.OrderID, itemsDisplay(order), newStatus)
}

// PaymentMessage renders the payment-status template. For a Requested status
// the body branches on the configured channel; upiID is only read for
// ChannelUPI.
func PaymentMessage(order models.Order, newStatus string, channel PaymentChannel, upiID string) string {
	amount := FormatINR(order.Total())
	items := itemsDisplay(order)

	switch newStatus {
	case models.PaymentRequested:
		switch channel {
		case ChannelGateway:
			return fmt.Sprintf(`💳 *Payment Request* 💳

Order ID: #%d
Items:
%s
Amount: *%s*

Please complete your payment using this secure link:
🔗 [Payment link will be generated automatically]

After payment, your order will be automatically confirmed.

Thank you! 🙏`, order.OrderID, items, amount)
		case ChannelUPI:
			return fmt.Sprintf(`💳 *Payment Request* 💳

Order ID: #%d
Items:
%s
Amount: *%s*

Please pay to UPI ID:
📱 *%s*

After payment, please share the transaction screenshot for verification.

Thank you! 🙏`, order.OrderID, items, amount, upiID)
		default:
			return fmt.Sprintf(`💳 *Payment Request* 💳

Order ID: #%d
Items:
%s
Amount: *%s*

Please contact the seller for payment details.

Thank you! 🙏`, order.OrderID, items, amount)
		}
	case models.PaymentCompleted:
		return fmt.Sprintf(`✅ *Payment Confirmed* ✅

Order ID: #%d
Items:
%s
Amount: %s

Your payment has been received and confirmed!
Your order will be processed shortly.

Thank you for your purchase! 🎉`, order.OrderID, items, amount)
	default: // Pending
		return fmt.Sprintf(`⏳ *Payment Status Update* ⏳

Order ID: #%d
Items:
%s
Amount: %s

Payment status: *%s*

We'll notify you once payment is requested.

Thank you! 🙏`, order.OrderID, items, amount, newStatus)
	}
}

// CancellationMessage renders the operator's reply to a cancellation request.
func CancellationMessage(req models.CancellationRequest, approved bool) string {
	if approved {
		msg := fmt.Sprintf("Your cancellation request for Order #%d has been approved. ", req.OrderID)
		if req.Paid {
			msg += "Your refund will be processed within 5-7 business days."
		} else {
			msg += "No payment was collected for this order."
		}
		return msg
	}
	return fmt.Sprintf("Your cancellation request for Order #%d has been rejected. "+
		"Your order is being processed as usual. Please contact us for any questions.", req.OrderID)
}

// DigestMessage composes the daily sales summary sent by cmd/digest.
func DigestMessage(sellerName, date string, stats DigestStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 *Daily Sales Digest* (%s)\n", date)
	if sellerName != "" {
		fmt.Fprintf(&b, "For %s\n", sellerName)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Orders today: %d\n", stats.Orders)
	fmt.Fprintf(&b, "Revenue today: %s\n", FormatINR(stats.Revenue))
	fmt.Fprintf(&b, "Pending payments: %d (%s)\n", stats.PendingPayments, FormatINR(stats.PendingAmount))
	if stats.Cancellations > 0 {
		fmt.Fprintf(&b, "Cancellation requests: %d\n", stats.Cancellations)
	}
	b.WriteString("\nOpen the dashboard for details.")
	return b.String()
}

type DigestStats struct {
	Orders          int
	Revenue         float64
	PendingPayments int
	PendingAmount   float64
	Cancellations   int
}

// itemsDisplay lists line items, or falls back to the legacy single product
// name, or a generic phrase when the order carries neither.
func itemsDisplay(order models.Order) string {
	if len(order.Items) == 1 {
		it := order.Items[0]
		return fmt.Sprintf("%s x%d", it.ProductName, it.Quantity)
	}
	if len(order.Items) > 1 {
		lines := make([]string, len(order.Items))
		for i, it := range order.Items {
			lines[i] = fmt.Sprintf("- %s x%d", it.ProductName, it.Quantity)
		}
		return strings.Join(lines, "\n")
	}
	if order.ProductName != "" {
		return order.ProductName
	}
	return "your order"
}

// FormatINR renders ₹ amounts with Indian digit grouping: the last three
// digits, then groups of two (₹12,34,567.00).
func FormatINR(value float64) string {
	neg := value < 0
	if neg {
		value = -value
	}
	// Round to paise once and derive both parts from it, so a fractional
	// part that rounds up carries into the rupees.
	cents := int64(value*100 + 0.5)
	intPart := cents / 100
	decimalPart := cents % 100

	s := strconv.FormatInt(intPart, 10)
	var grouped string
	if len(s) <= 3 {
		grouped = s
	} else {
		grouped = s[len(s)-3:]
		s = s[:len(s)-3]
		for len(s) > 2 {
			grouped = s[len(s)-2:] + "," + grouped
			s = s[:len(s)-2]
		}
		grouped = s + "," + grouped
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s₹%s.%02d", sign, grouped, decimalPart)
}
