package notify

import (
	"strings"
	"testing"

	"sellerdesk/internal/models"
)

func testOrder() models.Order {
	return models.Order{
		OrderID:     42,
		BuyerPhone:  "919988776655",
		TotalAmount: 1250.50,
		Items: []models.LineItem{
			{ProductName: "Masala Chai", Quantity: 2, UnitPrice: 125.25},
			{ProductName: "Jaggery Cookies", Quantity: 1, UnitPrice: 1000},
		},
	}
}

func TestStatusMessage(t *testing.T) {
	msg := StatusMessage(testOrder(), models.OrderToDeliver)
	for _, want := range []string{"#42", "- Masala Chai x2", "- Jaggery Cookies x1", "*To Deliver*"} {
		if !strings.Contains(msg, want) {
			t.Errorf("status message missing %q:\n%s", want, msg)
		}
	}
}

func TestStatusMessageSingleItem(t *testing.T) {
	o := testOrder()
	o.Items = o.Items[:1]
	msg := StatusMessage(o, models.OrderDelivered)
	if !strings.Contains(msg, "Masala Chai x2") || strings.Contains(msg, "- Masala") {
		t.Errorf("single item should render without list dash:\n%s", msg)
	}
}

func TestStatusMessageLegacyProductName(t *testing.T) {
	o := testOrder()
	o.Items = nil
	o.ProductName = "Filter Coffee"
	if msg := StatusMessage(o, models.OrderReceived); !strings.Contains(msg, "Filter Coffee") {
		t.Errorf("legacy product name missing:\n%s", msg)
	}
}

func TestPaymentRequestChannels(t *testing.T) {
	o := testOrder()

	gateway := PaymentMessage(o, models.PaymentRequested, ChannelGateway, "")
	if !strings.Contains(gateway, "generated automatically") {
		t.Errorf("gateway branch missing link placeholder:\n%s", gateway)
	}

	upi := PaymentMessage(o, models.PaymentRequested, ChannelUPI, "seller@upi")
	if !strings.Contains(upi, "*seller@upi*") {
		t.Errorf("UPI branch missing id:\n%s", upi)
	}
	if !strings.Contains(upi, "transaction screenshot") {
		t.Errorf("UPI branch should ask for a screenshot:\n%s", upi)
	}

	fallback := PaymentMessage(o, models.PaymentRequested, ChannelContactSeller, "")
	if !strings.Contains(fallback, "contact the seller") {
		t.Errorf("fallback branch wrong:\n%s", fallback)
	}

	for _, msg := range []string{gateway, upi, fallback} {
		if !strings.Contains(msg, "₹1,250.50") {
			t.Errorf("amount missing or misformatted:\n%s", msg)
		}
	}
}

func TestPaymentCompletedAndPending(t *testing.T) {
	o := testOrder()
	if msg := PaymentMessage(o, models.PaymentCompleted, ChannelUPI, "x"); !strings.Contains(msg, "Payment Confirmed") {
		t.Errorf("completed message wrong:\n%s", msg)
	}
	if msg := PaymentMessage(o, models.PaymentPending, ChannelUPI, "x"); !strings.Contains(msg, "*Pending*") {
		t.Errorf("pending message wrong:\n%s", msg)
	}
}

func TestCancellationMessage(t *testing.T) {
	req := models.CancellationRequest{OrderID: 7, Paid: true}
	if msg := CancellationMessage(req, true); !strings.Contains(msg, "refund") {
		t.Errorf("approved+paid should mention refund: %s", msg)
	}
	req.Paid = false
	if msg := CancellationMessage(req, true); !strings.Contains(msg, "No payment was collected") {
		t.Errorf("approved+unpaid wrong: %s", msg)
	}
	if msg := CancellationMessage(req, false); !strings.Contains(msg, "rejected") {
		t.Errorf("rejection wrong: %s", msg)
	}
}

func TestFormatINR(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "₹0.00"},
		{999, "₹999.00"},
		{1000, "₹1,000.00"},
		{123456, "₹1,23,456.00"},
		{1234567.89, "₹12,34,567.89"},
		{-450.5, "-₹450.50"},
		// Paise that round up must carry into the rupees.
		{2.997, "₹3.00"},
		{999.999, "₹1,000.00"},
	}
	for _, tc := range cases {
		if got := FormatINR(tc.in); got != tc.want {
			t.Errorf("FormatINR(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDigestMessage(t *testing.T) {
	msg := DigestMessage("Chai Corner", "2026-08-31", DigestStats{
		Orders: 4, Revenue: 5600, PendingPayments: 2, PendingAmount: 1400, Cancellations: 1,
	})
	for _, want := range []string{"Chai Corner", "2026-08-31", "Orders today: 4", "₹5,600.00", "Cancellation requests: 1"} {
		if !strings.Contains(msg, want) {
			t.Errorf("digest missing %q:\n%s", want, msg)
		}
	}
}
