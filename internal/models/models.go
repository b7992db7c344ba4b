package models

import (
	"time"
)

// Records below mirror the platform wire format. The dashboard never owns
// them: orders, products and company data live behind the remote API and the
// realtime database, and the last snapshot always wins.

type LineItem struct {
	ProductName string            `json:"product_name"`
	Quantity    int               `json:"quantity"`
	UnitPrice   float64           `json:"unit_price"`
	Features    map[string]string `json:"features,omitempty"` // selected feature choices, name -> value
}

type Order struct {
	OrderID       int        `json:"order_id"`
	BuyerPhone    string     `json:"buyer_phone"`
	BuyerName     string     `json:"buyer_name"`
	Items         []LineItem `json:"items"`
	ProductName   string     `json:"product_name,omitempty"` // single-item legacy orders
	TotalAmount   float64    `json:"total_amount"`
	Amount        float64    `json:"amount,omitempty"` // legacy field, used when total_amount is absent
	OrderStatus   string     `json:"order_status"`
	PaymentStatus string     `json:"payment_status"`
	Address       string     `json:"address,omitempty"`
	Latitude      float64    `json:"latitude,omitempty"`
	Longitude     float64    `json:"longitude,omitempty"`
	CreatedAt     string     `json:"created_at"` // RFC3339 from the backend
}

// Order statuses as the backend emits them.
const (
	OrderReceived       = "Received"
	OrderReadyToDeliver = "Ready to Deliver"
	OrderToDeliver      = "To Deliver"
	OrderDelivered      = "Delivered"
	OrderCancelled      = "Cancelled"
)

// Payment statuses.
const (
	PaymentPending   = "Pending"
	PaymentRequested = "Requested"
	PaymentCompleted = "Completed"
	PaymentVerified  = "Verified"
)

func OrderStatuses() []string {
	return []string{OrderReceived, OrderReadyToDeliver, OrderToDeliver, OrderDelivered, OrderCancelled}
}

func PaymentStatuses() []string {
	return []string{PaymentPending, PaymentRequested, PaymentCompleted}
}

// Total returns total_amount, falling back to the legacy amount field.
func (o Order) Total() float64 {
	if o.TotalAmount != 0 {
		return o.TotalAmount
	}
	return o.Amount
}

// Created parses the creation timestamp. The bool is false when the backend
// sent something unparseable; callers bucket such orders nowhere.
func (o Order) Created() (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, o.CreatedAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type FeatureDef struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"` // multiple_choice, text, numeric
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"` // multiple_choice only
}

type Product struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Price       float64      `json:"price"`
	Category    string       `json:"category"`
	Stock       int          `json:"stock"`
	Description string       `json:"description"`
	ImageURL    string       `json:"image_url"`
	Features    []FeatureDef `json:"features,omitempty"`
}

// Buyer is the global registry entry keyed by phone.
type Buyer struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

// Customer is derived from orders and the buyer registry, recomputed from
// scratch on every snapshot and never persisted.
type Customer struct {
	Phone         string
	Name          string
	TotalOrders   int
	TotalSpent    float64
	LastOrderDate time.Time
	HasOrderDate  bool
	Orders        []Order
}

type ConversationMessage struct {
	Role      string `json:"role"` // "assistant" or the buyer
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

type CompanyProfile struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	UPIId       string `json:"upi_id"`
	Website     string `json:"website"`
	Instagram   string `json:"instagram"`
	Description string `json:"description"`
}

type SellerInfo struct {
	SellerID  string `json:"seller_id"` // email identity, sanitized for realtime paths
	Name      string `json:"name"`
	Email     string `json:"email"`
	Onboarded bool   `json:"onboarded"`
}

type CancellationRequest struct {
	OrderID     int     `json:"order_id"`
	BuyerPhone  string  `json:"buyer_phone"`
	Reason      string  `json:"reason"`
	TotalAmount float64 `json:"total_amount"`
	Paid        bool    `json:"paid"`
	RequestedAt string  `json:"requested_at"`
	Status      string  `json:"status"` // pending, approved, rejected
}

type Workflow struct {
	Blocks []string `json:"blocks"`
}

type RazorpayStatus struct {
	Connected bool `json:"connected"`
	Enabled   bool `json:"enabled"`
}

type WhatsAppStatus struct {
	Active bool   `json:"active"`
	Number string `json:"number,omitempty"`
}
