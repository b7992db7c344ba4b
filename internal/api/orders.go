package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"sellerdesk/internal/models"
)

func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var payload struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.getJSON(ctx, "/orders", &payload); err != nil {
		return nil, err
	}
	return payload.Orders, nil
}

// OrderUpdate carries one status transition. Exactly one of OrderStatus or
// PaymentStatus is set. CustomMessage is the operator-edited notification;
// leave it empty to let the backend generate its own (required for gateway
// payment requests, where the link is created server-side). Invoice attaches
// a PDF to a payment request.
type OrderUpdate struct {
	OrderStatus   string
	PaymentStatus string
	CustomMessage string
	InvoiceName   string
	Invoice       io.Reader
}

// UpdateOrder sends the transition as multipart form data, matching the
// backend's invoice-capable endpoint.
func (c *Client) UpdateOrder(ctx context.Context, orderID int, update OrderUpdate) error {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	if update.OrderStatus != "" {
		if err := form.WriteField("order_status", update.OrderStatus); err != nil {
			return fmt.Errorf("api: order update form: %w", err)
		}
	}
	if update.PaymentStatus != "" {
		if err := form.WriteField("payment_status", update.PaymentStatus); err != nil {
			return fmt.Errorf("api: order update form: %w", err)
		}
	}
	if update.CustomMessage != "" {
		if err := form.WriteField("custom_message", update.CustomMessage); err != nil {
			return fmt.Errorf("api: order update form: %w", err)
		}
	}
	if update.Invoice != nil {
		part, err := form.CreateFormFile("invoice", update.InvoiceName)
		if err != nil {
			return fmt.Errorf("api: order update invoice: %w", err)
		}
		if _, err := io.Copy(part, update.Invoice); err != nil {
			return fmt.Errorf("api: order update invoice: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("api: order update form: %w", err)
	}

	return c.do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d", orderID), form.FormDataContentType(), &body, nil)
}
