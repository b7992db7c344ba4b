package api

import (
	"context"

	"sellerdesk/internal/models"
)

func (c *Client) RazorpayStatus(ctx context.Context) (models.RazorpayStatus, error) {
	var status models.RazorpayStatus
	err := c.getJSON(ctx, "/razorpay/status", &status)
	return status, err
}

func (c *Client) SetRazorpayCredentials(ctx context.Context, keyID, keySecret string) error {
	payload := map[string]string{"key_id": keyID, "key_secret": keySecret}
	return c.postJSON(ctx, "/razorpay/credentials", payload, nil)
}

func (c *Client) RazorpayDisconnect(ctx context.Context) error {
	return c.postJSON(ctx, "/razorpay/disconnect", nil, nil)
}

func (c *Client) WhatsAppStatus(ctx context.Context) (models.WhatsAppStatus, error) {
	var status models.WhatsAppStatus
	err := c.getJSON(ctx, "/whatsapp/status", &status)
	return status, err
}

func (c *Client) WhatsAppActivate(ctx context.Context) error {
	return c.postJSON(ctx, "/whatsapp/activate", nil, nil)
}

func (c *Client) WhatsAppDeactivate(ctx context.Context) error {
	return c.postJSON(ctx, "/whatsapp/deactivate", nil, nil)
}
