package api

import (
	"context"
	"net/url"

	"sellerdesk/internal/models"
)

func (c *Client) Conversation(ctx context.Context, phone string) ([]models.ConversationMessage, error) {
	var payload struct {
		Messages []models.ConversationMessage `json:"messages"`
	}
	if err := c.getJSON(ctx, "/customers/"+url.PathEscape(phone)+"/conversation", &payload); err != nil {
		return nil, err
	}
	return payload.Messages, nil
}

// SendMessage sends a seller-authored WhatsApp message to one buyer through
// the platform's messaging channel.
func (c *Client) SendMessage(ctx context.Context, phone, text string) error {
	payload := map[string]string{"message": text}
	return c.postJSON(ctx, "/customers/"+url.PathEscape(phone)+"/send-message", payload, nil)
}
