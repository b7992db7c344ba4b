package api

import (
	"context"
	"fmt"

	"sellerdesk/internal/models"
)

func (c *Client) ListCancellations(ctx context.Context) ([]models.CancellationRequest, error) {
	var payload struct {
		Cancellations []models.CancellationRequest `json:"cancellations"`
	}
	if err := c.getJSON(ctx, "/cancellations", &payload); err != nil {
		return nil, err
	}
	return payload.Cancellations, nil
}

// ResolveCancellation approves or rejects one request, with the operator's
// message to the buyer.
func (c *Client) ResolveCancellation(ctx context.Context, orderID int, approve bool, message string) error {
	action := "reject"
	if approve {
		action = "approve"
	}
	payload := map[string]string{"message": message}
	return c.postJSON(ctx, fmt.Sprintf("/cancellations/%d/%s", orderID, action), payload, nil)
}
