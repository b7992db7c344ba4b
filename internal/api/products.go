package api

import (
	"context"
	"fmt"

	"sellerdesk/internal/models"
)

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var payload struct {
		Products []models.Product `json:"products"`
	}
	if err := c.getJSON(ctx, "/products", &payload); err != nil {
		return nil, err
	}
	return payload.Products, nil
}

func (c *Client) CreateProduct(ctx context.Context, p models.Product) error {
	return c.postJSON(ctx, "/products", p, nil)
}

func (c *Client) UpdateProduct(ctx context.Context, p models.Product) error {
	return c.putJSON(ctx, fmt.Sprintf("/products/%d", p.ID), p, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/products/%d", id))
}
