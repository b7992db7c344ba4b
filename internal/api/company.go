package api

import (
	"context"

	"sellerdesk/internal/models"
)

func (c *Client) GetCompany(ctx context.Context) (models.CompanyProfile, error) {
	var profile models.CompanyProfile
	err := c.getJSON(ctx, "/company", &profile)
	return profile, err
}

func (c *Client) SaveCompany(ctx context.Context, profile models.CompanyProfile) error {
	return c.postJSON(ctx, "/company", profile, nil)
}
