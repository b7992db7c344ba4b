package api

import (
	"context"

	"sellerdesk/internal/models"
)

// GetWorkflow returns the saved block sequence, possibly empty for a seller
// who never customized it. Sequences load verbatim, legal or not.
func (c *Client) GetWorkflow(ctx context.Context) (models.Workflow, error) {
	var wf models.Workflow
	err := c.getJSON(ctx, "/workflow", &wf)
	return wf, err
}

func (c *Client) SaveWorkflow(ctx context.Context, wf models.Workflow) error {
	return c.postJSON(ctx, "/workflow", wf, nil)
}
