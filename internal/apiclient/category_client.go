package apiclient

import (
	"context"

	"github.com/eshopsolution/admin-api/internal/core/ports"
)

// CategoryClient relays category lookups to the backend catalog API.
type CategoryClient struct {
	*Client
}

func NewCategoryClient(base *Client) *CategoryClient {
	return &CategoryClient{Client: base}
}

func (c *CategoryClient) GetAll(ctx context.Context) ([]ports.CategoryView, error) {
	var categories []ports.CategoryView
	if err := c.getJSON(ctx, "/api/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
