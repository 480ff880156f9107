package api

import (
	"context"
	"fmt"

	"github.com/orchid-shop/storefront/internal/models"
)

// Catalog reads are public, no token required.

func (c *Client) Orchids(ctx context.Context) ([]models.Orchid, error) {
	var out struct {
		Message string          `json:"message"`
		Data    []models.Orchid `json:"data"`
	}
	if err := c.get(ctx, "/public/orchids", &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) Orchid(ctx context.Context, id int) (*models.Orchid, error) {
	var out struct {
		Message string        `json:"message"`
		Data    models.Orchid `json:"data"`
	}
	if err := c.get(ctx, fmt.Sprintf("/public/orchids/%d", id), &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var out struct {
		Message string            `json:"message"`
		Data    []models.Category `json:"data"`
	}
	if err := c.get(ctx, "/public/categories", &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
