package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/orchid-shop/storefront/internal/models"
)

// Inventory management, token required and role-gated server-side.

type OrchidRequest struct {
	Name        string  `json:"name"`
	IsNatural   bool    `json:"isNatural"`
	Description string  `json:"description"`
	CategoryID  int     `json:"categoryId"`
	Price       float64 `json:"price"`
	URL         string  `json:"url"`
}

func (c *Client) CreateOrchid(ctx context.Context, req OrchidRequest) (*models.Orchid, error) {
	var out struct {
		Message string        `json:"message"`
		Data    models.Orchid `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/orchids", req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) UpdateOrchid(ctx context.Context, id int, req OrchidRequest) (*models.Orchid, error) {
	var out struct {
		Message string        `json:"message"`
		Data    models.Orchid `json:"data"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/orchids/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) DeleteOrchid(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/orchids/%d", id), nil, nil)
}
