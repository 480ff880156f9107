package api

import (
	"context"
	"fmt"

	"github.com/orchid-shop/storefront/internal/models"
)

func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var out struct {
		Message string         `json:"message"`
		Data    []models.Order `json:"data"`
	}
	if err := c.get(ctx, "/orders", &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) MyOrders(ctx context.Context) ([]models.Order, error) {
	var out struct {
		Message string         `json:"message"`
		Data    []models.Order `json:"data"`
	}
	if err := c.get(ctx, "/orders/me/orders", &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

type OrderWithDetails struct {
	models.Order
	Details []models.OrderDetail `json:"details"`
}

func (c *Client) Order(ctx context.Context, id string) (*OrderWithDetails, error) {
	var out struct {
		Message string           `json:"message"`
		Data    OrderWithDetails `json:"data"`
	}
	if err := c.get(ctx, fmt.Sprintf("/orders/%s", id), &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
