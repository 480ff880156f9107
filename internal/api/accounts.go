package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/orchid-shop/storefront/internal/models"
)

func (c *Client) Me(ctx context.Context) (*models.Account, error) {
	var out struct {
		Message string         `json:"message"`
		Data    models.Account `json:"data"`
	}
	if err := c.get(ctx, "/accounts/me", &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) Accounts(ctx context.Context) ([]models.Account, error) {
	var out struct {
		Message string           `json:"message"`
		Data    []models.Account `json:"data"`
	}
	if err := c.get(ctx, "/accounts", &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) Account(ctx context.Context, id int) (*models.Account, error) {
	var out struct {
		Message string         `json:"message"`
		Data    models.Account `json:"data"`
	}
	if err := c.get(ctx, fmt.Sprintf("/accounts/%d", id), &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

type UpdateAccountRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

func (c *Client) UpdateAccount(ctx context.Context, id int, req UpdateAccountRequest) (*models.Account, error) {
	var out struct {
		Message string         `json:"message"`
		Data    models.Account `json:"data"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/accounts/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

type CreateEmployeeRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Gender      string `json:"gender"`
	Designation string `json:"designation"`
	URL         string `json:"url"`
}

func (c *Client) CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*models.Employee, error) {
	var out struct {
		Message string          `json:"message"`
		Data    models.Employee `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/accounts/create-new-employee", req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
