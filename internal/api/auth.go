package api

import (
	"context"
	"net/http"

	"github.com/orchid-shop/storefront/internal/models"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Token struct {
	ID                  string `json:"id"`
	AccessToken         string `json:"access_token"`
	RefreshToken        string `json:"refresh_token"`
	TokenType           string `json:"token_type"`
	Expires             string `json:"expires"`
	ExpiresRefreshToken string `json:"expires_refresh_token"`
	IsMobile            bool   `json:"is_mobile"`
}

type LoginData struct {
	Token   Token          `json:"token"`
	Account models.Account `json:"account"`
}

type LoginResponse struct {
	Message string    `json:"message"`
	Data    LoginData `json:"data"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*RegisterResponse, error) {
	var out RegisterResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", RegisterRequest{Name: name, Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
