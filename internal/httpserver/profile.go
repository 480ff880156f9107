package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orchid-shop/storefront/internal/api"
	"github.com/orchid-shop/storefront/internal/logging"
	"github.com/orchid-shop/storefront/internal/session"
)

type ProfileHTTP struct {
	API      *api.Client
	Sessions *session.Manager
}

func (h *ProfileHTTP) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.get")

	account, err := h.API.Me(ctx)
	if err != nil {
		return remoteError(c, l, "profile", err)
	}
	return c.JSON(http.StatusOK, account)
}

func (h *ProfileHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.update")

	var req api.UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	id := h.Sessions.Identity()
	account, err := h.API.UpdateAccount(ctx, id.UserID, req)
	if err != nil {
		return remoteError(c, l, "profile_update", err)
	}

	l.Info("profile updated", "user_id", id.UserID)
	return c.JSON(http.StatusOK, account)
}

func (h *ProfileHTTP) MyOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.orders")

	orders, err := h.API.MyOrders(ctx)
	if err != nil {
		return remoteError(c, l, "my_orders", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}
