package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/orchid-shop/storefront/internal/api"
	"github.com/orchid-shop/storefront/internal/cart"
	"github.com/orchid-shop/storefront/internal/events"
	"github.com/orchid-shop/storefront/internal/logging"
)

type CartHTTP struct {
	Cart   *cart.Manager
	API    *api.Client
	Events *events.Producer
}

func (h *CartHTTP) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"items": h.Cart.Items(),
		"count": h.Cart.Count(),
		"total": h.Cart.Total(),
	})
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req struct {
		ProductID int `json:"product_id"`
		Quantity  int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ProductID == 0 {
		l.Warn("add_to_cart_error", "status", 400, "reason", "product_id required")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id required"})
	}

	orchid, err := h.API.Orchid(ctx, req.ProductID)
	if err != nil {
		return remoteError(c, l, "add_to_cart", err)
	}

	loginFallback := false
	if err := h.Cart.AddItem(*orchid, req.Quantity, func() { loginFallback = true }); err != nil {
		if errors.Is(err, cart.ErrLoginRequired) && loginFallback {
			l.Warn("add_to_cart_error", "status", 401, "reason", "guest")
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error":    "login_required",
				"redirect": "/login",
			})
		}
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	h.Events.Publish(ctx, "cart_item_added", strconv.Itoa(h.Cart.Identity().UserID), map[string]any{
		"product_id": orchid.ID,
		"quantity":   req.Quantity,
	})

	l.Info("item added to cart", "product_id", orchid.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"items": h.Cart.Items(),
		"count": h.Cart.Count(),
		"total": h.Cart.Total(),
	})
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("update_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	if err := h.Cart.UpdateQuantity(id, req.Quantity); err != nil {
		l.Error("update_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"items": h.Cart.Items(),
		"count": h.Cart.Count(),
		"total": h.Cart.Total(),
	})
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("remove_from_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	if err := h.Cart.RemoveItem(id); err != nil {
		l.Error("remove_from_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"items": h.Cart.Items(),
		"count": h.Cart.Count(),
		"total": h.Cart.Total(),
	})
}

func (h *CartHTTP) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	if err := h.Cart.Clear(); err != nil {
		l.Error("clear_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	l.Info("cart cleared")
	return c.JSON(http.StatusOK, echo.Map{"message": "cart cleared"})
}
