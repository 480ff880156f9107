package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/orchid-shop/storefront/internal/api"
	"github.com/orchid-shop/storefront/internal/logging"
)

// AdminHTTP is the back office: thin forwarding over the management endpoints
// of the remote API, which enforces the actual authorization.
type AdminHTTP struct {
	API *api.Client
}

func (h *AdminHTTP) Accounts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.accounts")

	accounts, err := h.API.Accounts(ctx)
	if err != nil {
		return remoteError(c, l, "admin_accounts", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"accounts": accounts})
}

func (h *AdminHTTP) Account(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.account")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid account id"})
	}

	account, err := h.API.Account(ctx, id)
	if err != nil {
		return remoteError(c, l, "admin_account", err)
	}
	return c.JSON(http.StatusOK, account)
}

func (h *AdminHTTP) UpdateAccount(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.account.update")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid account id"})
	}

	var req api.UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	account, err := h.API.UpdateAccount(ctx, id, req)
	if err != nil {
		return remoteError(c, l, "admin_account_update", err)
	}

	l.Info("account updated", "account_id", id)
	return c.JSON(http.StatusOK, account)
}

func (h *AdminHTTP) CreateEmployee(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.employee.create")

	var req api.CreateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and email required"})
	}

	employee, err := h.API.CreateEmployee(ctx, req)
	if err != nil {
		return remoteError(c, l, "admin_employee_create", err)
	}

	l.Info("employee created", "email", req.Email)
	return c.JSON(http.StatusCreated, employee)
}

func (h *AdminHTTP) CreateOrchid(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.orchid.create")

	var req api.OrchidRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	orchid, err := h.API.CreateOrchid(ctx, req)
	if err != nil {
		return remoteError(c, l, "admin_orchid_create", err)
	}

	l.Info("orchid created", "orchid_id", orchid.ID)
	return c.JSON(http.StatusCreated, orchid)
}

func (h *AdminHTTP) UpdateOrchid(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.orchid.update")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid orchid id"})
	}

	var req api.OrchidRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	orchid, err := h.API.UpdateOrchid(ctx, id, req)
	if err != nil {
		return remoteError(c, l, "admin_orchid_update", err)
	}

	l.Info("orchid updated", "orchid_id", id)
	return c.JSON(http.StatusOK, orchid)
}

func (h *AdminHTTP) DeleteOrchid(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.orchid.delete")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid orchid id"})
	}

	if err := h.API.DeleteOrchid(ctx, id); err != nil {
		return remoteError(c, l, "admin_orchid_delete", err)
	}

	l.Info("orchid deleted", "orchid_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHTTP) Orders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.orders")

	orders, err := h.API.Orders(ctx)
	if err != nil {
		return remoteError(c, l, "admin_orders", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

func (h *AdminHTTP) Order(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.order")

	order, err := h.API.Order(ctx, c.Param("id"))
	if err != nil {
		return remoteError(c, l, "admin_order", err)
	}
	return c.JSON(http.StatusOK, order)
}
