package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/labstack/echo/v4"

	"github.com/orchid-shop/storefront/internal/api"
	"github.com/orchid-shop/storefront/internal/events"
	"github.com/orchid-shop/storefront/internal/logging"
	"github.com/orchid-shop/storefront/internal/session"
)

type SessionHTTP struct {
	Sessions *session.Manager
	API      *api.Client
	Events   *events.Producer

	loginInFlight atomic.Bool
}

func (h *SessionHTTP) Current(c echo.Context) error {
	id := h.Sessions.Identity()
	return c.JSON(http.StatusOK, echo.Map{
		"identity":         id,
		"loading":          h.Sessions.Loading(),
		"remembered_email": h.Sessions.RememberedEmail(),
	})
}

func (h *SessionHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "session.login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Remember bool   `json:"remember"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email == "" || req.Password == "" {
		l.Warn("login_error", "status", 400, "reason", "email and password required")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password required"})
	}

	// one login at a time, the submit control stays disabled while in flight
	if !h.loginInFlight.CompareAndSwap(false, true) {
		l.Warn("login_error", "status", 409, "reason", "login already in progress")
		return c.JSON(http.StatusConflict, echo.Map{"error": "login already in progress"})
	}
	defer h.loginInFlight.Store(false)

	resp, err := h.Sessions.Login(ctx, req.Email, req.Password, req.Remember)
	if err != nil {
		if errors.Is(err, session.ErrSuperseded) {
			l.Warn("login_error", "status", 409, "reason", "superseded")
			return c.JSON(http.StatusConflict, echo.Map{"error": "session changed during login"})
		}
		return remoteError(c, l, "login", err)
	}

	h.Events.Publish(ctx, "session_login", req.Email, map[string]any{
		"user_id": resp.Data.Account.ID,
	})

	l.Info("login succeeded", "user_id", resp.Data.Account.ID)
	return c.JSON(http.StatusOK, resp)
}

func (h *SessionHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "session.logout")

	id := h.Sessions.Identity()
	h.Sessions.Logout()

	if id.Authenticated {
		h.Events.Publish(ctx, "session_logout", id.Email, map[string]any{
			"user_id": id.UserID,
		})
	}

	l.Info("logged out")
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

func (h *SessionHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "session.register")

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	// validation failures never reach the network
	switch {
	case req.Name == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	case !strings.Contains(req.Email, "@"):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "valid email required"})
	case len(req.Password) < 6:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 6 characters"})
	}

	resp, err := h.API.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return remoteError(c, l, "register", err)
	}

	l.Info("registration succeeded", "email", req.Email)
	return c.JSON(http.StatusOK, resp)
}
