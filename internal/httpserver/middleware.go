package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/orchid-shop/storefront/internal/api"
	"github.com/orchid-shop/storefront/internal/logging"
	"github.com/orchid-shop/storefront/internal/session"
)

// RequestLogger binds a request-scoped slog logger into the context and logs
// the outcome of every request.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(echo.HeaderXRequestID)

			l := base.With(
				"method", c.Request().Method,
				"path", c.Path(),
				"url", c.Request().URL.Path,
			)
			if rid != "" {
				l = l.With("request_id", rid)
				c.Response().Header().Set(echo.HeaderXRequestID, rid)
			}

			req := c.Request().WithContext(logging.IntoContext(c.Request().Context(), l))
			c.SetRequest(req)

			start := time.Now()
			err := next(c)
			dur := time.Since(start)
			status := c.Response().Status

			if err != nil {
				c.Echo().HTTPErrorHandler(err, c)
				status = c.Response().Status
			}

			switch {
			case err != nil || status >= 500:
				l.Error("request completed", "status", status, "duration_ms", dur.Milliseconds(), "error", errStr(err))
			case status >= 400:
				l.Warn("request completed", "status", status, "duration_ms", dur.Milliseconds())
			default:
				l.Info("request completed", "status", status, "duration_ms", dur.Milliseconds(), "bytes", c.Response().Size)
			}
			return nil
		}
	}
}

func errStr(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%v", err)
}

// RequireAuth rejects requests while the session is a guest.
func RequireAuth(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !sessions.Identity().Authenticated {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error":    "login_required",
					"redirect": "/login",
				})
			}
			return next(c)
		}
	}
}

// RequireRole gates navigation by role. This is a convenience only, the
// remote API enforces authorization on every forwarded call.
func RequireRole(sessions *session.Manager, roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := sessions.Identity()
			if !id.Authenticated {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error":    "login_required",
					"redirect": "/login",
				})
			}
			if !slices.Contains(roles, id.Role) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// remoteError maps a remote API failure onto the local response: server
// failures keep their status, transport failures become a retryable 502.
func remoteError(c echo.Context, l *slog.Logger, op string, err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		l.Warn(op+"_error", "status", apiErr.Status, "error", apiErr.Message)
		return c.JSON(apiErr.Status, echo.Map{
			"error":     apiErr.Message,
			"retryable": apiErr.Status >= 500,
		})
	}
	l.Error(op+"_error", "status", 502, "error", err)
	return c.JSON(http.StatusBadGateway, echo.Map{
		"error":     "upstream unreachable",
		"retryable": true,
	})
}
