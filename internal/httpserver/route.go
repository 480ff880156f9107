package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orchid-shop/storefront/internal/api"
	"github.com/orchid-shop/storefront/internal/cart"
	"github.com/orchid-shop/storefront/internal/events"
	"github.com/orchid-shop/storefront/internal/models"
	"github.com/orchid-shop/storefront/internal/notify"
	"github.com/orchid-shop/storefront/internal/session"
)

type Deps struct {
	Sessions *session.Manager
	Cart     *cart.Manager
	API      *api.Client
	Notices  *notify.Center
	Events   *events.Producer
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	sessionHTTP := &SessionHTTP{Sessions: d.Sessions, API: d.API, Events: d.Events}
	cartHTTP := &CartHTTP{Cart: d.Cart, API: d.API, Events: d.Events}
	catalogHTTP := &CatalogHTTP{API: d.API}
	adminHTTP := &AdminHTTP{API: d.API}
	profileHTTP := &ProfileHTTP{API: d.API, Sessions: d.Sessions}

	e.GET("/session", sessionHTTP.Current)
	e.POST("/session/login", sessionHTTP.Login)
	e.POST("/session/logout", sessionHTTP.Logout)
	e.POST("/session/register", sessionHTTP.Register)

	e.GET("/notifications", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"notices": d.Notices.Drain()})
	})

	e.GET("/catalog", catalogHTTP.Orchids)
	e.GET("/catalog/:id", catalogHTTP.Orchid)
	e.GET("/categories", catalogHTTP.Categories)

	crt := e.Group("/cart")
	crt.GET("", cartHTTP.Get)
	crt.POST("/items", cartHTTP.AddItem)
	crt.PATCH("/items/:id", cartHTTP.UpdateQuantity)
	crt.DELETE("/items/:id", cartHTTP.RemoveItem)
	crt.DELETE("", cartHTTP.Clear)

	me := e.Group("/me", RequireAuth(d.Sessions))
	me.GET("/profile", profileHTTP.Profile)
	me.PUT("/profile", profileHTTP.UpdateProfile)
	me.GET("/orders", profileHTTP.MyOrders)

	admin := e.Group("/admin", RequireRole(d.Sessions, models.RoleAdmin, models.RoleManager, models.RoleStaff))
	admin.GET("/accounts", adminHTTP.Accounts)
	admin.GET("/accounts/:id", adminHTTP.Account)
	admin.PUT("/accounts/:id", adminHTTP.UpdateAccount)
	admin.POST("/employees", adminHTTP.CreateEmployee, RequireRole(d.Sessions, models.RoleAdmin, models.RoleManager))
	admin.POST("/orchids", adminHTTP.CreateOrchid)
	admin.PUT("/orchids/:id", adminHTTP.UpdateOrchid)
	admin.DELETE("/orchids/:id", adminHTTP.DeleteOrchid)
	admin.GET("/orders", adminHTTP.Orders)
	admin.GET("/orders/:id", adminHTTP.Order)
}
