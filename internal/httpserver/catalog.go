package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/orchid-shop/storefront/internal/api"
	"github.com/orchid-shop/storefront/internal/logging"
	"github.com/orchid-shop/storefront/internal/models"
)

type CatalogHTTP struct {
	API *api.Client
}

func (h *CatalogHTTP) Orchids(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list")

	orchids, err := h.API.Orchids(ctx)
	if err != nil {
		return remoteError(c, l, "catalog_list", err)
	}

	if v := c.QueryParam("category"); v != "" {
		if categoryID, err := strconv.Atoi(v); err == nil {
			filtered := make([]models.Orchid, 0, len(orchids))
			for _, o := range orchids {
				if o.CategoryID == categoryID {
					filtered = append(filtered, o)
				}
			}
			orchids = filtered
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"orchids": orchids})
}

func (h *CatalogHTTP) Orchid(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.detail")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("catalog_detail_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid orchid id"})
	}

	orchid, err := h.API.Orchid(ctx, id)
	if err != nil {
		return remoteError(c, l, "catalog_detail", err)
	}

	return c.JSON(http.StatusOK, orchid)
}

func (h *CatalogHTTP) Categories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.categories")

	categories, err := h.API.Categories(ctx)
	if err != nil {
		return remoteError(c, l, "catalog_categories", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"categories": categories})
}
