package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pocketshop/backend/internal/logging"
	"github.com/pocketshop/backend/internal/service"
)

type FavouriteHTTP struct {
	Svc *service.FavouriteService
}

func (h *FavouriteHTTP) Toggle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favourite.toggle")

	saved, err := h.Svc.Toggle(ctx, userID(c), c.Param("productID"))
	if err != nil {
		l.Warn("toggle_favourite_error", "error", err)
		return httpError(err)
	}

	l.Info("toggle_favourite_success", "product_id", c.Param("productID"), "saved", saved)
	return c.JSON(http.StatusOK, map[string]any{"saved": saved})
}

func (h *FavouriteHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.Svc.List(ctx, userID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, products)
}
