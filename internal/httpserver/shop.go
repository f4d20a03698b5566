package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pocketshop/backend/internal/logging"
	"github.com/pocketshop/backend/internal/service"
	"github.com/pocketshop/backend/internal/transport"
)

type ShopHTTP struct {
	Vendor *service.VendorService
}

func (h *ShopHTTP) CreateShop(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "shop.create")

	var req transport.CreateShopRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_shop_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	shop, err := h.Vendor.CreateShop(ctx, userID(c), req)
	if err != nil {
		l.Warn("create_shop_error", "error", err)
		return httpError(err)
	}

	l.Info("create_shop_success", "shop_id", shop.ID)
	return c.JSON(http.StatusCreated, shop)
}

func (h *ShopHTTP) EditShop(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "shop.edit")

	var req transport.EditShopRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("edit_shop_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	shop, err := h.Vendor.EditShop(ctx, userID(c), c.Param("id"), req)
	if err != nil {
		l.Warn("edit_shop_error", "error", err)
		return httpError(err)
	}

	l.Info("edit_shop_success", "shop_id", shop.ID)
	return c.JSON(http.StatusOK, shop)
}

func (h *ShopHTTP) SetClosed(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "shop.set_closed")

	var req struct {
		Closed bool `json:"closed"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Vendor.SetShopClosed(ctx, userID(c), c.Param("id"), req.Closed); err != nil {
		l.Warn("set_closed_error", "error", err)
		return httpError(err)
	}
	l.Info("set_closed_success", "shop_id", c.Param("id"), "closed", req.Closed)
	return c.NoContent(http.StatusNoContent)
}

func (h *ShopHTTP) ListShops(c echo.Context) error {
	ctx := c.Request().Context()

	shops, err := h.Vendor.Repo.Shops(ctx)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, shops)
}

func (h *ShopHTTP) MyShops(c echo.Context) error {
	ctx := c.Request().Context()

	shops, err := h.Vendor.Repo.ShopsByOwner(ctx, userID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, shops)
}

func (h *ShopHTTP) GetShop(c echo.Context) error {
	ctx := c.Request().Context()

	shop, err := h.Vendor.Repo.ShopByID(ctx, c.Param("id"))
	if err != nil {
		return httpError(service.ErrNotFound)
	}
	return c.JSON(http.StatusOK, shop)
}

func (h *ShopHTTP) GetCatalog(c echo.Context) error {
	ctx := c.Request().Context()

	shop, err := h.Vendor.Repo.ShopByID(ctx, c.Param("id"))
	if err != nil {
		return httpError(service.ErrNotFound)
	}
	return c.JSON(http.StatusOK, service.GroupCatalog(*shop))
}

func (h *ShopHTTP) GetImage(c echo.Context) error {
	ctx := c.Request().Context()

	data, err := h.Vendor.Repo.ShopImage(ctx, c.Param("id"))
	if err != nil {
		return httpError(service.ErrNotFound)
	}
	return c.Blob(http.StatusOK, "image/png", data)
}
