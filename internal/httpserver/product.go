package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pocketshop/backend/internal/logging"
	"github.com/pocketshop/backend/internal/service"
	"github.com/pocketshop/backend/internal/transport"
)

type ProductHTTP struct {
	Vendor *service.VendorService
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Vendor.CreateProduct(ctx, userID(c), c.Param("id"), req)
	if err != nil {
		l.Warn("create_product_error", "error", err)
		return httpError(err)
	}

	l.Info("create_product_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHTTP) EditProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.edit")

	var req transport.EditProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("edit_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Vendor.EditProduct(ctx, userID(c), c.Param("id"), c.Param("productID"), req)
	if err != nil {
		l.Warn("edit_product_error", "error", err)
		return httpError(err)
	}

	l.Info("edit_product_success", "product_id", product.ID)
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	if err := h.Vendor.DeleteProduct(ctx, userID(c), c.Param("id"), c.Param("productID")); err != nil {
		l.Warn("delete_product_error", "error", err)
		return httpError(err)
	}

	l.Info("delete_product_success", "product_id", c.Param("productID"))
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHTTP) MoveProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.move")

	var req transport.MoveProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Vendor.MoveProduct(ctx, userID(c), c.Param("id"), req); err != nil {
		l.Warn("move_product_error", "error", err)
		return httpError(err)
	}

	l.Info("move_product_success", "product_id", req.ProductID)
	return c.NoContent(http.StatusNoContent)
}
