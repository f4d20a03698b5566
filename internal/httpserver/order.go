package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pocketshop/backend/internal/logging"
	"github.com/pocketshop/backend/internal/service"
	"github.com/pocketshop/backend/internal/transport"
)

type OrderHTTP struct {
	Orders *service.OrderService
	Vendor *service.VendorService
}

func (h *OrderHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place")

	var req transport.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("place_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Orders.PlaceOrder(ctx, userID(c), req)
	if err != nil {
		l.Warn("place_order_error", "error", err)
		return httpError(err)
	}

	l.Info("place_order_success", "order_id", order.ID, "collection_no", order.CollectionNo)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.cancel")

	order, err := h.Orders.CancelOrder(ctx, userID(c), c.Param("id"))
	if err != nil {
		l.Warn("cancel_order_error", "error", err)
		return httpError(err)
	}

	l.Info("cancel_order_success", "order_id", order.ID)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) AdvanceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.advance")

	order, err := h.Vendor.AdvanceOrder(ctx, userID(c), c.Param("id"))
	if err != nil {
		l.Warn("advance_order_error", "error", err)
		return httpError(err)
	}

	l.Info("advance_order_success", "order_id", order.ID, "status", order.Status)
	return c.JSON(http.StatusOK, order)
}

// MyOrders returns the customer's orders partitioned into current and history.
func (h *OrderHTTP) MyOrders(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.Orders.OrdersByCustomer(ctx, userID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, service.BuildOrderBoard(orders))
}

func (h *OrderHTTP) ShopOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.shop_orders")

	shopID := c.Param("id")
	shop, err := h.Vendor.Repo.ShopByID(ctx, shopID)
	if err != nil || shop.OwnerID != userID(c) {
		l.Warn("shop_orders_error", "shop_id", shopID, "error", err)
		return httpError(service.ErrNotFound)
	}

	orders, err := h.Orders.Repo.OrdersByShop(ctx, shopID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, service.BuildOrderBoard(orders))
}
