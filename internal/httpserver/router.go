package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pocketshop/backend/internal/middleware"
	"github.com/pocketshop/backend/internal/models"
	"github.com/pocketshop/backend/internal/service"
)

type Deps struct {
	Auth      *AuthHTTP
	Shop      *ShopHTTP
	Product   *ProductHTTP
	Order     *OrderHTTP
	Favourite *FavouriteHTTP
	Search    *SearchHTTP
	JWTSecret []byte
}

func Register(e *echo.Echo, d *Deps) {
	api := e.Group("/api")

	api.POST("/auth/register", d.Auth.Register)
	api.POST("/auth/login", d.Auth.Login)
	api.POST("/auth/refresh", d.Auth.Refresh)
	api.POST("/auth/signout", d.Auth.SignOut)

	authd := api.Group("", middleware.RequireAuth(d.JWTSecret))
	authd.GET("/auth/me", d.Auth.Me)

	authd.GET("/shops", d.Shop.ListShops)
	authd.GET("/shops/:id", d.Shop.GetShop)
	authd.GET("/shops/:id/catalog", d.Shop.GetCatalog)
	authd.GET("/shops/:id/image", d.Shop.GetImage)

	if d.Search != nil {
		authd.GET("/products/search", d.Search.Search)
	}

	vendor := authd.Group("", middleware.RequireRole(models.RoleVendor))
	vendor.POST("/shops", d.Shop.CreateShop)
	vendor.PUT("/shops/:id", d.Shop.EditShop)
	vendor.PATCH("/shops/:id/closed", d.Shop.SetClosed)
	vendor.GET("/vendor/shops", d.Shop.MyShops)
	vendor.POST("/shops/:id/products", d.Product.CreateProduct)
	vendor.PUT("/shops/:id/products/:productID", d.Product.EditProduct)
	vendor.DELETE("/shops/:id/products/:productID", d.Product.DeleteProduct)
	vendor.POST("/shops/:id/products/move", d.Product.MoveProduct)
	vendor.GET("/shops/:id/orders", d.Order.ShopOrders)
	vendor.POST("/orders/:id/advance", d.Order.AdvanceOrder)

	customer := authd.Group("", middleware.RequireRole(models.RoleCustomer))
	customer.POST("/orders", d.Order.PlaceOrder)
	customer.POST("/orders/:id/cancel", d.Order.CancelOrder)
	customer.GET("/orders", d.Order.MyOrders)
	customer.POST("/favourites/:productID", d.Favourite.Toggle)
	customer.GET("/favourites", d.Favourite.List)
}

func userID(c echo.Context) string {
	s, _ := c.Get("user_id").(string)
	return s
}

// httpError maps the service error taxonomy onto HTTP statuses.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrShopClosed):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
