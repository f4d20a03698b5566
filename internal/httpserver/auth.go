package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pocketshop/backend/internal/logging"
	"github.com/pocketshop/backend/internal/service"
	"github.com/pocketshop/backend/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	account, err := h.Svc.Register(ctx, req.Username, req.Password, req.Role)
	if err != nil {
		l.Warn("register_error", "error", err)
		return httpError(err)
	}

	l.Info("register_success", "account_id", account.ID)
	return c.JSON(http.StatusCreated, account)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		l.Warn("login_error", "error", err)
		return httpError(err)
	}

	l.Info("login_success", "account_id", res.Account.ID)
	return c.JSON(http.StatusOK, map[string]any{
		"account":      res.Account,
		"accessToken":  res.AccessToken,
		"refreshToken": res.RefreshToken,
	})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Refresh(ctx, req.RefreshToken)
	if err != nil {
		l.Warn("refresh_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"account":     res.Account,
		"accessToken": res.AccessToken,
	})
}

func (h *AuthHTTP) SignOut(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signout")

	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.SignOut(ctx, req.RefreshToken); err != nil {
		l.Warn("signout_error", "error", err)
		return httpError(err)
	}
	l.Info("signout_success")
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()

	account, err := h.Svc.Repo.AccountByID(ctx, userID(c))
	if err != nil {
		return httpError(service.ErrNotFound)
	}
	return c.JSON(http.StatusOK, account)
}
