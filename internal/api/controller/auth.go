package controller

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/certenergy/internal/domain/dto"
	"github.com/ougirez/certenergy/internal/pkg/constants"
)

func (c *Controller) LoginAdmin(ctx echo.Context) error {
	var req dto.LoginAdminRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}

	token, err := c.authService.LoginAdmin(ctx.Request().Context(), req.Secret)
	if err != nil {
		return err
	}

	ctx.SetCookie(&http.Cookie{
		Name:     constants.CookieKeySecretToken,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(c.authService.TTL()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	return ctx.JSON(http.StatusOK, dto.LoginAdminResponse{AuthToken: token})
}
