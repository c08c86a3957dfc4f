package api

import (
	"github.com/labstack/echo/v4"
	"github.com/ougirez/certenergy/internal/pkg/constants"
	"github.com/ougirez/certenergy/internal/pkg/logger"
)

// RequestLoggerMiddleware tags the request context with its request id.
func (svc *APIService) RequestLoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id := ctx.Response().Header().Get(echo.HeaderXRequestID)
		req := ctx.Request()
		ctx.SetRequest(req.WithContext(logger.WithFields(req.Context(), "request_id", id)))

		return next(ctx)
	}
}

func (svc *APIService) AdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		token := ctx.Request().Header.Get(constants.HeaderKeySecretToken)
		if token == "" {
			cookie, err := ctx.Cookie(constants.CookieKeySecretToken)
			if err != nil {
				return constants.ErrUnauthorized
			}
			token = cookie.Value
		}

		if err := svc.authService.Authorize(token); err != nil {
			return err
		}

		return next(ctx)
	}
}
