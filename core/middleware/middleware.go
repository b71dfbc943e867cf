package middleware

import (
	stderrors "errors"
	"strings"
	"time"

	"castle-admin/core/config"
	"castle-admin/core/constants"
	"castle-admin/core/controller"
	"castle-admin/core/errors"
	"castle-admin/core/logger"
	"castle-admin/core/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type Middleware struct {
	admin config.AdminConfig
	controller.BaseController
}

func NewMiddleware(admin config.AdminConfig) *Middleware {
	return &Middleware{
		admin:          admin,
		BaseController: controller.NewBaseController(),
	}
}

// AdminMiddleware requires a valid bearer token whose email is on the
// ADMIN_EMAILS allow-list. Missing or bad tokens are 401, unknown emails 403.
func (m *Middleware) AdminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return m.Unauthorized(errors.ErrMissingAuthorizationHeader, "Authentication required")
			}
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return m.Unauthorized(errors.ErrInvalidTokenFormat, "Invalid authorization header")
			}

			claims, err := utils.ValidateAndParseToken(m.admin.JWTSecret, strings.TrimSpace(token))
			if err != nil {
				if stderrors.Is(err, jwt.ErrTokenExpired) {
					return m.Unauthorized(errors.ErrTokenExpired, "Token expired")
				}
				logger.Warn("Middleware:AdminMiddleware:InvalidToken", "error", err)
				return m.Unauthorized(errors.ErrUnauthorized, "Invalid token")
			}

			if !m.admin.IsAdmin(claims.Email) {
				logger.Warn("Middleware:AdminMiddleware:NotAdmin", "email", claims.Email)
				return m.Forbidden(errors.ErrForbidden, "Admin access required")
			}

			c.Set(constants.ContextTokenData, claims)
			c.Set(constants.ContextAdminEmail, claims.Email)
			return next(c)
		}
	}
}

// RequestLogger logs one line per request with the request id and latency.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			req := c.Request()
			res := c.Response()
			logger.Info("HTTP:Request",
				"request_id", res.Header().Get(echo.HeaderXRequestID),
				"method", req.Method,
				"path", c.Path(),
				"uri", req.RequestURI,
				"status", res.Status,
				"latency_ms", time.Since(start).Milliseconds(),
			)
			return nil
		}
	}
}

// AdminEmail returns the email stored by AdminMiddleware.
func AdminEmail(c echo.Context) string {
	email, _ := c.Get(constants.ContextAdminEmail).(string)
	return email
}
