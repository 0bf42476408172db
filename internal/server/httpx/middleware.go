package httpx

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	ctxKeyUserID    = "user_id"
	ctxKeyRequestID = "request_id"
)

func (r *Router) requestID() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator:    uuid.NewString,
		TargetHeader: common.RequestIDHeaderName,
		RequestIDHandler: func(c echo.Context, id string) {
			c.Set(ctxKeyRequestID, id)
		},
	})
}

func (r *Router) logRequests() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			args := []any{
				"method", req.Method,
				"route", c.Path(),
				"status", c.Response().Status,
				"latency", latency,
				"request_id", c.Get(ctxKeyRequestID),
			}
			if err != nil {
				args = append(args, "error", err)
			}
			r.logger.Debug(req.Context(), "request handled", args...)
			return nil
		}
	}
}

// requireAuth resolves the bearer token to an account id and stores it on
// the echo context.
func (r *Router) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		token, err := bearerToken(c.Request().Header.Get(common.AuthorizationHeaderName))
		if err != nil {
			r.logger.Warn(ctx, "authorization header invalid", "error", err, "path", c.Path())
			return writeMessage(c, http.StatusUnauthorized, msgInvalidToken)
		}

		userID, err := r.users.Authenticate(ctx, token)
		if err != nil {
			r.logger.Warn(ctx, "token validation failed", "error", err, "path", c.Path())
			switch {
			case errors.Is(err, common.ErrTokenExpired):
				return writeMessage(c, http.StatusUnauthorized, msgTokenExpired)
			case errors.Is(err, common.ErrorConfiguration):
				return writeMessage(c, http.StatusInternalServerError, msgInternal)
			case errors.Is(err, common.ErrorUnavailable):
				return writeMessage(c, http.StatusServiceUnavailable, msgUnavailable)
			default:
				return writeMessage(c, http.StatusUnauthorized, msgInvalidToken)
			}
		}

		c.Set(ctxKeyUserID, userID)
		return next(c)
	}
}

func userIDFromContext(c echo.Context) (string, bool) {
	id, ok := c.Get(ctxKeyUserID).(string)
	return id, ok && id != ""
}

func bearerToken(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], common.BearerScheme) {
		return "", errors.New("invalid authorization header format")
	}
	return parts[1], nil
}
