package httpx

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Fixed response messages. Internal error text never reaches the client.
const (
	msgCredentialsRequired = "username and password are required"
	msgUserNotFound        = "User not found"
	msgInvalidPassword     = "Invalid password"
	msgUnavailable         = "Service unavailable"
	msgInternal            = "Internal server error"
	msgInvalidToken        = "Invalid token"
	msgTokenExpired        = "Token expired"
	msgRateLimited         = "rate limit exceeded"
)

type messageResponse struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// writeJSON writes JSON response with status code.
func writeJSON(c echo.Context, status int, payload any) error {
	return c.JSON(status, payload)
}

// writeMessage sends a {"message": ...} body.
func writeMessage(c echo.Context, status int, msg string) error {
	return writeJSON(c, status, messageResponse{Message: msg})
}

// errorHandler renders framework errors (unknown route, wrong method) in the
// same {"message": ...} shape as handler errors.
func (r *Router) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	msg := msgInternal
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		msg = http.StatusText(status)
	} else {
		r.logger.Error(c.Request().Context(), "unhandled error", "error", err)
	}
	if err := writeMessage(c, status, msg); err != nil {
		r.logger.Warn(c.Request().Context(), "write error response", "error", err)
	}
}
