package httpx

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/labstack/echo/v4"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func bindCredentials(c echo.Context) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return req, false
	}
	if req.Username == "" || req.Password == "" {
		return req, false
	}
	return req, true
}

// handleRegister answers every store-side failure, duplicates included, with
// 503 so clients cannot probe which usernames exist.
func (r *Router) handleRegister(c echo.Context) error {
	req, ok := bindCredentials(c)
	if !ok {
		return writeMessage(c, http.StatusBadRequest, msgCredentialsRequired)
	}

	token, err := r.users.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			return writeMessage(c, http.StatusBadRequest, msgCredentialsRequired)
		case errors.Is(err, common.ErrorConfiguration):
			return writeMessage(c, http.StatusInternalServerError, msgInternal)
		default:
			return writeMessage(c, http.StatusServiceUnavailable, msgUnavailable)
		}
	}

	return writeJSON(c, http.StatusOK, tokenResponse{Token: token})
}

func (r *Router) handleLogin(c echo.Context) error {
	req, ok := bindCredentials(c)
	if !ok {
		return writeMessage(c, http.StatusBadRequest, msgCredentialsRequired)
	}

	token, err := r.users.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			return writeMessage(c, http.StatusBadRequest, msgCredentialsRequired)
		case errors.Is(err, common.ErrorNotFound):
			return writeMessage(c, http.StatusNotFound, msgUserNotFound)
		case errors.Is(err, common.ErrorInvalidCredentials):
			return writeMessage(c, http.StatusUnauthorized, msgInvalidPassword)
		case errors.Is(err, common.ErrorUnavailable):
			return writeMessage(c, http.StatusServiceUnavailable, msgUnavailable)
		default:
			return writeMessage(c, http.StatusInternalServerError, msgInternal)
		}
	}

	return writeJSON(c, http.StatusOK, tokenResponse{Token: token})
}

func (r *Router) handleTodos(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return writeMessage(c, http.StatusUnauthorized, msgInvalidToken)
	}

	items, err := r.todos.List(c.Request().Context(), userID)
	if err != nil {
		return writeMessage(c, http.StatusServiceUnavailable, msgUnavailable)
	}

	return writeJSON(c, http.StatusOK, items)
}

func (r *Router) handleHealth(c echo.Context) error {
	if r.dbHealth != nil {
		if err := r.dbHealth(c.Request().Context()); err != nil {
			r.logger.Warn(c.Request().Context(), "health check failed", "error", err)
			return writeJSON(c, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
	}
	return writeJSON(c, http.StatusOK, map[string]string{"status": "ok"})
}
