package client

import "errors"

var (
	ErrUnavailable     = errors.New("server unavailable")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrTokenExpired    = errors.New("session expired")
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrBadRequest      = errors.New("username and password are required")
	ErrRateLimited     = errors.New("too many requests, try again later")
)
