// Package client talks to the todokeeper HTTP API.
//
// # Overview
//
// Client is the API contract used by the CLI; HTTPClient implements it over
// net/http. After a successful Register or Login the HTTPClient keeps the
// issued token in memory and sends it as a Bearer credential on ListTodos.
// Logout forgets it. Nothing is written to disk.
//
// # Error Handling
//
// HTTP statuses are mapped to sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrTokenExpired, ErrNotLoggedIn,
// ErrUserNotFound, ErrInvalidPassword, ErrBadRequest, ErrRateLimited.
package client
