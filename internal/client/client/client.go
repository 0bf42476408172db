package client

import (
	"context"
)

// Todo is a todo item as returned by the API.
type Todo struct {
	ID        int64  `json:"id"`
	Task      string `json:"task"`
	Completed bool   `json:"completed"`
}

type Client interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) error
	ListTodos(ctx context.Context) ([]Todo, error)
	Ping(ctx context.Context) error
	LoggedIn() bool
	Logout()
}
