package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/client/client"
)

// Todos prints the caller's todos. An expired session is closed.
func (a *App) Todos(ctx context.Context) error {
	items, err := a.client.ListTodos(ctx)
	if err != nil {
		if errors.Is(err, client.ErrTokenExpired) || errors.Is(err, client.ErrUnauthorized) {
			a.client.Logout()
			a.userName = ""
		}
		return err
	}

	if len(items) == 0 {
		fmt.Fprintln(a.out, "No todos yet")
		return nil
	}
	for _, t := range items {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(a.out, "[%s] %d. %s\n", mark, t.ID, t.Task)
	}
	return nil
}
