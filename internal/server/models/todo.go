package models

import "time"

// Todo is a task owned by exactly one user.
type Todo struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"-"`
	Task      string    `json:"task"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"-"`
}
