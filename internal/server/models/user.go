package models

import "time"

// User is an account record. PasswordHash is a bcrypt hash and must never be
// logged or sent back to a client.
type User struct {
	ID           string
	UserName     string
	PasswordHash []byte `json:"-"`
	CreatedAt    time.Time
}
