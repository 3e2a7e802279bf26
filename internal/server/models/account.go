package models

import "time"

// Account is an identity record; PasswordHash is an opaque bcrypt digest.
type Account struct {
	ID           int64
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}
