package model

import "time"

// User represents a registered account owning expenses.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
