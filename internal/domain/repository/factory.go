package repository

import "context"

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Expenses() ExpenseRepository
	HealthCheck(ctx context.Context) error
	Close()
}
