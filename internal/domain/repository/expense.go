package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/expensetracker/internal/domain/model"
)

// ExpenseRepository describes persistence and aggregation of expenses.
// Aggregates over no rows return zero.
type ExpenseRepository interface {
	Create(ctx context.Context, expense model.Expense) (*model.Expense, error)
	GetByID(ctx context.Context, id int64) (*model.Expense, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Expense, error)
	// Filter matches category unless it equals model.CategoryAll, and title as a
	// case-insensitive substring when non-nil.
	Filter(ctx context.Context, ownerID int64, category string, title *string) ([]model.Expense, error)
	Update(ctx context.Context, expense model.Expense) (*model.Expense, error)
	Delete(ctx context.Context, id int64) error

	SumByOwner(ctx context.Context, ownerID int64) (decimal.Decimal, error)
	// SumByOwnerAndDateRange sums expenses dated in [from, to).
	SumByOwnerAndDateRange(ctx context.Context, ownerID int64, from, to time.Time) (decimal.Decimal, error)
	SumByCategory(ctx context.Context, ownerID int64) (map[string]decimal.Decimal, error)
}
