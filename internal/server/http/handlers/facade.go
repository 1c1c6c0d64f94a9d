package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/expensetracker/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
	Resolve(ctx context.Context, header string) (*model.User, error)
}

// ExpenseFacade encapsulates expense operations exposed via HTTP.
type ExpenseFacade interface {
	CreateExpense(ctx context.Context, user *model.User, fields model.ExpenseFields) (*model.Expense, error)
	Expenses(ctx context.Context, user *model.User) ([]model.Expense, error)
	FilterExpenses(ctx context.Context, user *model.User, category string, title *string) ([]model.Expense, error)
	UpdateExpense(ctx context.Context, user *model.User, id int64, fields model.ExpenseFields) (*model.Expense, error)
	DeleteExpense(ctx context.Context, user *model.User, id int64) error
}

// AnalyticsFacade provides aggregated spending views.
type AnalyticsFacade interface {
	Summary(ctx context.Context, user *model.User) (*model.Summary, error)
	CategorySummary(ctx context.Context, user *model.User) (model.CategorySummary, error)
	BudgetCheck(ctx context.Context, user *model.User, budget decimal.Decimal) (*model.BudgetReport, error)
}

// HealthFacade reports whether storage is reachable.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// TrackerFacade aggregates the full set of operations used across handlers.
type TrackerFacade interface {
	AuthFacade
	ExpenseFacade
	AnalyticsFacade
	HealthFacade
}
