package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/expensetracker/internal/domain/model"
	"github.com/polkiloo/expensetracker/internal/usecase"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// TrackerFacade exposes the use cases to the HTTP layer.
type TrackerFacade struct {
	auth      *usecase.AuthUseCase
	expenses  *usecase.ExpenseUseCase
	analytics *usecase.AnalyticsUseCase
	health    HealthChecker
}

func NewTrackerFacade(auth *usecase.AuthUseCase, expenses *usecase.ExpenseUseCase, analytics *usecase.AnalyticsUseCase, health HealthChecker) *TrackerFacade {
	return &TrackerFacade{auth: auth, expenses: expenses, analytics: analytics, health: health}
}

func (f *TrackerFacade) Register(ctx context.Context, email, password string) error {
	_, err := f.auth.Register(ctx, email, password)
	return err
}

func (f *TrackerFacade) Login(ctx context.Context, email, password string) (string, error) {
	return f.auth.Login(ctx, email, password)
}

func (f *TrackerFacade) Resolve(ctx context.Context, header string) (*model.User, error) {
	return f.auth.Resolve(ctx, header)
}

func (f *TrackerFacade) CreateExpense(ctx context.Context, user *model.User, fields model.ExpenseFields) (*model.Expense, error) {
	return f.expenses.Create(ctx, user, fields)
}

func (f *TrackerFacade) Expenses(ctx context.Context, user *model.User) ([]model.Expense, error) {
	return f.expenses.List(ctx, user)
}

func (f *TrackerFacade) FilterExpenses(ctx context.Context, user *model.User, category string, title *string) ([]model.Expense, error) {
	return f.expenses.Filter(ctx, user, category, title)
}

func (f *TrackerFacade) UpdateExpense(ctx context.Context, user *model.User, id int64, fields model.ExpenseFields) (*model.Expense, error) {
	return f.expenses.Update(ctx, user, id, fields)
}

func (f *TrackerFacade) DeleteExpense(ctx context.Context, user *model.User, id int64) error {
	return f.expenses.Delete(ctx, user, id)
}

func (f *TrackerFacade) Summary(ctx context.Context, user *model.User) (*model.Summary, error) {
	return f.analytics.Summary(ctx, user)
}

func (f *TrackerFacade) CategorySummary(ctx context.Context, user *model.User) (model.CategorySummary, error) {
	return f.analytics.CategorySummary(ctx, user)
}

func (f *TrackerFacade) BudgetCheck(ctx context.Context, user *model.User, budget decimal.Decimal) (*model.BudgetReport, error) {
	return f.analytics.BudgetCheck(ctx, user, budget)
}

func (f *TrackerFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
