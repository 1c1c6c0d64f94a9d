package test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/expensetracker/internal/domain/model"
)

// ExpenseFacadeStub provides controllable behaviour for expense endpoints.
type ExpenseFacadeStub struct {
	CreateFn func(context.Context, *model.User, model.ExpenseFields) (*model.Expense, error)
	ListFn   func(context.Context, *model.User) ([]model.Expense, error)
	FilterFn func(context.Context, *model.User, string, *string) ([]model.Expense, error)
	UpdateFn func(context.Context, *model.User, int64, model.ExpenseFields) (*model.Expense, error)
	DeleteFn func(context.Context, *model.User, int64) error
}

// CreateExpense echoes the fields back as expense 1.
func (s ExpenseFacadeStub) CreateExpense(ctx context.Context, user *model.User, fields model.ExpenseFields) (*model.Expense, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, user, fields)
	}
	return expenseFrom(1, user, fields), nil
}

// Expenses returns a single default expense.
func (s ExpenseFacadeStub) Expenses(ctx context.Context, user *model.User) ([]model.Expense, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, user)
	}
	return []model.Expense{DefaultExpense(user)}, nil
}

// FilterExpenses returns a single default expense.
func (s ExpenseFacadeStub) FilterExpenses(ctx context.Context, user *model.User, category string, title *string) ([]model.Expense, error) {
	if s.FilterFn != nil {
		return s.FilterFn(ctx, user, category, title)
	}
	return []model.Expense{DefaultExpense(user)}, nil
}

// UpdateExpense echoes the fields back under the given id.
func (s ExpenseFacadeStub) UpdateExpense(ctx context.Context, user *model.User, id int64, fields model.ExpenseFields) (*model.Expense, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, user, id, fields)
	}
	return expenseFrom(id, user, fields), nil
}

// DeleteExpense succeeds unless overridden.
func (s ExpenseFacadeStub) DeleteExpense(ctx context.Context, user *model.User, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, user, id)
	}
	return nil
}

// DefaultExpense is the expense returned by stub listings.
func DefaultExpense(user *model.User) model.Expense {
	var owner int64
	if user != nil {
		owner = user.ID
	}
	return model.Expense{
		ID:       1,
		OwnerID:  owner,
		Title:    "Lunch",
		Amount:   decimal.RequireFromString("12.5"),
		Category: "Food",
		Date:     time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	}
}

func expenseFrom(id int64, user *model.User, fields model.ExpenseFields) *model.Expense {
	e := &model.Expense{
		ID:          id,
		Title:       fields.Title,
		Amount:      fields.Amount,
		Description: fields.Description,
		Category:    fields.Category,
	}
	if user != nil {
		e.OwnerID = user.ID
	}
	if fields.Date != nil {
		e.Date = *fields.Date
	}
	return e
}

// AnalyticsFacadeStub simulates analytics operations.
type AnalyticsFacadeStub struct {
	SummaryFn         func(context.Context, *model.User) (*model.Summary, error)
	CategorySummaryFn func(context.Context, *model.User) (model.CategorySummary, error)
	BudgetCheckFn     func(context.Context, *model.User, decimal.Decimal) (*model.BudgetReport, error)
}

// Summary returns configured summary or fixed default data.
func (s AnalyticsFacadeStub) Summary(ctx context.Context, user *model.User) (*model.Summary, error) {
	if s.SummaryFn != nil {
		return s.SummaryFn(ctx, user)
	}
	return &model.Summary{
		Total:     decimal.NewFromInt(100),
		Today:     decimal.NewFromInt(10),
		ThisMonth: decimal.NewFromInt(60),
	}, nil
}

// CategorySummary returns configured sums or a single Food entry.
func (s AnalyticsFacadeStub) CategorySummary(ctx context.Context, user *model.User) (model.CategorySummary, error) {
	if s.CategorySummaryFn != nil {
		return s.CategorySummaryFn(ctx, user)
	}
	return model.CategorySummary{"Food": decimal.NewFromInt(30)}, nil
}

// BudgetCheck reports the budget as untouched unless overridden.
func (s AnalyticsFacadeStub) BudgetCheck(ctx context.Context, user *model.User, budget decimal.Decimal) (*model.BudgetReport, error) {
	if s.BudgetCheckFn != nil {
		return s.BudgetCheckFn(ctx, user, budget)
	}
	remaining := budget
	return &model.BudgetReport{
		Budget:    budget,
		Spent:     decimal.Zero,
		Status:    model.BudgetWithinLimit,
		Remaining: &remaining,
	}, nil
}

// HealthFacadeStub reports storage health.
type HealthFacadeStub struct {
	Err error
}

// HealthCheck returns the configured error.
func (s HealthFacadeStub) HealthCheck(context.Context) error {
	return s.Err
}
