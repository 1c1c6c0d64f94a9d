package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/expensetracker/internal/domain/errors"
	"github.com/polkiloo/expensetracker/internal/domain/model"
	"github.com/polkiloo/expensetracker/internal/domain/repository"
)

// AnalyticsUseCase aggregates a user's expenses.
type AnalyticsUseCase struct {
	expenses repository.ExpenseRepository
	calendar *Calendar
}

// NewAnalyticsUseCase constructs AnalyticsUseCase.
func NewAnalyticsUseCase(expenses repository.ExpenseRepository, calendar *Calendar) *AnalyticsUseCase {
	return &AnalyticsUseCase{expenses: expenses, calendar: calendar}
}

// Summary computes total, today and this-month sums. The buckets overlap.
func (u *AnalyticsUseCase) Summary(ctx context.Context, user *model.User) (*model.Summary, error) {
	if user == nil {
		return nil, domainErrors.ErrUnknownUser
	}

	total, err := u.expenses.SumByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	today := u.calendar.Today()
	todaySum, err := u.expenses.SumByOwnerAndDateRange(ctx, user.ID, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	month, err := u.monthSpend(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.Summary{Total: total, Today: todaySum, ThisMonth: month}, nil
}

// CategorySummary sums amounts per category present in user's expenses.
func (u *AnalyticsUseCase) CategorySummary(ctx context.Context, user *model.User) (model.CategorySummary, error) {
	if user == nil {
		return nil, domainErrors.ErrUnknownUser
	}
	sums, err := u.expenses.SumByCategory(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if sums == nil {
		sums = map[string]decimal.Decimal{}
	}
	return model.CategorySummary(sums), nil
}

// BudgetCheck compares this month's spending against budget.
// Spending equal to the budget is still within the limit.
func (u *AnalyticsUseCase) BudgetCheck(ctx context.Context, user *model.User, budget decimal.Decimal) (*model.BudgetReport, error) {
	if user == nil {
		return nil, domainErrors.ErrUnknownUser
	}

	spent, err := u.monthSpend(ctx, user)
	if err != nil {
		return nil, err
	}

	report := &model.BudgetReport{Budget: budget, Spent: spent}
	if spent.GreaterThan(budget) {
		overBy := spent.Sub(budget)
		report.Status = model.BudgetLimitExceeded
		report.OverBy = &overBy
	} else {
		remaining := budget.Sub(spent)
		report.Status = model.BudgetWithinLimit
		report.Remaining = &remaining
	}
	return report, nil
}

func (u *AnalyticsUseCase) monthSpend(ctx context.Context, user *model.User) (decimal.Decimal, error) {
	start, end := u.calendar.ThisMonth()
	return u.expenses.SumByOwnerAndDateRange(ctx, user.ID, start, end)
}
