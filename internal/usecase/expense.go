package usecase

import (
	"context"
	"time"

	domainErrors "github.com/polkiloo/expensetracker/internal/domain/errors"
	"github.com/polkiloo/expensetracker/internal/domain/model"
	"github.com/polkiloo/expensetracker/internal/domain/repository"
)

// ExpenseUseCase performs expense CRUD on behalf of an authenticated user.
type ExpenseUseCase struct {
	expenses repository.ExpenseRepository
	calendar *Calendar
}

// NewExpenseUseCase constructs ExpenseUseCase.
func NewExpenseUseCase(expenses repository.ExpenseRepository, calendar *Calendar) *ExpenseUseCase {
	return &ExpenseUseCase{expenses: expenses, calendar: calendar}
}

// Create stores a new expense owned by user. An omitted date defaults to today.
func (u *ExpenseUseCase) Create(ctx context.Context, user *model.User, fields model.ExpenseFields) (*model.Expense, error) {
	if user == nil {
		return nil, domainErrors.ErrUnknownUser
	}

	date := u.calendar.Today()
	if fields.Date != nil {
		date = model.DateOf(*fields.Date)
	}

	return u.expenses.Create(ctx, model.Expense{
		OwnerID:     user.ID,
		Title:       fields.Title,
		Amount:      fields.Amount,
		Description: fields.Description,
		Category:    fields.Category,
		Date:        date,
	})
}

// List returns every expense owned by user.
func (u *ExpenseUseCase) List(ctx context.Context, user *model.User) ([]model.Expense, error) {
	if user == nil {
		return nil, domainErrors.ErrUnknownUser
	}
	return u.expenses.ListByOwner(ctx, user.ID)
}

// Filter returns user's expenses matching category (model.CategoryAll matches any)
// and, when title is non-nil, containing title case-insensitively.
func (u *ExpenseUseCase) Filter(ctx context.Context, user *model.User, category string, title *string) ([]model.Expense, error) {
	if user == nil {
		return nil, domainErrors.ErrUnknownUser
	}
	return u.expenses.Filter(ctx, user.ID, category, title)
}

// Update overwrites all mutable fields of an expense owned by user.
// Omitted values overwrite with their zero value; there is no partial update.
func (u *ExpenseUseCase) Update(ctx context.Context, user *model.User, id int64, fields model.ExpenseFields) (*model.Expense, error) {
	expense, err := u.owned(ctx, user, id)
	if err != nil {
		return nil, err
	}

	var date time.Time
	if fields.Date != nil {
		date = model.DateOf(*fields.Date)
	}

	expense.Title = fields.Title
	expense.Amount = fields.Amount
	expense.Description = fields.Description
	expense.Category = fields.Category
	expense.Date = date

	return u.expenses.Update(ctx, *expense)
}

// Delete permanently removes an expense owned by user.
func (u *ExpenseUseCase) Delete(ctx context.Context, user *model.User, id int64) error {
	if _, err := u.owned(ctx, user, id); err != nil {
		return err
	}
	return u.expenses.Delete(ctx, id)
}

func (u *ExpenseUseCase) owned(ctx context.Context, user *model.User, id int64) (*model.Expense, error) {
	if user == nil {
		return nil, domainErrors.ErrUnknownUser
	}
	expense, err := u.expenses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !expense.OwnedBy(user) {
		return nil, domainErrors.ErrForbidden
	}
	return expense, nil
}
