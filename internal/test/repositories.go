package test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/expensetracker/internal/domain/errors"
	"github.com/polkiloo/expensetracker/internal/domain/model"
	"github.com/polkiloo/expensetracker/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless the email exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, email, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[email]; exists {
		return nil, domainErrors.ErrDuplicateEmail
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
	s.Next++
	s.Users[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ExpenseRepositoryStub keeps expenses in memory and honours the repository query contract.
// Err, when set, is returned by every method.
type ExpenseRepositoryStub struct {
	mu    sync.Mutex
	Items map[int64]model.Expense
	Next  int64
	Err   error
}

// NewExpenseRepositoryStub constructs an empty in-memory expense repository.
func NewExpenseRepositoryStub() *ExpenseRepositoryStub {
	return &ExpenseRepositoryStub{Items: make(map[int64]model.Expense), Next: 1}
}

// Create assigns the next identifier and stores a copy.
func (s *ExpenseRepositoryStub) Create(ctx context.Context, e model.Expense) (*model.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Items == nil {
		s.Items = make(map[int64]model.Expense)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	e.ID = s.Next
	s.Next++
	s.Items[e.ID] = e
	return &e, nil
}

// GetByID returns a stored expense or not found.
func (s *ExpenseRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	e, ok := s.Items[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &e, nil
}

// ListByOwner returns the owner's expenses in insertion order.
func (s *ExpenseRepositoryStub) ListByOwner(ctx context.Context, ownerID int64) ([]model.Expense, error) {
	return s.Filter(ctx, ownerID, model.CategoryAll, nil)
}

// Filter applies category and case-insensitive title matching.
func (s *ExpenseRepositoryStub) Filter(ctx context.Context, ownerID int64, category string, title *string) ([]model.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	result := make([]model.Expense, 0)
	for _, e := range s.Items {
		if e.OwnerID != ownerID {
			continue
		}
		if category != model.CategoryAll && e.Category != category {
			continue
		}
		if title != nil && !strings.Contains(strings.ToLower(e.Title), strings.ToLower(*title)) {
			continue
		}
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Update overwrites a stored expense.
func (s *ExpenseRepositoryStub) Update(ctx context.Context, e model.Expense) (*model.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if _, ok := s.Items[e.ID]; !ok {
		return nil, domainErrors.ErrNotFound
	}
	s.Items[e.ID] = e
	return &e, nil
}

// Delete removes a stored expense.
func (s *ExpenseRepositoryStub) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Items[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Items, id)
	return nil
}

// SumByOwner sums every amount of the owner.
func (s *ExpenseRepositoryStub) SumByOwner(ctx context.Context, ownerID int64) (decimal.Decimal, error) {
	return s.sum(ownerID, func(model.Expense) bool { return true })
}

// SumByOwnerAndDateRange sums amounts dated in [from, to).
func (s *ExpenseRepositoryStub) SumByOwnerAndDateRange(ctx context.Context, ownerID int64, from, to time.Time) (decimal.Decimal, error) {
	return s.sum(ownerID, func(e model.Expense) bool {
		return !e.Date.Before(from) && e.Date.Before(to)
	})
}

// SumByCategory groups the owner's amounts by category.
func (s *ExpenseRepositoryStub) SumByCategory(ctx context.Context, ownerID int64) (map[string]decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	result := make(map[string]decimal.Decimal)
	for _, e := range s.Items {
		if e.OwnerID == ownerID {
			result[e.Category] = result[e.Category].Add(e.Amount)
		}
	}
	return result, nil
}

func (s *ExpenseRepositoryStub) sum(ownerID int64, match func(model.Expense) bool) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return decimal.Zero, s.Err
	}
	total := decimal.Zero
	for _, e := range s.Items {
		if e.OwnerID == ownerID && match(e) {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

// FactoryStub bundles in-memory repositories behind repository.Factory.
type FactoryStub struct {
	UsersRepo    *UserRepositoryStub
	ExpensesRepo *ExpenseRepositoryStub
	HealthErr    error
	Closed       bool
}

// Users returns the user repository, creating it on first use.
func (f *FactoryStub) Users() repository.UserRepository {
	if f.UsersRepo == nil {
		f.UsersRepo = NewUserRepositoryStub()
	}
	return f.UsersRepo
}

// Expenses returns the expense repository, creating it on first use.
func (f *FactoryStub) Expenses() repository.ExpenseRepository {
	if f.ExpensesRepo == nil {
		f.ExpensesRepo = NewExpenseRepositoryStub()
	}
	return f.ExpensesRepo
}

// HealthCheck returns HealthErr.
func (f *FactoryStub) HealthCheck(context.Context) error {
	return f.HealthErr
}

// Close records that the factory was closed.
func (f *FactoryStub) Close() {
	f.Closed = true
}

var (
	_ repository.UserRepository    = (*UserRepositoryStub)(nil)
	_ repository.ExpenseRepository = (*ExpenseRepositoryStub)(nil)
	_ repository.Factory           = (*FactoryStub)(nil)
)
