package test

import (
	"context"
	"errors"

	"github.com/polkiloo/expensetracker/internal/domain/model"
	pkgAuth "github.com/polkiloo/expensetracker/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses tokens via function overrides.
// By default the token is "token:" followed by the subject.
type StrategyStub struct {
	IssueFn func(string) (string, error)
	ParseFn func(string) (string, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(subject string) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(subject)
	}
	return "token:" + subject, nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	const prefix = "token:"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return "", pkgAuth.ErrInvalidToken
	}
	return token[len(prefix):], nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn func(context.Context, string, string) error
	LoginFn    func(context.Context, string, string) (string, error)
	ResolveFn  func(context.Context, string) (*model.User, error)
}

// Register succeeds unless overridden.
func (s AuthFacadeStub) Register(ctx context.Context, email, password string) error {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, password)
	}
	return nil
}

// Login returns a token for successful authentication scenarios.
func (s AuthFacadeStub) Login(ctx context.Context, email, password string) (string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, email, password)
	}
	return "token", nil
}

// Resolve returns user 1 for any header unless overridden.
func (s AuthFacadeStub) Resolve(ctx context.Context, header string) (*model.User, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, header)
	}
	return &model.User{ID: 1, Email: "user@example.com"}, nil
}

// TrackerFacadeStub aggregates facade dependencies for HTTP layer tests.
type TrackerFacadeStub struct {
	AuthFacadeStub
	ExpenseFacadeStub
	AnalyticsFacadeStub
	HealthFacadeStub
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
