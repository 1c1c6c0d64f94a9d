package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	domainErrors "github.com/polkiloo/expensetracker/internal/domain/errors"
	"github.com/polkiloo/expensetracker/internal/domain/model"
	"github.com/polkiloo/expensetracker/internal/domain/repository"
	pkgAuth "github.com/polkiloo/expensetracker/internal/pkg/auth"
)

// BearerPrefix is the literal prefix of the Authorization header value.
const BearerPrefix = "Bearer "

// AuthUseCase handles registration, login and resolving bearer tokens to users.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy

	decoyOnce sync.Once
	decoyHash string
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Register creates a new account. The email is stored exactly as given.
func (u *AuthUseCase) Register(ctx context.Context, email, password string) (*model.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, domainErrors.ErrInvalidCredentials
	}

	if _, err := u.users.GetByEmail(ctx, email); err == nil {
		return nil, domainErrors.ErrDuplicateEmail
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	usr, err := u.users.Create(ctx, email, hash)
	if err != nil {
		return nil, err
	}
	return usr, nil
}

// Login verifies credentials and issues a session token bound to the email.
// Unknown emails and wrong passwords fail identically.
func (u *AuthUseCase) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			_ = u.hasher.Compare(u.decoy(), password)
			return "", domainErrors.ErrInvalidCredentials
		}
		return "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return "", domainErrors.ErrInvalidCredentials
	}

	return u.tokens.IssueToken(usr.Email)
}

// Resolve turns an Authorization header value into the account it was issued for.
func (u *AuthUseCase) Resolve(ctx context.Context, header string) (*model.User, error) {
	token, ok := strings.CutPrefix(header, BearerPrefix)
	if !ok || token == "" {
		return nil, domainErrors.ErrMissingCredential
	}

	email, err := u.tokens.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrInvalidCredential, err)
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUnknownUser
		}
		return nil, err
	}
	return usr, nil
}

// decoy returns a hash compared against when the email is unknown, so both
// login failures cost one hash comparison.
func (u *AuthUseCase) decoy() string {
	u.decoyOnce.Do(func() {
		u.decoyHash, _ = u.hasher.Hash("decoy-password")
	})
	return u.decoyHash
}
