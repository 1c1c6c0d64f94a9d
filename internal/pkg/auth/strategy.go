package auth

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidToken = errors.New("invalid auth token")
	ErrTokenExpired = errors.New("auth token expired")
)

const (
	StrategyJWT  = "jwt"
	StrategyHMAC = "hmac"

	defaultTTL = 24 * time.Hour
)

// Strategy issues and verifies session tokens bound to a subject email.
type Strategy interface {
	IssueToken(subject string) (string, error)
	ParseToken(token string) (string, error)
	Name() string
}

type Options struct {
	TTL time.Duration
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.TTL <= 0 {
		o.TTL = defaultTTL
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// NewStrategy builds the named token strategy.
func NewStrategy(name, secret string, opts Options) (Strategy, error) {
	switch name {
	case "", StrategyJWT:
		return NewJWTStrategy(secret, opts), nil
	case StrategyHMAC:
		return NewHMACStrategy(secret, opts), nil
	default:
		return nil, fmt.Errorf("unknown token strategy %q", name)
	}
}
