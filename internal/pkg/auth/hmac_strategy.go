package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// HMACStrategy implements compact tokens of the form
// base64(base64url(subject):issuedAt:expires:signature).
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	opts = opts.withDefaults()
	return &HMACStrategy{secret: []byte(secret), ttl: opts.TTL, now: opts.Now}
}

// IssueToken generates signed auth token for the subject.
func (s *HMACStrategy) IssueToken(subject string) (string, error) {
	now := s.now()
	encodedSubject := base64.RawURLEncoding.EncodeToString([]byte(subject))
	payload := fmt.Sprintf("%s:%d:%d", encodedSubject, now.Unix(), now.Add(s.ttl).Unix())
	token := fmt.Sprintf("%s:%s", payload, s.sign(payload))
	return base64.StdEncoding.EncodeToString([]byte(token)), nil
}

// ParseToken validates token and returns encoded subject.
func (s *HMACStrategy) ParseToken(token string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", ErrInvalidToken
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 4 {
		return "", ErrInvalidToken
	}

	payload := strings.Join(parts[:3], ":")
	expectedSig := s.sign(payload)
	if !hmac.Equal([]byte(expectedSig), []byte(parts[3])) {
		return "", ErrInvalidToken
	}

	subject, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil || len(subject) == 0 {
		return "", ErrInvalidToken
	}

	if _, err := strconv.ParseInt(parts[1], 10, 64); err != nil {
		return "", ErrInvalidToken
	}

	expires, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return "", ErrInvalidToken
	}

	if s.now().After(time.Unix(expires, 0)) {
		return "", ErrTokenExpired
	}

	return string(subject), nil
}

func (s *HMACStrategy) Name() string {
	return StrategyHMAC
}

func (s *HMACStrategy) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
