// Package auth issues the bearer tokens attached to backend requests.
package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
)

const DefaultTTL = 15 * time.Minute

var ErrInvalidToken = errors.New("invalid token")

// T signs and verifies HS256 tokens. Jwt holds the last token created.
type T struct {
	Jwt string

	mu     sync.Mutex
	secret []byte
	ttl    time.Duration
}

type Option func(*T)

func WithSecret(secret []byte) Option {
	return func(t *T) { t.secret = secret }
}

func WithTTL(d time.Duration) Option {
	return func(t *T) { t.ttl = d }
}

// NewT uses AIWEB_SECRET unless a secret is given. With neither, a random
// per-process secret is generated.
func NewT(opts ...Option) *T {
	t := &T{secret: GetSecret(), ttl: DefaultTTL}
	for _, opt := range opts {
		opt(t)
	}
	if len(t.secret) == 0 {
		t.secret = make([]byte, 32)
		if _, err := rand.Read(t.secret); err != nil {
			panic(fmt.Sprintf("auth: failed to generate secret: %v", err))
		}
	}
	return t
}

// Create signs a token for subject.
func (t *T) Create(subject string) (string, error) {
	now := time.Now()
	claims := jwt.StandardClaims{
		Subject:   subject,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(t.ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	t.mu.Lock()
	t.Jwt = signed
	t.mu.Unlock()
	return signed, nil
}

// Verify checks signature and expiry and returns the subject.
func (t *T) Verify(tokenString string) (string, error) {
	claims := &jwt.StandardClaims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tok.Valid {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// Extract pulls the token out of an Authorization header value.
func (t *T) Extract(header string) (string, error) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fmt.Errorf("%w: malformed authorization header", ErrInvalidToken)
	}
	return parts[1], nil
}

// TokenSource returns a function yielding a valid token for subject. A token
// is reused until less than a minute of its lifetime remains.
func (t *T) TokenSource(subject string) func() (string, error) {
	var (
		mu      sync.Mutex
		current string
		expires time.Time
	)
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		if current != "" && time.Until(expires) > time.Minute {
			return current, nil
		}
		tok, err := t.Create(subject)
		if err != nil {
			return "", err
		}
		current, expires = tok, time.Now().Add(t.ttl)
		return current, nil
	}
}
