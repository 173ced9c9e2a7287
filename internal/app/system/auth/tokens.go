package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the session token validity window.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Kind distinguishes which collection the token subject identifies.
// Handlers re-load the record fresh on every request, so the kind only
// routes the lookup; it never carries cached role state.
const (
	KindUser  = "user"
	KindAdmin = "admin"
)

// Claims is the signed token payload. Subject is the hex document id.
type Claims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

// ErrInvalidToken is returned for any token that fails verification,
// including expired or malformed tokens. Callers get no detail about
// which check failed.
var ErrInvalidToken = errors.New("invalid or expired token")

// Manager issues and verifies HS256 session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a token Manager. A zero ttl falls back to the
// 7-day default.
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given subject id and kind, valid for the
// manager's TTL.
func (m *Manager) Issue(id, kind string) (string, error) {
	now := time.Now()
	claims := Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a signed token, returning its claims.
func (m *Manager) Verify(token string) (*Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
