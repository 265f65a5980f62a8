package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin = "admin"

	TokenTypeSession = "session"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrMissingSubject = errors.New("token has no subject")
)

// Claims represents an admin session token
type Claims struct {
	Role string `json:"role"`
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// Manager signs and validates admin session tokens
type Manager struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewManager creates a session token manager; expiry defaults to 24h
func NewManager(secret string, expiry time.Duration) *Manager {
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &Manager{secret: []byte(secret), expiry: expiry, now: time.Now}
}

// Expiry is the lifetime of tokens issued by this manager
func (m *Manager) Expiry() time.Duration {
	return m.expiry
}

// GenerateSessionToken issues an HS256 token for the given subject and role
func (m *Manager) GenerateSessionToken(subject, role string) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.expiry)

	claims := Claims{
		Role: role,
		Type: TokenTypeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateSessionToken parses a session token and checks its type
func (m *Manager) ValidateSessionToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if err := parseHMAC(tokenString, claims, m.secret); err != nil {
		return nil, err
	}
	if claims.Type != TokenTypeSession {
		return nil, fmt.Errorf("%w: unexpected token type %q", ErrInvalidToken, claims.Type)
	}
	return claims, nil
}

// ProviderVerifier validates bearer tokens minted by the external identity
// provider (HS256 with a shared secret) and extracts the subject.
type ProviderVerifier struct {
	secret []byte
	issuer string
}

func NewProviderVerifier(secret, issuer string) *ProviderVerifier {
	return &ProviderVerifier{secret: []byte(secret), issuer: issuer}
}

// Subject returns the sub claim of a valid provider token
func (v *ProviderVerifier) Subject(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	if err := parseHMAC(tokenString, claims, v.secret); err != nil {
		return "", err
	}
	if v.issuer != "" && claims.Issuer != v.issuer {
		return "", fmt.Errorf("%w: unexpected issuer %q", ErrInvalidToken, claims.Issuer)
	}
	if claims.Subject == "" {
		return "", ErrMissingSubject
	}
	return claims.Subject, nil
}

func parseHMAC(tokenString string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
