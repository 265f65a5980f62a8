// Package identity turns an incoming request into the voter identity used
// for vote deduplication. Exactly one scheme is active per deployment.
package identity

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"awards-backend/internal/config"
	"awards-backend/pkg/jwt"
)

type Scheme string

const (
	SchemeEmail Scheme = config.IdentitySchemeEmail
	SchemeUser  Scheme = config.IdentitySchemeUser
)

var (
	ErrMissingIdentity = errors.New("voter identity is required")
	ErrInvalidIdentity = errors.New("voter identity is invalid")
)

// Voter is a resolved identity. Key is what the uniqueness constraint sees.
type Voter struct {
	Scheme Scheme
	Key    string
}

// Credentials carries the raw inputs a resolver may read
type Credentials struct {
	Email       string
	BearerToken string
}

type Resolver interface {
	Scheme() Scheme
	Resolve(creds Credentials) (Voter, error)
}

// NewResolver builds the resolver for the configured scheme
func NewResolver(cfg config.VotingConfig) (Resolver, error) {
	switch Scheme(cfg.IdentityScheme) {
	case SchemeEmail:
		return EmailResolver{}, nil
	case SchemeUser:
		if cfg.ProviderSecret == "" {
			return nil, fmt.Errorf("identity scheme %q requires a provider secret", cfg.IdentityScheme)
		}
		return NewUserResolver(jwt.NewProviderVerifier(cfg.ProviderSecret, cfg.ProviderIssuer)), nil
	default:
		return nil, fmt.Errorf("unknown identity scheme %q", cfg.IdentityScheme)
	}
}

// =====================================================
// EMAIL
// =====================================================

// EmailResolver keys voters by a normalized email address
type EmailResolver struct{}

func (EmailResolver) Scheme() Scheme { return SchemeEmail }

func (EmailResolver) Resolve(creds Credentials) (Voter, error) {
	email, err := NormalizeEmail(creds.Email)
	if err != nil {
		return Voter{}, err
	}
	return Voter{Scheme: SchemeEmail, Key: email}, nil
}

// NormalizeEmail trims and lowercases so "Ann@X.com " and "ann@x.com" are one voter
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", ErrMissingIdentity
	}
	if err := validation.Validate(email, is.EmailFormat); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidIdentity, err)
	}
	return email, nil
}

// =====================================================
// USER
// =====================================================

type subjectVerifier interface {
	Subject(token string) (string, error)
}

// UserResolver keys voters by the subject of an identity provider token
type UserResolver struct {
	verifier subjectVerifier
}

func NewUserResolver(verifier subjectVerifier) UserResolver {
	return UserResolver{verifier: verifier}
}

func (UserResolver) Scheme() Scheme { return SchemeUser }

func (r UserResolver) Resolve(creds Credentials) (Voter, error) {
	token := strings.TrimSpace(creds.BearerToken)
	if token == "" {
		return Voter{}, ErrMissingIdentity
	}
	sub, err := r.verifier.Subject(token)
	if err != nil {
		return Voter{}, fmt.Errorf("%w: %v", ErrInvalidIdentity, err)
	}
	return Voter{Scheme: SchemeUser, Key: sub}, nil
}

// BearerToken extracts the token from an Authorization header value
func BearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
