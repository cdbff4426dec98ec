// Package identity verifies third-party identity tokens.
package identity

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"
	"google.golang.org/api/option"
)

// ErrNoAudience is returned when no OAuth client id is configured; tokens are
// never accepted without an audience check.
var ErrNoAudience = errors.New("oauth client id is not configured")

// Identity is the verified subset of an ID token payload.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

// Verifier checks an identity token and returns who it identifies.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

// tokenValidator is implemented by *idtoken.Validator.
type tokenValidator interface {
	Validate(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error)
}

// GoogleVerifier validates Google-issued ID tokens against the configured
// OAuth client id.
type GoogleVerifier struct {
	audience  string
	validator tokenValidator
}

// NewGoogleVerifier builds a verifier backed by Google's public certificates.
// opts are forwarded to idtoken.NewValidator (e.g. a custom HTTP client).
func NewGoogleVerifier(ctx context.Context, clientID string, opts ...option.ClientOption) (*GoogleVerifier, error) {
	v, err := idtoken.NewValidator(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create id token validator: %w", err)
	}
	return &GoogleVerifier{audience: clientID, validator: v}, nil
}

func (g *GoogleVerifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	if g.audience == "" {
		return nil, ErrNoAudience
	}

	payload, err := g.validator.Validate(ctx, rawToken, g.audience)
	if err != nil {
		return nil, err
	}

	return &Identity{
		Subject: payload.Subject,
		Email:   claimString(payload.Claims, "email"),
		Name:    claimString(payload.Claims, "name"),
	}, nil
}

func claimString(claims map[string]any, key string) string {
	s, _ := claims[key].(string)
	return s
}
