// Package services implements the CLI use cases on top of the API client
// and the local token cache.
package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/gophauth/internal/client/models"
	"github.com/dmitrijs2005/gophauth/internal/filex"
)

var ErrNotLoggedIn = errors.New("not logged in")

// API is the subset of client.APIClient the services need.
type API interface {
	Register(ctx context.Context, name, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	GoogleLogin(ctx context.Context, idToken string) (string, error)
	Me(ctx context.Context, token string) (*models.User, error)
	Ping(ctx context.Context) error
}

type AuthService struct {
	api       API
	tokenFile string
}

func NewAuthService(api API, tokenFile string) *AuthService {
	return &AuthService{api: api, tokenFile: tokenFile}
}

// DefaultTokenFile returns <user config dir>/gophauth/token, creating the
// directory if needed.
func DefaultTokenFile() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir, err := filex.EnsureSubdDir(base, "gophauth")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "token"), nil
}

func (s *AuthService) Register(ctx context.Context, name, email string, password []byte) error {
	return s.api.Register(ctx, name, email, string(password))
}

// Login authenticates and caches the returned token.
func (s *AuthService) Login(ctx context.Context, email string, password []byte) error {
	token, err := s.api.Login(ctx, email, string(password))
	if err != nil {
		return err
	}
	return filex.WriteSecret(s.tokenFile, []byte(token))
}

// GoogleLogin exchanges a Google ID token and caches the returned token.
func (s *AuthService) GoogleLogin(ctx context.Context, idToken string) error {
	token, err := s.api.GoogleLogin(ctx, idToken)
	if err != nil {
		return err
	}
	return filex.WriteSecret(s.tokenFile, []byte(token))
}

func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	return s.api.RequestPasswordReset(ctx, email)
}

// WhoAmI resolves the cached token to the current user.
func (s *AuthService) WhoAmI(ctx context.Context) (*models.User, error) {
	token, err := filex.ReadSecret(s.tokenFile)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNotLoggedIn
	}
	return s.api.Me(ctx, token)
}

// Logout forgets the cached token.
func (s *AuthService) Logout() error {
	return filex.RemoveIfExists(s.tokenFile)
}

func (s *AuthService) Ping(ctx context.Context) error {
	return s.api.Ping(ctx)
}
