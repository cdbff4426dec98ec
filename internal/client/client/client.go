package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/client/models"
	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/netx"
)

type APIClient struct {
	baseURL string
	http    *http.Client
}

func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (c *APIClient) Register(ctx context.Context, name, email, password string) error {
	_, err := c.call(ctx, http.MethodPost, "/api/auth/registry",
		map[string]string{"name": name, "email": email, "password": password}, "")
	return err
}

// Login returns a bearer token.
func (c *APIClient) Login(ctx context.Context, email, password string) (string, error) {
	body, err := c.call(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password}, "")
	if err != nil {
		return "", err
	}
	return decodeToken(body)
}

// RequestPasswordReset returns the server's confirmation text.
func (c *APIClient) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	body, err := c.call(ctx, http.MethodPost, "/api/auth/passwordreset", map[string]string{"email": email}, "")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// GoogleLogin exchanges a Google ID token for a bearer token.
func (c *APIClient) GoogleLogin(ctx context.Context, idToken string) (string, error) {
	body, err := c.call(ctx, http.MethodPost, "/api/auth/glogin", map[string]string{"token": idToken}, "")
	if err != nil {
		return "", err
	}
	return decodeToken(body)
}

func (c *APIClient) Me(ctx context.Context, token string) (*models.User, error) {
	body, err := c.call(ctx, http.MethodGet, "/api/auth/me", nil, token)
	if err != nil {
		return nil, err
	}
	var u models.User
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &u, nil
}

// Ping checks the server liveness endpoint.
func (c *APIClient) Ping(ctx context.Context) error {
	_, err := c.call(ctx, http.MethodGet, "/healthz/liveness", nil, "")
	return err
}

func (c *APIClient) call(ctx context.Context, method, path string, req any, token string) ([]byte, error) {
	var header http.Header
	if token != "" {
		header = http.Header{}
		header.Set(common.AuthorizationHeaderName, common.BearerScheme+token)
	}

	status, body, err := netx.DoJSON(ctx, c.http, method, c.baseURL+path, req, header)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if status < 200 || status >= 300 {
		return nil, &APIError{Status: status, Message: strings.TrimSpace(string(body))}
	}
	return body, nil
}

func decodeToken(body []byte) (string, error) {
	var resp tokenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode token: %w", err)
	}
	return resp.Token, nil
}
