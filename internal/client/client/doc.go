// Package client talks to the gophauth HTTP API.
//
// APIClient wraps each endpoint in a method. Non-2xx responses come back as
// *APIError carrying the status and the plain-text message; 401 and 403
// match ErrUnauthorized and transport failures wrap ErrUnavailable, so
// callers can branch with errors.Is.
package client
