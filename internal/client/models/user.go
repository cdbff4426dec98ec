// Package models contains client-side representations of server resources.
package models

// User is the account returned by GET /api/auth/me.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
