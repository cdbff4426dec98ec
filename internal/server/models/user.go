// Package models holds the persisted entities of the credential store.
package models

import "time"

// User is a registered account. Password is a bcrypt hash, or empty for
// accounts created through Google sign-in.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"-"`
}

// HasPassword reports whether the account can log in with a password.
func (u *User) HasPassword() bool {
	return u.Password != ""
}
