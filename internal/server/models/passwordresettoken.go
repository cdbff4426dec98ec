package models

import "time"

// PasswordResetToken is issued at most once per user and never expires.
type PasswordResetToken struct {
	ID        string
	UserID    string
	Token     string
	CreatedAt time.Time
}
