// Package users stores registered accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Repository finds and creates users. Lookups match the email exactly; any
// normalisation is the caller's job. Absent users yield common.ErrorNotFound,
// a second user with the same email yields common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}
