// Package resettokens stores password reset tokens, at most one per user.
package resettokens

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Repository finds and creates reset tokens. A user without a token yields
// common.ErrorNotFound, a second token for the same user yields
// common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, token *models.PasswordResetToken) (*models.PasswordResetToken, error)
	FindByUserID(ctx context.Context, userID string) (*models.PasswordResetToken, error)
}
