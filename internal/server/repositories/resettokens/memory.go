package resettokens

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu       sync.RWMutex
	byUserID map[string]models.PasswordResetToken
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byUserID: make(map[string]models.PasswordResetToken)}
}

func (r *MemoryRepository) Create(ctx context.Context, token *models.PasswordResetToken) (*models.PasswordResetToken, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUserID[token.UserID]; ok {
		return nil, common.ErrorAlreadyExists
	}

	token.ID = uuid.NewString()
	token.CreatedAt = time.Now().UTC()
	r.byUserID[token.UserID] = *token

	return token, nil
}

func (r *MemoryRepository) FindByUserID(ctx context.Context, userID string) (*models.PasswordResetToken, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byUserID[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &t, nil
}
