package repository

import (
	"context"
	"time"

	"github.com/jhoicas/jobboard-api/internal/domain/entity"
)

// TokenRepository persiste los AuthToken emitidos para poder revocarlos.
type TokenRepository interface {
	Create(ctx context.Context, token *entity.AuthToken) error
	GetByID(ctx context.Context, id string) (*entity.AuthToken, error)
	// Revoke es idempotente: revocar un token ya revocado o inexistente no es error.
	Revoke(ctx context.Context, id string, at time.Time) error
}
