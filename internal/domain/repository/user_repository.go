package repository

import (
	"context"
	"time"

	"github.com/jhoicas/jobboard-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Get* devuelven (nil, nil) cuando no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateRole(ctx context.Context, id string, role entity.Role, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, int, error)
}
