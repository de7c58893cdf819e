package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/internal/domain/entity"
	"github.com/jhoicas/jobboard-api/internal/domain/repository"
)

var _ repository.TokenRepository = (*TokenRepo)(nil)

// TokenRepo tokens emitidos (tabla auth_tokens).
type TokenRepo struct {
	db Querier
}

// NewTokenRepository construye el adaptador.
func NewTokenRepository(db Querier) *TokenRepo {
	return &TokenRepo{db: db}
}

func (r *TokenRepo) Create(ctx context.Context, t *entity.AuthToken) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO auth_tokens (id, user_id, created_at, expires_at, revoked_at)
		VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.UserID, t.CreatedAt, t.ExpiresAt, t.RevokedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert auth token: %w", err)
	}
	return nil
}

func (r *TokenRepo) GetByID(ctx context.Context, id string) (*entity.AuthToken, error) {
	var t entity.AuthToken
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, created_at, expires_at, revoked_at
		FROM auth_tokens WHERE id = $1`, id,
	).Scan(&t.ID, &t.UserID, &t.CreatedAt, &t.ExpiresAt, &t.RevokedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get auth token: %w", err)
	}
	return &t, nil
}

// Revoke solo marca la primera revocación.
func (r *TokenRepo) Revoke(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE auth_tokens SET revoked_at = $2 WHERE id = $1 AND revoked_at IS NULL`, id, at)
	if err != nil {
		return fmt.Errorf("revoke auth token: %w", err)
	}
	return nil
}
