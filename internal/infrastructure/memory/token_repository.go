package memory

import (
	"context"
	"time"

	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/internal/domain/entity"
	"github.com/jhoicas/jobboard-api/internal/domain/repository"
)

var _ repository.TokenRepository = (*TokenRepo)(nil)

// TokenRepo tokens emitidos en memoria.
type TokenRepo struct {
	s *Store
}

func (r *TokenRepo) Create(_ context.Context, token *entity.AuthToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tokens[token.ID]; ok {
		return domain.ErrConflict
	}
	c := *token
	r.s.tokens[token.ID] = &c
	return nil
}

func (r *TokenRepo) GetByID(_ context.Context, id string) (*entity.AuthToken, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tokens[id]
	if !ok {
		return nil, nil
	}
	c := *t
	return &c, nil
}

func (r *TokenRepo) Revoke(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tokens[id]
	if !ok || t.RevokedAt != nil {
		return nil
	}
	t.RevokedAt = &at
	return nil
}
