package repository

import (
	"context"
	"time"

	"github.com/jhoicas/jobboard-api/internal/domain/entity"
)

// JobRepository define el puerto de persistencia para Job (DIP).
type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	GetByID(ctx context.Context, id string) (*entity.Job, error)
	Update(ctx context.Context, job *entity.Job) error
	Delete(ctx context.Context, id string) error
	// ListPublic solo ofertas abiertas y publicadas a now, orden posted_at DESC, id DESC.
	ListPublic(ctx context.Context, filter entity.JobFilter, now time.Time, limit, offset int) ([]*entity.Job, int, error)
	// ListByEmployer sin filtro de visibilidad.
	ListByEmployer(ctx context.Context, employerID string, limit, offset int) ([]*entity.Job, int, error)
}
