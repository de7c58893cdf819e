package repository

import (
	"context"
	"time"

	"github.com/jhoicas/jobboard-api/internal/domain/entity"
)

// ApplicationRepository define el puerto de persistencia para Application (DIP).
type ApplicationRepository interface {
	// Create devuelve domain.ErrConflict si ya existe una postulación para (job_id, applicant_id).
	Create(ctx context.Context, app *entity.Application) error
	GetByID(ctx context.Context, id string) (*entity.Application, error)
	ExistsForApplicant(ctx context.Context, jobID, applicantID string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status entity.ApplicationStatus, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	// DeleteByJob borra todas las postulaciones de la oferta y devuelve las rutas de hojas de vida que tenían.
	DeleteByJob(ctx context.Context, jobID string) ([]string, error)
	CountByJob(ctx context.Context, jobID string) (int, error)
	List(ctx context.Context, scope entity.ApplicationScope, limit, offset int) ([]*entity.Application, int, error)
}
