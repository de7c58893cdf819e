package usecase

import (
	"context"

	"github.com/jhoicas/jobboard-api/internal/domain/repository"
)

// CatalogTxRunner ejecuta fn dentro de una transacción con los repos de ofertas y postulaciones atados a ella.
type CatalogTxRunner interface {
	Run(ctx context.Context, fn func(jobs repository.JobRepository, apps repository.ApplicationRepository) error) error
}
