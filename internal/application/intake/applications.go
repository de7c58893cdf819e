package intake

import (
	"context"
	"fmt"

	"github.com/jhoicas/jobboard-api/internal/application/dto"
	"github.com/jhoicas/jobboard-api/internal/application/ports"
	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/internal/domain/entity"
	"github.com/jhoicas/jobboard-api/internal/domain/policy"
)

// List postulaciones visibles para el principal según su rol.
func (uc *IntakeUseCase) List(ctx context.Context, principal *entity.User, page dto.PageRequest) (*dto.ApplicationListResponse, error) {
	scope, err := policy.ApplicationScope(principal)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, total, err := uc.apps.List(ctx, scope, page.PerPage, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.ApplicationResponse, 0, len(list))
	for _, a := range list {
		items = append(items, toApplicationResponse(a))
	}
	return &dto.ApplicationListResponse{Data: items, Meta: dto.NewPageMeta(page, total)}, nil
}

// Get detalle si el principal puede verla.
func (uc *IntakeUseCase) Get(ctx context.Context, principal *entity.User, id string) (*dto.ApplicationResponse, error) {
	app, _, err := uc.loadViewable(ctx, principal, id, "ver la postulación")
	if err != nil {
		return nil, err
	}
	out := toApplicationResponse(app)
	return &out, nil
}

// UpdateStatus 404 → 403 → 422; el cambio sigue el grafo de transiciones.
func (uc *IntakeUseCase) UpdateStatus(ctx context.Context, principal *entity.User, id string, in dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error) {
	if principal == nil {
		return nil, domain.ErrUnauthenticated
	}
	app, job, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(policy.CanMutateApplicationStatus(principal, app, job), "cambiar el estado de la postulación"); err != nil {
		return nil, err
	}
	if fields := uc.validate.Struct(in); fields != nil {
		return nil, domain.NewValidationError(fields)
	}
	next := entity.ApplicationStatus(in.Status)
	if !app.Status.CanTransitionTo(next) {
		return nil, domain.FieldError("status", fmt.Sprintf("no se puede pasar de %s a %s", app.Status, next))
	}

	app.Status = next
	app.UpdatedAt = uc.now()
	if err := uc.apps.UpdateStatus(ctx, app.ID, app.Status, app.UpdatedAt); err != nil {
		return nil, err
	}
	uc.log.Info().Str("application_id", app.ID).Str("status", string(next)).Str("by", principal.ID).Msg("estado actualizado")
	out := toApplicationResponse(app)
	return &out, nil
}

// Delete retira la postulación (postulante o admin) y borra su hoja de vida.
func (uc *IntakeUseCase) Delete(ctx context.Context, principal *entity.User, id string) error {
	if principal == nil {
		return domain.ErrUnauthenticated
	}
	app, _, err := uc.load(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(policy.CanDeleteApplication(principal, app), "eliminar la postulación"); err != nil {
		return err
	}
	if err := uc.apps.Delete(ctx, app.ID); err != nil {
		return err
	}
	if app.ResumePath != nil {
		if err := uc.storage.Delete(ctx, *app.ResumePath); err != nil {
			uc.log.Warn().Err(err).Str("path", *app.ResumePath).Msg("no se pudo borrar la hoja de vida")
		}
	}
	return nil
}

// Resume stream (disco local) o URL firmada (objetos). El llamador cierra Body.
func (uc *IntakeUseCase) Resume(ctx context.Context, principal *entity.User, id string) (*ports.StoredFile, error) {
	app, _, err := uc.loadViewable(ctx, principal, id, "descargar la hoja de vida")
	if err != nil {
		return nil, err
	}
	if app.ResumePath == nil || *app.ResumePath == "" {
		return nil, fmt.Errorf("%w: la postulación no tiene hoja de vida", domain.ErrNotFound)
	}
	return uc.storage.Retrieve(ctx, *app.ResumePath)
}

func (uc *IntakeUseCase) loadViewable(ctx context.Context, principal *entity.User, id, action string) (*entity.Application, *entity.Job, error) {
	if principal == nil {
		return nil, nil, domain.ErrUnauthenticated
	}
	app, job, err := uc.load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := policy.Authorize(policy.CanViewApplication(principal, app, job), action); err != nil {
		return nil, nil, err
	}
	return app, job, nil
}

// load postulación y su oferta; ErrNotFound si la postulación no existe.
func (uc *IntakeUseCase) load(ctx context.Context, id string) (*entity.Application, *entity.Job, error) {
	app, err := uc.apps.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if app == nil {
		return nil, nil, domain.ErrNotFound
	}
	job, err := uc.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, nil, err
	}
	return app, job, nil
}
