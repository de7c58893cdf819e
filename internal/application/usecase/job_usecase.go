package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/jobboard-api/internal/application/dto"
	"github.com/jhoicas/jobboard-api/internal/application/ports"
	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/internal/domain/entity"
	"github.com/jhoicas/jobboard-api/internal/domain/policy"
	"github.com/jhoicas/jobboard-api/internal/domain/repository"
	"github.com/jhoicas/jobboard-api/pkg/logger"
	"github.com/jhoicas/jobboard-api/pkg/validator"
)

// JobUseCase catálogo de ofertas: listado público, detalle y CRUD del empleador.
type JobUseCase struct {
	jobs     repository.JobRepository
	apps     repository.ApplicationRepository
	users    repository.UserRepository
	tx       CatalogTxRunner
	storage  ports.ResumeStorage
	validate *validator.Validator
	log      *logger.Logger
	now      func() time.Time
}

// NewJobUseCase construye el caso de uso.
func NewJobUseCase(
	jobs repository.JobRepository,
	apps repository.ApplicationRepository,
	users repository.UserRepository,
	tx CatalogTxRunner,
	storage ports.ResumeStorage,
	log *logger.Logger,
) *JobUseCase {
	return &JobUseCase{
		jobs:     jobs,
		apps:     apps,
		users:    users,
		tx:       tx,
		storage:  storage,
		validate: validator.New(),
		log:      log.Component("catalog"),
		now:      time.Now,
	}
}

// ListPublic ofertas abiertas y ya publicadas, con filtros.
func (uc *JobUseCase) ListPublic(ctx context.Context, q dto.JobQuery) (*dto.JobListResponse, error) {
	q.PageRequest.DefaultPage()
	filter := entity.JobFilter{
		Query:    q.Q,
		JobType:  entity.JobType(q.JobType),
		Location: q.Location,
		IsRemote: q.IsRemote,
	}
	list, total, err := uc.jobs.ListPublic(ctx, filter, uc.now(), q.PerPage, q.Offset())
	if err != nil {
		return nil, err
	}
	return toJobList(list, q.PageRequest, total), nil
}

// ListOwnedBy ofertas del principal sin filtro de visibilidad.
func (uc *JobUseCase) ListOwnedBy(ctx context.Context, principal *entity.User, page dto.PageRequest) (*dto.JobListResponse, error) {
	if principal == nil {
		return nil, domain.ErrUnauthenticated
	}
	page.DefaultPage()
	list, total, err := uc.jobs.ListByEmployer(ctx, principal.ID, page.PerPage, page.Offset())
	if err != nil {
		return nil, err
	}
	return toJobList(list, page, total), nil
}

// Get detalle con conteo de postulaciones y resumen del empleador.
func (uc *JobUseCase) Get(ctx context.Context, id string) (*dto.JobDetailResponse, error) {
	job, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := uc.apps.CountByJob(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.JobDetailResponse{
		JobResponse: toJobResponse(job),
		Counts:      dto.JobCounts{Applications: count},
	}
	employer, err := uc.users.GetByID(ctx, job.EmployerID)
	if err != nil {
		return nil, err
	}
	if employer != nil {
		out.Employer = &dto.EmployerSummaryResponse{ID: employer.ID, Name: employer.Name, Avatar: employer.AvatarURL}
	}
	return out, nil
}

// Create publica una oferta a nombre del principal. status=open y posted_at=now por defecto.
func (uc *JobUseCase) Create(ctx context.Context, principal *entity.User, in dto.CreateJobRequest) (*dto.JobResponse, error) {
	if principal == nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := policy.Authorize(policy.CanCreateJob(principal), "crear ofertas"); err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Company = strings.TrimSpace(in.Company)
	if fields := uc.validate.Struct(in); fields != nil {
		return nil, domain.NewValidationError(fields)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generar id: %w", err)
	}
	now := uc.now()
	job := &entity.Job{
		ID:               id.String(),
		Title:            in.Title,
		Company:          in.Company,
		Description:      in.Description,
		ShortDescription: in.ShortDescription,
		EmployerID:       principal.ID,
		Tags:             dto.NormalizeTags(in.Tags),
		JobType:          entity.JobTypeFullTime,
		Location:         in.Location,
		Salary:           in.Salary,
		Requirements:     nonNilStrings(in.Requirements),
		Benefits:         nonNilStrings(in.Benefits),
		PostedAt:         in.PostedAt,
		Status:           entity.JobStatusOpen,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if in.IsRemote != nil {
		job.IsRemote = *in.IsRemote
	}
	if in.JobType != "" {
		job.JobType = entity.JobType(in.JobType)
	}
	if in.Status != "" {
		job.Status = entity.JobStatus(in.Status)
	}
	if job.PostedAt == nil {
		posted := now
		job.PostedAt = &posted
	}
	if err := uc.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	uc.log.Info().Str("job_id", job.ID).Str("employer_id", job.EmployerID).Msg("oferta creada")
	out := toJobResponse(job)
	return &out, nil
}

// Update parcial: 404 → 403 → 422.
func (uc *JobUseCase) Update(ctx context.Context, principal *entity.User, id string, in dto.UpdateJobRequest) (*dto.JobResponse, error) {
	if principal == nil {
		return nil, domain.ErrUnauthenticated
	}
	job, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(policy.CanMutateJob(principal, job), "modificar la oferta"); err != nil {
		return nil, err
	}
	fields := uc.validate.Struct(in)
	if fields == nil {
		fields = map[string]string{}
	}
	for name, v := range map[string]*string{"title": in.Title, "company": in.Company, "description": in.Description} {
		if v != nil && strings.TrimSpace(*v) == "" {
			fields[name] = "es requerido"
		}
	}
	if sd := in.ShortDescription.Value; sd != nil {
		for k, v := range uc.validate.Var("short_description", *sd, "max=255") {
			fields[k] = v
		}
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError(fields)
	}

	applyJobUpdate(job, in)
	job.UpdatedAt = uc.now()
	if err := uc.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	out := toJobResponse(job)
	return &out, nil
}

// Delete borra la oferta y sus postulaciones en una transacción; después borra las hojas de vida.
func (uc *JobUseCase) Delete(ctx context.Context, principal *entity.User, id string) error {
	if principal == nil {
		return domain.ErrUnauthenticated
	}
	job, err := uc.mustGet(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(policy.CanMutateJob(principal, job), "eliminar la oferta"); err != nil {
		return err
	}

	var resumes []string
	err = uc.tx.Run(ctx, func(jobs repository.JobRepository, apps repository.ApplicationRepository) error {
		paths, err := apps.DeleteByJob(ctx, job.ID)
		if err != nil {
			return err
		}
		resumes = paths
		return jobs.Delete(ctx, job.ID)
	})
	if err != nil {
		return err
	}

	for _, p := range resumes {
		if err := uc.storage.Delete(ctx, p); err != nil {
			uc.log.Warn().Err(err).Str("path", p).Msg("no se pudo borrar la hoja de vida")
		}
	}
	uc.log.Info().Str("job_id", job.ID).Int("applications", len(resumes)).Msg("oferta eliminada")
	return nil
}

func (uc *JobUseCase) mustGet(ctx context.Context, id string) (*entity.Job, error) {
	job, err := uc.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	return job, nil
}

func applyJobUpdate(job *entity.Job, in dto.UpdateJobRequest) {
	if in.Title != nil {
		job.Title = strings.TrimSpace(*in.Title)
	}
	if in.Company != nil {
		job.Company = strings.TrimSpace(*in.Company)
	}
	if in.Description != nil {
		job.Description = *in.Description
	}
	if in.ShortDescription.Set {
		job.ShortDescription = in.ShortDescription.Value
	}
	if in.Tags != nil {
		job.Tags = dto.NormalizeTags(*in.Tags)
	}
	if in.IsRemote != nil {
		job.IsRemote = *in.IsRemote
	}
	if in.JobType != nil {
		job.JobType = entity.JobType(*in.JobType)
	}
	if in.Location.Set {
		job.Location = in.Location.Value
	}
	if in.Salary.Set {
		job.Salary = in.Salary.Value
	}
	if in.Requirements != nil {
		job.Requirements = nonNilStrings(*in.Requirements)
	}
	if in.Benefits != nil {
		job.Benefits = nonNilStrings(*in.Benefits)
	}
	if in.PostedAt.Set {
		job.PostedAt = in.PostedAt.Value
	}
	if in.Status != nil {
		job.Status = entity.JobStatus(*in.Status)
	}
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func toJobList(list []*entity.Job, page dto.PageRequest, total int) *dto.JobListResponse {
	items := make([]dto.JobResponse, 0, len(list))
	for _, j := range list {
		items = append(items, toJobResponse(j))
	}
	return &dto.JobListResponse{Data: items, Meta: dto.NewPageMeta(page, total)}
}

func toJobResponse(j *entity.Job) dto.JobResponse {
	return dto.JobResponse{
		ID:               j.ID,
		Title:            j.Title,
		Company:          j.Company,
		ShortDescription: j.ShortDescription,
		Description:      j.Description,
		EmployerID:       j.EmployerID,
		Tags:             nonNilStrings(j.Tags),
		IsRemote:         j.IsRemote,
		JobType:          string(j.JobType),
		Location:         j.Location,
		Salary:           j.Salary,
		Requirements:     nonNilStrings(j.Requirements),
		Benefits:         nonNilStrings(j.Benefits),
		PostedAt:         j.PostedAt,
		Status:           string(j.Status),
		CreatedAt:        j.CreatedAt,
		UpdatedAt:        j.UpdatedAt,
	}
}
