// Package intake implementa la postulación a ofertas y la gestión posterior de las postulaciones.
package intake

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
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

// MaxResumeBytes tamaño máximo de la hoja de vida (5 MiB).
const MaxResumeBytes = 5 << 20

var allowedExtensions = map[string]bool{"pdf": true, "doc": true, "docx": true}

// ResumeFile archivo recibido en el multipart.
type ResumeFile struct {
	Filename string
	Size     int64
	Content  []byte
}

// IntakeUseCase pipeline de postulación y operaciones sobre postulaciones.
type IntakeUseCase struct {
	jobs     repository.JobRepository
	apps     repository.ApplicationRepository
	users    repository.UserRepository
	storage  ports.ResumeStorage
	scanner  ports.VirusScanner
	validate *validator.Validator
	log      *logger.Logger
	now      func() time.Time
}

// NewIntakeUseCase construye el caso de uso.
func NewIntakeUseCase(
	jobs repository.JobRepository,
	apps repository.ApplicationRepository,
	users repository.UserRepository,
	storage ports.ResumeStorage,
	scanner ports.VirusScanner,
	log *logger.Logger,
) *IntakeUseCase {
	return &IntakeUseCase{
		jobs:     jobs,
		apps:     apps,
		users:    users,
		storage:  storage,
		scanner:  scanner,
		validate: validator.New(),
		log:      log.Component("intake"),
		now:      time.Now,
	}
}

// Submit oferta → validación → saneo → duplicado → antivirus → almacenamiento → inserción.
// Cada paso corta el flujo; nada se escribe antes de pasar la validación.
// Orden de errores: 404 → 401/403 → 422.
func (uc *IntakeUseCase) Submit(ctx context.Context, principal *entity.User, jobID string, in dto.SubmitApplicationRequest, resume *ResumeFile) (*dto.ApplicationResponse, error) {
	job, err := uc.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	if principal == nil {
		return nil, domain.ErrUnauthenticated
	}
	// applicant_id vacío lo reporta la validación
	if in.ApplicantID != "" {
		if err := policy.Authorize(policy.CanApplyAs(principal, in.ApplicantID), "postular en nombre de otro usuario"); err != nil {
			return nil, err
		}
	}

	ext, err := uc.validateSubmission(ctx, in, resume)
	if err != nil {
		return nil, err
	}

	name := sanitizeText(in.ApplicantName)
	coverLetter := sanitizeText(in.CoverLetter)
	email := sanitizeEmail(in.ApplicantEmail)

	exists, err := uc.apps.ExistsForApplicant(ctx, job.ID, in.ApplicantID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: ya existe una postulación para esta oferta", domain.ErrConflict)
	}

	verdict, err := uc.scanner.Scan(ctx, resume.Content)
	if err != nil {
		uc.log.Error().Err(err).Str("job_id", job.ID).Msg("fallo del escáner antivirus")
		return nil, fmt.Errorf("%w: escaneo antivirus: %v", domain.ErrStorage, err)
	}
	if verdict.Infected {
		uc.log.Warn().Str("job_id", job.ID).Str("applicant_id", in.ApplicantID).Msg("hoja de vida rechazada por el antivirus")
		return nil, domain.FieldError("resume", "no pasó el escaneo antivirus")
	}

	now := uc.now()
	dir := path.Join("resumes", strconv.Itoa(now.Year()), job.ID)
	filename := uuid.NewString() + "." + ext
	contentType := mimetype.Detect(resume.Content).String()
	stored, err := uc.storage.Store(ctx, dir, filename, bytes.NewReader(resume.Content), int64(len(resume.Content)), contentType)
	if err != nil {
		uc.log.Error().Err(err).Str("job_id", job.ID).Str("backend", uc.storage.Backend()).Msg("no se pudo guardar la hoja de vida")
		if errors.Is(err, domain.ErrStorage) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		uc.discard(stored)
		return nil, fmt.Errorf("generar id: %w", err)
	}
	app := &entity.Application{
		ID:             id.String(),
		JobID:          job.ID,
		ApplicantID:    in.ApplicantID,
		ApplicantName:  name,
		ApplicantEmail: email,
		ResumePath:     &stored,
		CoverLetter:    coverLetter,
		Status:         entity.ApplicationStatusApplied,
		AppliedAt:      now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.apps.Create(ctx, app); err != nil {
		uc.discard(stored)
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: ya existe una postulación para esta oferta", domain.ErrConflict)
		}
		return nil, err
	}

	uc.log.Info().Str("application_id", app.ID).Str("job_id", job.ID).Str("path", stored).Msg("postulación registrada")
	out := toApplicationResponse(app)
	return &out, nil
}

// validateSubmission reúne todos los errores de campo; devuelve la extensión normalizada del archivo.
func (uc *IntakeUseCase) validateSubmission(ctx context.Context, in dto.SubmitApplicationRequest, resume *ResumeFile) (string, error) {
	fields := uc.validate.Struct(in)
	if fields == nil {
		fields = map[string]string{}
	}
	if _, bad := fields["applicant_id"]; !bad {
		user, err := uc.users.GetByID(ctx, in.ApplicantID)
		if err != nil {
			return "", err
		}
		if user == nil {
			fields["applicant_id"] = "no corresponde a un usuario existente"
		}
	}

	var ext string
	switch {
	case resume == nil || len(resume.Content) == 0:
		fields["resume"] = "es requerido"
	default:
		ext = strings.ToLower(strings.TrimPrefix(path.Ext(resume.Filename), "."))
		size := resume.Size
		if n := int64(len(resume.Content)); n > size {
			size = n
		}
		switch {
		case !allowedExtensions[ext]:
			fields["resume"] = "debe ser un archivo pdf, doc o docx"
		case size > MaxResumeBytes:
			fields["resume"] = "no puede superar 5 MB"
		}
	}

	if len(fields) > 0 {
		return "", domain.NewValidationError(fields)
	}
	return ext, nil
}

func (uc *IntakeUseCase) discard(p string) {
	// el contexto de la petición puede estar cancelado
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := uc.storage.Delete(ctx, p); err != nil {
		uc.log.Warn().Err(err).Str("path", p).Msg("no se pudo borrar la hoja de vida huérfana")
	}
}

func toApplicationResponse(a *entity.Application) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:             a.ID,
		JobID:          a.JobID,
		ApplicantID:    a.ApplicantID,
		ApplicantName:  a.ApplicantName,
		ApplicantEmail: a.ApplicantEmail,
		ResumePath:     a.ResumePath,
		CoverLetter:    a.CoverLetter,
		Status:         string(a.Status),
		AppliedAt:      a.AppliedAt,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
