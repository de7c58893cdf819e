package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/internal/domain/entity"
	"github.com/jhoicas/jobboard-api/internal/domain/repository"
)

var _ repository.JobRepository = (*JobRepo)(nil)

const jobColumns = `id, title, company, description, short_description, employer_id, tags, is_remote,
	job_type, location, salary, requirements, benefits, posted_at, status, created_at, updated_at`

// JobRepo implementación del puerto JobRepository sobre la tabla job_postings.
type JobRepo struct {
	db Querier
}

// NewJobRepository construye el adaptador de persistencia para ofertas.
func NewJobRepository(db Querier) *JobRepo {
	return &JobRepo{db: db}
}

// Create persiste una nueva oferta.
func (r *JobRepo) Create(ctx context.Context, j *entity.Job) error {
	query := `
		INSERT INTO job_postings (` + jobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.db.Exec(ctx, query,
		j.ID, j.Title, j.Company, j.Description, j.ShortDescription, j.EmployerID, nonNil(j.Tags), j.IsRemote,
		string(j.JobType), j.Location, j.Salary, nonNil(j.Requirements), nonNil(j.Benefits), j.PostedAt,
		string(j.Status), j.CreatedAt, j.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// GetByID obtiene una oferta por ID; (nil, nil) si no existe.
func (r *JobRepo) GetByID(ctx context.Context, id string) (*entity.Job, error) {
	j, err := scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM job_postings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return j, nil
}

// Update reescribe los campos editables. employer_id y created_at no cambian.
func (r *JobRepo) Update(ctx context.Context, j *entity.Job) error {
	query := `
		UPDATE job_postings SET
			title = $2, company = $3, description = $4, short_description = $5, tags = $6,
			is_remote = $7, job_type = $8, location = $9, salary = $10, requirements = $11,
			benefits = $12, posted_at = $13, status = $14, updated_at = $15
		WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query,
		j.ID, j.Title, j.Company, j.Description, j.ShortDescription, nonNil(j.Tags),
		j.IsRemote, string(j.JobType), j.Location, j.Salary, nonNil(j.Requirements),
		nonNil(j.Benefits), j.PostedAt, string(j.Status), j.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la oferta; las postulaciones caen por ON DELETE CASCADE.
func (r *JobRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM job_postings WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

// ListPublic listado público con filtros opcionales.
func (r *JobRepo) ListPublic(ctx context.Context, f entity.JobFilter, now time.Time, limit, offset int) ([]*entity.Job, int, error) {
	where := []string{`status = 'open'`, `(posted_at IS NULL OR posted_at <= $1)`}
	args := []any{now}
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(args))))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		add(`(title ILIKE ? OR company ILIKE ?)`, "%"+escapeLike(q)+"%")
	}
	if f.JobType != "" {
		add(`job_type = ?`, string(f.JobType))
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		add(`location ILIKE ?`, "%"+escapeLike(loc)+"%")
	}
	if f.IsRemote != nil {
		add(`is_remote = ?`, *f.IsRemote)
	}
	return r.list(ctx, strings.Join(where, " AND "), args, limit, offset)
}

// ListByEmployer todas las ofertas del empleador, sin filtro de visibilidad.
func (r *JobRepo) ListByEmployer(ctx context.Context, employerID string, limit, offset int) ([]*entity.Job, int, error) {
	return r.list(ctx, `employer_id = $1`, []any{employerID}, limit, offset)
}

func (r *JobRepo) list(ctx context.Context, where string, args []any, limit, offset int) ([]*entity.Job, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM job_postings WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}
	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM job_postings WHERE %s
		ORDER BY posted_at DESC NULLS LAST, id DESC LIMIT $%d OFFSET $%d`, jobColumns, where, n+1, n+2)
	rows, err := r.db.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()
	list := []*entity.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan job: %w", err)
		}
		list = append(list, j)
	}
	return list, total, rows.Err()
}

func scanJob(row pgx.Row) (*entity.Job, error) {
	var j entity.Job
	var jobType, status string
	err := row.Scan(
		&j.ID, &j.Title, &j.Company, &j.Description, &j.ShortDescription, &j.EmployerID, &j.Tags, &j.IsRemote,
		&jobType, &j.Location, &j.Salary, &j.Requirements, &j.Benefits, &j.PostedAt, &status,
		&j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	j.JobType = entity.JobType(jobType)
	j.Status = entity.JobStatus(status)
	j.Tags = nonNil(j.Tags)
	j.Requirements = nonNil(j.Requirements)
	j.Benefits = nonNil(j.Benefits)
	return &j, nil
}

// escapeLike escapa los comodines de LIKE para buscar el texto literal.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
