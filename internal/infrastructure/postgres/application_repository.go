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

var _ repository.ApplicationRepository = (*ApplicationRepo)(nil)

const applicationColumns = `id, job_id, applicant_id, applicant_name, applicant_email, resume_path,
	cover_letter, status, applied_at, created_at, updated_at`

// ApplicationRepo implementación del puerto ApplicationRepository sobre PostgreSQL.
type ApplicationRepo struct {
	db Querier
}

// NewApplicationRepository construye el adaptador de persistencia para postulaciones.
func NewApplicationRepository(db Querier) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

// Create inserta la postulación. La restricción única (job_id, applicant_id) → ErrConflict.
func (r *ApplicationRepo) Create(ctx context.Context, a *entity.Application) error {
	query := `
		INSERT INTO applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Exec(ctx, query,
		a.ID, a.JobID, a.ApplicantID, a.ApplicantName, a.ApplicantEmail, a.ResumePath,
		a.CoverLetter, string(a.Status), a.AppliedAt, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrConflict
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (r *ApplicationRepo) GetByID(ctx context.Context, id string) (*entity.Application, error) {
	a, err := scanApplication(r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	return a, nil
}

func (r *ApplicationRepo) ExistsForApplicant(ctx context.Context, jobID, applicantID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2)`,
		jobID, applicantID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists application: %w", err)
	}
	return exists, nil
}

func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id string, status entity.ApplicationStatus, updatedAt time.Time) error {
	cmd, err := r.db.Exec(ctx, `UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1`, id, string(status), updatedAt)
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	return nil
}

// DeleteByJob borra y devuelve las rutas de hoja de vida en una sola sentencia.
func (r *ApplicationRepo) DeleteByJob(ctx context.Context, jobID string) ([]string, error) {
	rows, err := r.db.Query(ctx, `DELETE FROM applications WHERE job_id = $1 RETURNING resume_path`, jobID)
	if err != nil {
		return nil, fmt.Errorf("delete applications by job: %w", err)
	}
	defer rows.Close()
	paths := []string{}
	for rows.Next() {
		var p *string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan resume path: %w", err)
		}
		if p != nil {
			paths = append(paths, *p)
		}
	}
	return paths, rows.Err()
}

func (r *ApplicationRepo) CountByJob(ctx context.Context, jobID string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE job_id = $1`, jobID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	return n, nil
}

// List según el alcance: postulante, empleador (vía job_postings) o todas.
func (r *ApplicationRepo) List(ctx context.Context, scope entity.ApplicationScope, limit, offset int) ([]*entity.Application, int, error) {
	from := `applications a`
	where := `TRUE`
	var args []any
	switch {
	case scope.ApplicantID != "":
		where = `a.applicant_id = $1`
		args = append(args, scope.ApplicantID)
	case scope.EmployerID != "":
		from = `applications a JOIN job_postings j ON j.id = a.job_id`
		where = `j.employer_id = $1`
		args = append(args, scope.EmployerID)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM `+from+` WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count applications: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT a.id, a.job_id, a.applicant_id, a.applicant_name, a.applicant_email, a.resume_path,
			a.cover_letter, a.status, a.applied_at, a.created_at, a.updated_at
		FROM %s WHERE %s ORDER BY a.applied_at DESC, a.id DESC LIMIT $%d OFFSET $%d`, from, where, n+1, n+2)
	rows, err := r.db.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()
	list := []*entity.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan application: %w", err)
		}
		list = append(list, a)
	}
	return list, total, rows.Err()
}

func scanApplication(row pgx.Row) (*entity.Application, error) {
	var a entity.Application
	var status string
	err := row.Scan(
		&a.ID, &a.JobID, &a.ApplicantID, &a.ApplicantName, &a.ApplicantEmail, &a.ResumePath,
		&a.CoverLetter, &status, &a.AppliedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Status = entity.ApplicationStatus(status)
	return &a, nil
}
