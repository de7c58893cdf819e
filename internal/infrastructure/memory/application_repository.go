package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/internal/domain/entity"
	"github.com/jhoicas/jobboard-api/internal/domain/repository"
)

var _ repository.ApplicationRepository = (*ApplicationRepo)(nil)

// ApplicationRepo postulaciones en memoria con la restricción única (job_id, applicant_id).
type ApplicationRepo struct {
	s *Store
	txLock
}

func (r *ApplicationRepo) Create(_ context.Context, app *entity.Application) error {
	r.lock()
	defer r.unlock()
	if _, ok := r.s.jobs[app.JobID]; !ok {
		return domain.ErrNotFound
	}
	for _, a := range r.s.apps {
		if a.JobID == app.JobID && a.ApplicantID == app.ApplicantID {
			return domain.ErrConflict
		}
	}
	r.s.apps[app.ID] = cloneApplication(app)
	return nil
}

func (r *ApplicationRepo) GetByID(_ context.Context, id string) (*entity.Application, error) {
	r.rlock()
	defer r.runlock()
	a, ok := r.s.apps[id]
	if !ok {
		return nil, nil
	}
	return cloneApplication(a), nil
}

func (r *ApplicationRepo) ExistsForApplicant(_ context.Context, jobID, applicantID string) (bool, error) {
	r.rlock()
	defer r.runlock()
	for _, a := range r.s.apps {
		if a.JobID == jobID && a.ApplicantID == applicantID {
			return true, nil
		}
	}
	return false, nil
}

func (r *ApplicationRepo) UpdateStatus(_ context.Context, id string, status entity.ApplicationStatus, updatedAt time.Time) error {
	r.lock()
	defer r.unlock()
	a, ok := r.s.apps[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = updatedAt
	return nil
}

func (r *ApplicationRepo) Delete(_ context.Context, id string) error {
	r.lock()
	defer r.unlock()
	delete(r.s.apps, id)
	return nil
}

func (r *ApplicationRepo) DeleteByJob(_ context.Context, jobID string) ([]string, error) {
	r.lock()
	defer r.unlock()
	paths := []string{}
	for id, a := range r.s.apps {
		if a.JobID != jobID {
			continue
		}
		if a.ResumePath != nil {
			paths = append(paths, *a.ResumePath)
		}
		delete(r.s.apps, id)
	}
	sort.Strings(paths)
	return paths, nil
}

func (r *ApplicationRepo) CountByJob(_ context.Context, jobID string) (int, error) {
	r.rlock()
	defer r.runlock()
	n := 0
	for _, a := range r.s.apps {
		if a.JobID == jobID {
			n++
		}
	}
	return n, nil
}

func (r *ApplicationRepo) List(_ context.Context, scope entity.ApplicationScope, limit, offset int) ([]*entity.Application, int, error) {
	r.rlock()
	var list []*entity.Application
	for _, a := range r.s.apps {
		if scope.ApplicantID != "" && a.ApplicantID != scope.ApplicantID {
			continue
		}
		if scope.EmployerID != "" {
			j, ok := r.s.jobs[a.JobID]
			if !ok || j.EmployerID != scope.EmployerID {
				continue
			}
		}
		list = append(list, cloneApplication(a))
	}
	r.runlock()

	sort.Slice(list, func(i, k int) bool {
		if !list[i].AppliedAt.Equal(list[k].AppliedAt) {
			return list[i].AppliedAt.After(list[k].AppliedAt)
		}
		return list[i].ID > list[k].ID
	})
	return paginate(list, limit, offset), len(list), nil
}
