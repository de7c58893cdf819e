package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/internal/domain/entity"
	"github.com/jhoicas/jobboard-api/internal/domain/repository"
)

var _ repository.JobRepository = (*JobRepo)(nil)

// JobRepo ofertas en memoria. Borrar una oferta borra sus postulaciones (como el ON DELETE CASCADE).
type JobRepo struct {
	s *Store
	txLock
}

func (r *JobRepo) Create(_ context.Context, job *entity.Job) error {
	r.lock()
	defer r.unlock()
	if _, ok := r.s.jobs[job.ID]; ok {
		return domain.ErrConflict
	}
	r.s.jobs[job.ID] = cloneJob(job)
	return nil
}

func (r *JobRepo) GetByID(_ context.Context, id string) (*entity.Job, error) {
	r.rlock()
	defer r.runlock()
	j, ok := r.s.jobs[id]
	if !ok {
		return nil, nil
	}
	return cloneJob(j), nil
}

func (r *JobRepo) Update(_ context.Context, job *entity.Job) error {
	r.lock()
	defer r.unlock()
	if _, ok := r.s.jobs[job.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.jobs[job.ID] = cloneJob(job)
	return nil
}

func (r *JobRepo) Delete(_ context.Context, id string) error {
	r.lock()
	defer r.unlock()
	delete(r.s.jobs, id)
	for appID, a := range r.s.apps {
		if a.JobID == id {
			delete(r.s.apps, appID)
		}
	}
	return nil
}

func (r *JobRepo) ListPublic(_ context.Context, filter entity.JobFilter, now time.Time, limit, offset int) ([]*entity.Job, int, error) {
	q := strings.ToLower(strings.TrimSpace(filter.Query))
	loc := strings.ToLower(strings.TrimSpace(filter.Location))

	r.rlock()
	var list []*entity.Job
	for _, j := range r.s.jobs {
		if !j.IsPublicAt(now) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(j.Title), q) && !strings.Contains(strings.ToLower(j.Company), q) {
			continue
		}
		if filter.JobType != "" && j.JobType != filter.JobType {
			continue
		}
		if loc != "" && (j.Location == nil || !strings.Contains(strings.ToLower(*j.Location), loc)) {
			continue
		}
		if filter.IsRemote != nil && j.IsRemote != *filter.IsRemote {
			continue
		}
		list = append(list, cloneJob(j))
	}
	r.runlock()

	sortJobs(list)
	return paginate(list, limit, offset), len(list), nil
}

func (r *JobRepo) ListByEmployer(_ context.Context, employerID string, limit, offset int) ([]*entity.Job, int, error) {
	r.rlock()
	var list []*entity.Job
	for _, j := range r.s.jobs {
		if j.EmployerID == employerID {
			list = append(list, cloneJob(j))
		}
	}
	r.runlock()

	sortJobs(list)
	return paginate(list, limit, offset), len(list), nil
}

// sortJobs posted_at DESC (nulos al final), id DESC.
func sortJobs(list []*entity.Job) {
	sort.Slice(list, func(i, k int) bool {
		a, b := list[i].PostedAt, list[k].PostedAt
		switch {
		case a == nil && b != nil:
			return false
		case a != nil && b == nil:
			return true
		case a != nil && b != nil && !a.Equal(*b):
			return a.After(*b)
		}
		return list[i].ID > list[k].ID
	})
}
