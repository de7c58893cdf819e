package policy_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/internal/domain/entity"
	"github.com/jhoicas/jobboard-api/internal/domain/policy"
)

var (
	admin     = &entity.User{ID: "u-admin", Role: entity.RoleAdmin}
	employer  = &entity.User{ID: "u-emp", Role: entity.RoleEmployer}
	other     = &entity.User{ID: "u-emp2", Role: entity.RoleEmployer}
	applicant = &entity.User{ID: "u-app", Role: entity.RoleApplicant}
	stranger  = &entity.User{ID: "u-app2", Role: entity.RoleApplicant}

	job = &entity.Job{ID: "j1", EmployerID: employer.ID}
	app = &entity.Application{ID: "a1", JobID: job.ID, ApplicantID: applicant.ID}
)

func TestCanCreateJob(t *testing.T) {
	assert.True(t, policy.CanCreateJob(employer))
	assert.True(t, policy.CanCreateJob(admin))
	assert.False(t, policy.CanCreateJob(applicant))
	assert.False(t, policy.CanCreateJob(nil))
	assert.False(t, policy.CanCreateJob(&entity.User{ID: "x", Role: "superuser"}))
}

func TestCanMutateJob(t *testing.T) {
	assert.True(t, policy.CanMutateJob(employer, job))
	assert.True(t, policy.CanMutateJob(admin, job))
	assert.False(t, policy.CanMutateJob(other, job))
	assert.False(t, policy.CanMutateJob(applicant, job))
}

func TestCanViewApplication(t *testing.T) {
	assert.True(t, policy.CanViewApplication(applicant, app, job), "el propio postulante")
	assert.True(t, policy.CanViewApplication(employer, app, job), "el dueño de la oferta")
	assert.True(t, policy.CanViewApplication(admin, app, job))
	assert.False(t, policy.CanViewApplication(other, app, job))
	assert.False(t, policy.CanViewApplication(stranger, app, job))
}

func TestCanMutateApplicationStatus_MismoQueVer(t *testing.T) {
	for _, u := range []*entity.User{admin, employer, other, applicant, stranger} {
		assert.Equal(t,
			policy.CanViewApplication(u, app, job),
			policy.CanMutateApplicationStatus(u, app, job),
			"usuario %s", u.ID)
	}
}

func TestCanDeleteApplication(t *testing.T) {
	assert.True(t, policy.CanDeleteApplication(applicant, app))
	assert.True(t, policy.CanDeleteApplication(admin, app))
	assert.False(t, policy.CanDeleteApplication(employer, app), "el empleador no puede borrar")
	assert.False(t, policy.CanDeleteApplication(stranger, app))
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, policy.IsAdmin(admin))
	assert.False(t, policy.IsAdmin(employer))
	assert.False(t, policy.IsAdmin(nil))
}

func TestApplicationScope(t *testing.T) {
	s, err := policy.ApplicationScope(applicant)
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationScope{ApplicantID: applicant.ID}, s)

	s, err = policy.ApplicationScope(employer)
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationScope{EmployerID: employer.ID}, s)

	s, err = policy.ApplicationScope(admin)
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationScope{}, s)
}

func TestAuthorize(t *testing.T) {
	assert.NoError(t, policy.Authorize(true, "x"))
	err := policy.Authorize(false, "borrar oferta")
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestCanApplyAs(t *testing.T) {
	assert.True(t, policy.CanApplyAs(applicant, applicant.ID))
	assert.False(t, policy.CanApplyAs(stranger, applicant.ID))
	assert.False(t, policy.CanApplyAs(employer, applicant.ID))
	assert.True(t, policy.CanApplyAs(admin, applicant.ID))
	assert.False(t, policy.CanApplyAs(nil, applicant.ID))
}
