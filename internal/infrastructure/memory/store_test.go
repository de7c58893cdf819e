package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/internal/domain/entity"
	"github.com/jhoicas/jobboard-api/internal/domain/repository"
	"github.com/jhoicas/jobboard-api/internal/infrastructure/memory"
)

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func ptrTime(t time.Time) *time.Time { return &t }
func ptrStr(s string) *string        { return &s }

func job(id, employer string, posted *time.Time, status entity.JobStatus) *entity.Job {
	return &entity.Job{
		ID: id, Title: "Backend " + id, Company: "Acme", Description: "d",
		EmployerID: employer, JobType: entity.JobTypeFullTime, PostedAt: posted, Status: status,
		CreatedAt: base, UpdatedAt: base,
	}
}

func TestUserRepo_EmailUnicoSinMayusculas(t *testing.T) {
	ctx := context.Background()
	users := memory.NewStore().Users()

	require.NoError(t, users.Create(ctx, &entity.User{ID: "u1", Email: "ana@example.com", Role: entity.RoleApplicant}))
	err := users.Create(ctx, &entity.User{ID: "u2", Email: "ANA@example.com", Role: entity.RoleApplicant})
	assert.True(t, errors.Is(err, domain.ErrEmailAlreadyExists))

	u, err := users.GetByEmail(ctx, "Ana@Example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)

	missing, err := users.GetByID(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTokenRepo_RevokeIdempotente(t *testing.T) {
	ctx := context.Background()
	tokens := memory.NewStore().Tokens()
	require.NoError(t, tokens.Create(ctx, &entity.AuthToken{ID: "t1", UserID: "u1", ExpiresAt: base.Add(time.Hour)}))

	require.NoError(t, tokens.Revoke(ctx, "t1", base))
	require.NoError(t, tokens.Revoke(ctx, "t1", base.Add(time.Minute)))
	require.NoError(t, tokens.Revoke(ctx, "desconocido", base))

	tok, err := tokens.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, tok.Active(base))
}

func TestJobRepo_ListPublic_VisibilidadYOrden(t *testing.T) {
	ctx := context.Background()
	jobs := memory.NewStore().Jobs()

	require.NoError(t, jobs.Create(ctx, job("a", "e1", ptrTime(base.Add(-2*time.Hour)), entity.JobStatusOpen)))
	require.NoError(t, jobs.Create(ctx, job("b", "e1", ptrTime(base.Add(-time.Hour)), entity.JobStatusOpen)))
	require.NoError(t, jobs.Create(ctx, job("c", "e1", nil, entity.JobStatusOpen)))
	require.NoError(t, jobs.Create(ctx, job("d", "e1", ptrTime(base.Add(time.Hour)), entity.JobStatusOpen)))
	require.NoError(t, jobs.Create(ctx, job("e", "e1", nil, entity.JobStatusClosed)))

	list, total, err := jobs.ListPublic(ctx, entity.JobFilter{}, base, 15, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	ids := []string{}
	for _, j := range list {
		ids = append(ids, j.ID)
	}
	assert.Equal(t, []string{"b", "a", "c"}, ids)

	page, total, err := jobs.ListPublic(ctx, entity.JobFilter{}, base, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 1)
	assert.Equal(t, "c", page[0].ID)
}

func TestJobRepo_ListPublic_Filtros(t *testing.T) {
	ctx := context.Background()
	jobs := memory.NewStore().Jobs()

	remote := job("r", "e1", nil, entity.JobStatusOpen)
	remote.IsRemote = true
	remote.Company = "Globex"
	remote.Location = ptrStr("Bogotá, CO")
	remote.JobType = entity.JobTypeContract
	require.NoError(t, jobs.Create(ctx, remote))
	require.NoError(t, jobs.Create(ctx, job("o", "e1", nil, entity.JobStatusOpen)))

	yes := true
	list, total, err := jobs.ListPublic(ctx, entity.JobFilter{IsRemote: &yes}, base, 15, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "r", list[0].ID)

	_, total, _ = jobs.ListPublic(ctx, entity.JobFilter{Query: "glob"}, base, 15, 0)
	assert.Equal(t, 1, total)
	_, total, _ = jobs.ListPublic(ctx, entity.JobFilter{Location: "bogot"}, base, 15, 0)
	assert.Equal(t, 1, total)
	_, total, _ = jobs.ListPublic(ctx, entity.JobFilter{JobType: entity.JobTypeFullTime}, base, 15, 0)
	assert.Equal(t, 1, total)
}

func TestApplicationRepo_UnicoPorOfertaYPostulante(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Jobs().Create(ctx, job("j1", "e1", nil, entity.JobStatusOpen)))

	app := &entity.Application{ID: "a1", JobID: "j1", ApplicantID: "u1", Status: entity.ApplicationStatusApplied, AppliedAt: base}
	require.NoError(t, s.Applications().Create(ctx, app))

	dup := &entity.Application{ID: "a2", JobID: "j1", ApplicantID: "u1", Status: entity.ApplicationStatusApplied, AppliedAt: base}
	assert.True(t, errors.Is(s.Applications().Create(ctx, dup), domain.ErrConflict))

	ok, err := s.Applications().ExistsForApplicant(ctx, "j1", "u1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestApplicationRepo_ListPorAlcance(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Jobs().Create(ctx, job("j1", "e1", nil, entity.JobStatusOpen)))
	require.NoError(t, s.Jobs().Create(ctx, job("j2", "e2", nil, entity.JobStatusOpen)))
	require.NoError(t, s.Applications().Create(ctx, &entity.Application{ID: "a1", JobID: "j1", ApplicantID: "u1", AppliedAt: base}))
	require.NoError(t, s.Applications().Create(ctx, &entity.Application{ID: "a2", JobID: "j2", ApplicantID: "u1", AppliedAt: base.Add(time.Minute)}))
	require.NoError(t, s.Applications().Create(ctx, &entity.Application{ID: "a3", JobID: "j2", ApplicantID: "u2", AppliedAt: base}))

	mine, total, err := s.Applications().List(ctx, entity.ApplicationScope{ApplicantID: "u1"}, 15, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "a2", mine[0].ID)

	_, total, _ = s.Applications().List(ctx, entity.ApplicationScope{EmployerID: "e2"}, 15, 0)
	assert.Equal(t, 2, total)

	_, total, _ = s.Applications().List(ctx, entity.ApplicationScope{}, 15, 0)
	assert.Equal(t, 3, total)
}

func TestTxRunner_RestauraAnteError(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Jobs().Create(ctx, job("j1", "e1", nil, entity.JobStatusOpen)))
	require.NoError(t, s.Applications().Create(ctx, &entity.Application{ID: "a1", JobID: "j1", ApplicantID: "u1", ResumePath: ptrStr("resumes/x.pdf"), AppliedAt: base}))

	boom := errors.New("boom")
	err := memory.NewTxRunner(s).Run(ctx, func(jobs repository.JobRepository, apps repository.ApplicationRepository) error {
		paths, err := apps.DeleteByJob(ctx, "j1")
		require.NoError(t, err)
		assert.Equal(t, []string{"resumes/x.pdf"}, paths)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := s.Applications().CountByJob(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	err = memory.NewTxRunner(s).Run(ctx, func(jobs repository.JobRepository, apps repository.ApplicationRepository) error {
		if _, err := apps.DeleteByJob(ctx, "j1"); err != nil {
			return err
		}
		return jobs.Delete(ctx, "j1")
	})
	require.NoError(t, err)
	got, _ := s.Jobs().GetByID(ctx, "j1")
	assert.Nil(t, got)
}

func TestTxRunner_RollbackNoPierdeEscriturasConcurrentes(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Jobs().Create(ctx, job("j1", "e1", nil, entity.JobStatusOpen)))

	done := make(chan error, 1)
	boom := errors.New("boom")
	err := memory.NewTxRunner(s).Run(ctx, func(jobs repository.JobRepository, apps repository.ApplicationRepository) error {
		go func() { done <- s.Jobs().Create(ctx, job("j2", "e2", nil, entity.JobStatusOpen)) }()
		// la escritura ajena espera al final de la transacción
		time.Sleep(20 * time.Millisecond)
		require.NoError(t, jobs.Delete(ctx, "j1"))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	require.NoError(t, <-done)

	got, err := s.Jobs().GetByID(ctx, "j1")
	require.NoError(t, err)
	assert.NotNil(t, got, "el rollback restaura la oferta borrada")
	got, err = s.Jobs().GetByID(ctx, "j2")
	require.NoError(t, err)
	assert.NotNil(t, got, "la oferta creada en paralelo sobrevive al rollback")
}
