package intake_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/jobboard-api/internal/application/dto"
	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/internal/domain/entity"
)

func submitted(t *testing.T, f *fixture) *dto.ApplicationResponse {
	t.Helper()
	out, err := f.uc.Submit(context.Background(), f.alice, f.job.ID, request(f.alice.ID), pdf(100))
	require.NoError(t, err)
	return out
}

func TestUpdateStatus_EmpleadorDueño(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := submitted(t, f)

	out, err := f.uc.UpdateStatus(ctx, f.employer, app.ID, dto.UpdateApplicationStatusRequest{Status: "shortlisted"})
	require.NoError(t, err)
	assert.Equal(t, "shortlisted", out.Status)

	got, err := f.uc.Get(ctx, f.employer, app.ID)
	require.NoError(t, err)
	assert.Equal(t, "shortlisted", got.Status)
}

func TestUpdateStatus_AjenoRecibe403YNoCambia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := submitted(t, f)

	_, err := f.uc.UpdateStatus(ctx, f.bob, app.ID, dto.UpdateApplicationStatusRequest{Status: "hired"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := f.uc.Get(ctx, f.admin, app.ID)
	require.NoError(t, err)
	assert.Equal(t, "applied", got.Status)
}

func TestUpdateStatus_OrdenDeErrores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := submitted(t, f)

	_, err := f.uc.UpdateStatus(ctx, f.bob, "no-existe", dto.UpdateApplicationStatusRequest{Status: "bogus"})
	assert.ErrorIs(t, err, domain.ErrNotFound, "404 antes que 403")

	_, err = f.uc.UpdateStatus(ctx, f.bob, app.ID, dto.UpdateApplicationStatusRequest{Status: "bogus"})
	assert.ErrorIs(t, err, domain.ErrForbidden, "403 antes que 422")

	_, err = f.uc.UpdateStatus(ctx, f.employer, app.ID, dto.UpdateApplicationStatusRequest{Status: "bogus"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.UpdateStatus(ctx, f.employer, app.ID, dto.UpdateApplicationStatusRequest{Status: "hired"})
	assert.ErrorIs(t, err, domain.ErrValidation, "applied no pasa directo a hired")

	_, err = f.uc.UpdateStatus(ctx, f.employer, app.ID, dto.UpdateApplicationStatusRequest{Status: "applied"})
	assert.NoError(t, err, "repetir el estado actual se acepta")
}

func TestList_AlcancePorRol(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	submitted(t, f)

	mine, err := f.uc.List(ctx, f.alice, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, mine.Meta.Total)

	theirs, err := f.uc.List(ctx, f.bob, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, theirs.Meta.Total)
	assert.NotNil(t, theirs.Data)

	forEmployer, err := f.uc.List(ctx, f.employer, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, forEmployer.Meta.Total)
}

func TestDelete_SoloPostulanteOAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := submitted(t, f)

	assert.ErrorIs(t, f.uc.Delete(ctx, f.employer, app.ID), domain.ErrForbidden)
	require.NoError(t, f.uc.Delete(ctx, f.alice, app.ID))

	_, err := f.uc.Get(ctx, f.admin, app.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	ok, err := f.storage.Exists(ctx, *app.ResumePath)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResume_StreamLocal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := submitted(t, f)

	_, err := f.uc.Resume(ctx, f.bob, app.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	file, err := f.uc.Resume(ctx, f.employer, app.ID)
	require.NoError(t, err)
	defer file.Body.Close()
	assert.False(t, file.Signed())
	body, err := io.ReadAll(file.Body)
	require.NoError(t, err)
	assert.Equal(t, pdf(100).Content, body)
}

func TestResume_SinArchivo404(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Applications().Create(ctx, &entity.Application{
		ID: "sin-cv", JobID: f.job.ID, ApplicantID: f.bob.ID, Status: entity.ApplicationStatusApplied,
	}))
	_, err := f.uc.Resume(ctx, f.bob, "sin-cv")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	missing := "resumes/2020/job-1/borrado.pdf"
	require.NoError(t, f.store.Applications().Create(ctx, &entity.Application{
		ID: "cv-borrado", JobID: f.job.ID, ApplicantID: f.alice.ID, ResumePath: &missing, Status: entity.ApplicationStatusApplied,
	}))
	_, err = f.uc.Resume(ctx, f.alice, "cv-borrado")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSanitize_EntidadesYNFC(t *testing.T) {
	f := newFixture(t)
	in := request(f.alice.ID)
	in.ApplicantName = "  José &amp; <script>alert(1)</script>Co  "
	out, err := f.uc.Submit(context.Background(), f.alice, f.job.ID, in, pdf(10))
	require.NoError(t, err)
	assert.Equal(t, "José & Co", out.ApplicantName)
}
