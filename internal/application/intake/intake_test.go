package intake_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/jobboard-api/internal/application/dto"
	"github.com/jhoicas/jobboard-api/internal/application/intake"
	"github.com/jhoicas/jobboard-api/internal/application/ports"
	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/internal/domain/entity"
	"github.com/jhoicas/jobboard-api/internal/infrastructure/memory"
	"github.com/jhoicas/jobboard-api/internal/infrastructure/storage"
	"github.com/jhoicas/jobboard-api/pkg/logger"
)

type stubScanner struct {
	result ports.ScanResult
	err    error
	calls  int
}

func (s *stubScanner) Enabled() bool { return true }

func (s *stubScanner) Scan(context.Context, []byte) (ports.ScanResult, error) {
	s.calls++
	return s.result, s.err
}

// failingStorage falla al escribir; el resto delega.
type failingStorage struct {
	ports.ResumeStorage
}

func (failingStorage) Store(context.Context, string, string, io.Reader, int64, string) (string, error) {
	return "", domain.ErrStorage
}

type fixture struct {
	store    *memory.Store
	fs       afero.Fs
	storage  ports.ResumeStorage
	rec      *recordingStorage
	scanner  *stubScanner
	uc       *intake.IntakeUseCase
	job      *entity.Job
	employer *entity.User
	alice    *entity.User
	bob      *entity.User
	admin    *entity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{
		store:    memory.NewStore(),
		fs:       afero.NewMemMapFs(),
		scanner:  &stubScanner{},
		employer: &entity.User{ID: "emp-1", Name: "Acme", Email: "hr@acme.test", Role: entity.RoleEmployer},
		alice:    &entity.User{ID: "app-1", Name: "Alice", Email: "alice@example.com", Role: entity.RoleApplicant},
		bob:      &entity.User{ID: "app-2", Name: "Bob", Email: "bob@example.com", Role: entity.RoleApplicant},
		admin:    &entity.User{ID: "adm-1", Name: "Root", Email: "root@example.com", Role: entity.RoleAdmin},
	}
	f.rec = &recordingStorage{ResumeStorage: storage.NewLocalStorageFs(f.fs)}
	f.storage = f.rec
	for _, u := range []*entity.User{f.employer, f.alice, f.bob, f.admin} {
		require.NoError(t, f.store.Users().Create(ctx, u))
	}
	f.job = &entity.Job{ID: "job-1", Title: "Go Dev", Company: "Acme", Description: "d", EmployerID: f.employer.ID,
		JobType: entity.JobTypeFullTime, Status: entity.JobStatusOpen}
	require.NoError(t, f.store.Jobs().Create(ctx, f.job))
	f.rebuild()
	return f
}

func (f *fixture) rebuild() {
	f.uc = intake.NewIntakeUseCase(f.store.Jobs(), f.store.Applications(), f.store.Users(), f.storage, f.scanner, logger.Nop())
}

func request(applicantID string) dto.SubmitApplicationRequest {
	return dto.SubmitApplicationRequest{
		ApplicantID:    applicantID,
		ApplicantName:  "Alice <b>Liddell</b>",
		ApplicantEmail: " Alice@Example.com ",
		CoverLetter:    strings.Repeat("Me interesa mucho esta oferta. ", 20),
	}
}

func pdf(size int) *intake.ResumeFile {
	content := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("x"), size)...)
	return &intake.ResumeFile{Filename: "cv.PDF", Size: int64(len(content)), Content: content}
}

// recordingStorage registra las rutas escritas.
type recordingStorage struct {
	ports.ResumeStorage
	stored []string
}

func (r *recordingStorage) Store(ctx context.Context, dir, name string, body io.Reader, size int64, ct string) (string, error) {
	p, err := r.ResumeStorage.Store(ctx, dir, name, body, size, ct)
	if err == nil {
		r.stored = append(r.stored, p)
	}
	return p, err
}

func TestSubmit_FlujoCompleto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.uc.Submit(ctx, f.alice, f.job.ID, request(f.alice.ID), pdf(100*1024))
	require.NoError(t, err)
	assert.Equal(t, "applied", out.Status)
	assert.Equal(t, "Alice Liddell", out.ApplicantName, "se quitan las etiquetas")
	assert.Equal(t, "alice@example.com", out.ApplicantEmail)
	require.NotNil(t, out.ResumePath)
	assert.True(t, strings.HasPrefix(*out.ResumePath, "resumes/"+time.Now().Format("2006")+"/job-1/"))
	assert.True(t, strings.HasSuffix(*out.ResumePath, ".pdf"))
	assert.Equal(t, 1, f.scanner.calls)

	ok, err := f.storage.Exists(ctx, *out.ResumePath)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSubmit_OfertaInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Submit(context.Background(), f.alice, "no-existe", dto.SubmitApplicationRequest{}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmit_CartaCortaSiempreRechazada(t *testing.T) {
	f := newFixture(t)
	in := request(f.alice.ID)
	in.CoverLetter = strings.Repeat("a", 49)

	_, err := f.uc.Submit(context.Background(), f.alice, f.job.ID, in, pdf(10))
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"cover_letter"}, keys(verr.Fields))
	assert.Empty(t, f.rec.stored, "sin efectos antes de validar")
	assert.Equal(t, 0, f.scanner.calls)
}

func TestSubmit_ValidacionDeArchivoYCampos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	exe := &intake.ResumeFile{Filename: "cv.exe", Size: 3, Content: []byte("MZ!")}
	_, err := f.uc.Submit(ctx, f.alice, f.job.ID, request(f.alice.ID), exe)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.Submit(ctx, f.alice, f.job.ID, request(f.alice.ID), pdf(intake.MaxResumeBytes))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.Submit(ctx, f.alice, f.job.ID, request(f.alice.ID), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	// solo un admin puede postular en nombre de otro id
	in := request("usuario-fantasma")
	in.ApplicantEmail = "no-es-email"
	_, err = f.uc.Submit(ctx, f.admin, f.job.ID, in, pdf(10))
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "applicant_id")
	assert.Contains(t, verr.Fields, "applicant_email")
}

func TestSubmit_ApplicantIDNoUUID422(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Submit(context.Background(), f.admin, f.job.ID, request("abc"), pdf(10))
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"applicant_id"}, keys(verr.Fields))
}

func TestSubmit_EnNombreDeOtroUsuario403(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Submit(ctx, f.bob, f.job.ID, request(f.alice.ID), pdf(10))
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, f.rec.stored)
	assert.Equal(t, 0, f.scanner.calls)

	// la postulante real no queda bloqueada
	out, err := f.uc.Submit(ctx, f.alice, f.job.ID, request(f.alice.ID), pdf(10))
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, out.ApplicantID)

	// el admin sí puede postular por otro usuario
	out, err = f.uc.Submit(ctx, f.admin, f.job.ID, request(f.bob.ID), pdf(10))
	require.NoError(t, err)
	assert.Equal(t, f.bob.ID, out.ApplicantID)

	_, err = f.uc.Submit(ctx, nil, f.job.ID, request(f.alice.ID), pdf(10))
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestSubmit_DuplicadoConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.Submit(ctx, f.alice, f.job.ID, request(f.alice.ID), pdf(10))
	require.NoError(t, err)

	_, err = f.uc.Submit(ctx, f.alice, f.job.ID, request(f.alice.ID), pdf(10))
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, f.rec.stored, 1, "el duplicado no escribe archivo")

	page, err := f.uc.List(ctx, f.admin, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Meta.Total)
}

func TestSubmit_Infectado(t *testing.T) {
	f := newFixture(t)
	f.scanner.result = ports.ScanResult{Infected: true}

	_, err := f.uc.Submit(context.Background(), f.alice, f.job.ID, request(f.alice.ID), pdf(10))
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "resume")
	assert.Empty(t, f.rec.stored)
}

func TestSubmit_EscanerCaido(t *testing.T) {
	f := newFixture(t)
	f.scanner.err = errors.New("clamd no responde")

	_, err := f.uc.Submit(context.Background(), f.alice, f.job.ID, request(f.alice.ID), pdf(10))
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestSubmit_FalloDeAlmacenamiento_SinFila(t *testing.T) {
	f := newFixture(t)
	f.storage = failingStorage{ResumeStorage: f.rec}
	f.rebuild()

	_, err := f.uc.Submit(context.Background(), f.alice, f.job.ID, request(f.alice.ID), pdf(10))
	assert.ErrorIs(t, err, domain.ErrStorage)

	n, err := f.store.Applications().CountByJob(context.Background(), f.job.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSubmit_CarreraEnInsert_BorraArchivo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.uc = intake.NewIntakeUseCase(f.store.Jobs(), racingApps{f.store.Applications()}, f.store.Users(), f.storage, f.scanner, logger.Nop())

	_, err := f.uc.Submit(ctx, f.alice, f.job.ID, request(f.alice.ID), pdf(10))
	assert.ErrorIs(t, err, domain.ErrConflict)
	require.Len(t, f.rec.stored, 1)
	ok, err := f.storage.Exists(ctx, f.rec.stored[0])
	require.NoError(t, err)
	assert.False(t, ok, "el archivo huérfano se borra")
}

// racingApps simula que otra petición insertó la misma postulación entre el chequeo y el insert.
type racingApps struct {
	*memory.ApplicationRepo
}

func (racingApps) Create(context.Context, *entity.Application) error { return domain.ErrConflict }

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
