package postgres

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/internal/domain/entity"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\x`, escapeLike(`c:\x`))
}

func TestMigrationURL(t *testing.T) {
	assert.Equal(t, "postgres://u:p@h:5432/db?sslmode=disable", migrationURL("postgresql://u:p@h:5432/db?sslmode=disable"))
	assert.Equal(t, "postgres://h/db", migrationURL("postgres://h/db"))
}

func TestMigracionesEmbebidas_ParesUpDown(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	require.NoError(t, err)

	ups, downs := 0, 0
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		}
	}
	assert.Equal(t, 3, ups)
	assert.Equal(t, ups, downs)
}

func TestNonNil(t *testing.T) {
	assert.Equal(t, []string{}, nonNil(nil))
	assert.Equal(t, []string{"go"}, nonNil([]string{"go"}))
}

// errRow fila cuyo Scan devuelve err.
type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

// stubQuerier responde todas las consultas con el mismo error de Postgres.
type stubQuerier struct{ err error }

func (q stubQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, q.err
}

func (q stubQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, q.err }

func (q stubQuerier) QueryRow(context.Context, string, ...any) pgx.Row { return errRow{q.err} }

func TestGetByID_IDNoUUIDEsNoEncontrado(t *testing.T) {
	ctx := context.Background()
	db := stubQuerier{err: &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}}

	job, err := NewJobRepository(db).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, job)

	app, err := NewApplicationRepository(db).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, app)

	user, err := NewUserRepository(db).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, user)

	tok, err := NewTokenRepository(db).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, tok)

	err = NewUserRepository(db).UpdateRole(ctx, "abc", entity.RoleAdmin, time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetByID_OtrosErroresSePropagan(t *testing.T) {
	db := stubQuerier{err: &pgconn.PgError{Code: "08006", Message: "connection failure"}}

	_, err := NewJobRepository(db).GetByID(context.Background(), "0191d3a0-0000-7000-8000-000000000001")
	require.Error(t, err)
	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr))
}
