package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/jobboard-api/internal/application/dto"
	"github.com/jhoicas/jobboard-api/internal/application/usecase"
	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/pkg/logger"
)

func TestUserUseCase_SoloAdmin(t *testing.T) {
	f := newFixture(t)
	uc := usecase.NewUserUseCase(f.store.Users(), logger.Nop())
	ctx := context.Background()

	_, err := uc.List(ctx, f.employer, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.UpdateRole(ctx, f.employer, f.applicant.ID, dto.UpdateRoleRequest{Role: "admin"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	page, err := uc.List(ctx, f.admin, dto.PageRequest{PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, 4, page.Meta.Total)
	assert.Equal(t, 2, page.Meta.LastPage)
}

func TestUserUseCase_UpdateRole(t *testing.T) {
	f := newFixture(t)
	uc := usecase.NewUserUseCase(f.store.Users(), logger.Nop())
	ctx := context.Background()

	_, err := uc.UpdateRole(ctx, f.admin, "nadie", dto.UpdateRoleRequest{Role: "employer"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.UpdateRole(ctx, f.admin, f.applicant.ID, dto.UpdateRoleRequest{Role: "root"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	out, err := uc.UpdateRole(ctx, f.admin, f.applicant.ID, dto.UpdateRoleRequest{Role: "employer"})
	require.NoError(t, err)
	assert.Equal(t, "employer", out.Role)

	u, err := f.store.Users().GetByID(ctx, f.applicant.ID)
	require.NoError(t, err)
	assert.Equal(t, "employer", string(u.Role))
}
