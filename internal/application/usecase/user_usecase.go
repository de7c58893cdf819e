package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/jobboard-api/internal/application/dto"
	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/internal/domain/entity"
	"github.com/jhoicas/jobboard-api/internal/domain/policy"
	"github.com/jhoicas/jobboard-api/internal/domain/repository"
	"github.com/jhoicas/jobboard-api/pkg/logger"
	"github.com/jhoicas/jobboard-api/pkg/validator"
)

// UserUseCase administración de usuarios y roles (solo admin).
type UserUseCase struct {
	repo     repository.UserRepository
	validate *validator.Validator
	log      *logger.Logger
	now      func() time.Time
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, log *logger.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, validate: validator.New(), log: log.Component("admin"), now: time.Now}
}

// List usuarios paginados.
func (uc *UserUseCase) List(ctx context.Context, principal *entity.User, page dto.PageRequest) (*dto.UserListResponse, error) {
	if principal == nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := policy.Authorize(policy.IsAdmin(principal), "listar usuarios"); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, page.PerPage, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, entityToUserResponse(u))
	}
	return &dto.UserListResponse{Data: items, Meta: dto.NewPageMeta(page, total)}, nil
}

// UpdateRole cambia el rol de un usuario.
func (uc *UserUseCase) UpdateRole(ctx context.Context, principal *entity.User, id string, in dto.UpdateRoleRequest) (*dto.UserResponse, error) {
	if principal == nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := policy.Authorize(policy.IsAdmin(principal), "cambiar roles"); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if fields := uc.validate.Struct(in); fields != nil {
		return nil, domain.NewValidationError(fields)
	}

	user.Role = entity.Role(in.Role)
	user.UpdatedAt = uc.now()
	if err := uc.repo.UpdateRole(ctx, user.ID, user.Role, user.UpdatedAt); err != nil {
		return nil, err
	}
	uc.log.Info().Str("admin_id", principal.ID).Str("user_id", user.ID).Str("role", in.Role).Msg("rol actualizado")
	out := entityToUserResponse(user)
	return &out, nil
}

func entityToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
