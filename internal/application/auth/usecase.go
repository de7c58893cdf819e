package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/jobboard-api/internal/application/dto"
	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/internal/domain/entity"
	"github.com/jhoicas/jobboard-api/internal/domain/repository"
	"github.com/jhoicas/jobboard-api/pkg/jwt"
	"github.com/jhoicas/jobboard-api/pkg/logger"
	"github.com/jhoicas/jobboard-api/pkg/validator"
)

// maxPasswordBytes límite de bcrypt: más bytes no se pueden hashear.
const maxPasswordBytes = 72

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registro, login, resolución del principal y revocación de tokens.
type AuthUseCase struct {
	users       repository.UserRepository
	tokens      repository.TokenRepository
	jwtCfg      JWTConfig
	passwordMin int
	validate    *validator.Validator
	log         *logger.Logger
	now         func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, tokens repository.TokenRepository, jwtCfg JWTConfig, passwordMin int, log *logger.Logger) *AuthUseCase {
	if passwordMin <= 0 {
		passwordMin = 6
	}
	return &AuthUseCase{
		users:       users,
		tokens:      tokens,
		jwtCfg:      jwtCfg,
		passwordMin: passwordMin,
		validate:    validator.New(),
		log:         log.Component("auth"),
		now:         time.Now,
	}
}

// Register crea la cuenta (rol applicant por defecto) y emite un token.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	fields := uc.validate.Struct(in)
	if fields == nil {
		fields = map[string]string{}
	}
	if _, bad := fields["password"]; !bad {
		switch {
		case utf8.RuneCountInString(in.Password) < uc.passwordMin:
			fields["password"] = fmt.Sprintf("debe tener al menos %d caracteres", uc.passwordMin)
		case len(in.Password) > maxPasswordBytes:
			fields["password"] = fmt.Sprintf("no puede superar %d bytes", maxPasswordBytes)
		}
	}
	if in.PasswordConfirmation != nil && *in.PasswordConfirmation != in.Password {
		fields["password_confirmation"] = "la confirmación no coincide"
	}
	if _, bad := fields["email"]; !bad {
		existing, err := uc.users.GetByEmail(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			fields["email"] = "ya está registrado"
		}
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError(fields)
	}

	role := entity.Role(in.Role)
	if role == "" {
		role = entity.RoleApplicant
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generar id: %w", err)
	}
	now := uc.now()
	user := &entity.User{
		ID:           id.String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, domain.FieldError("email", "ya está registrado")
		}
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("usuario registrado")
	return uc.issue(ctx, user)
}

// Login verifica email/password y emite un token nuevo.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if fields := uc.validate.Struct(in); fields != nil {
		return nil, domain.NewValidationError(fields)
	}
	user, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return uc.issue(ctx, user)
}

// ResolvePrincipal token → usuario. Firma, expiración, fila en auth_tokens y no revocado.
func (uc *AuthUseCase) ResolvePrincipal(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	stored, err := uc.tokens.GetByID(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if stored == nil || stored.UserID != claims.UserID || !stored.Active(uc.now()) {
		return nil, domain.ErrUnauthenticated
	}
	user, err := uc.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

// Revoke invalida el token. Revocar dos veces no es error.
func (uc *AuthUseCase) Revoke(ctx context.Context, token string) error {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return domain.ErrUnauthenticated
	}
	if err := uc.tokens.Revoke(ctx, claims.ID, uc.now()); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", claims.UserID).Str("token_id", claims.ID).Msg("token revocado")
	return nil
}

func (uc *AuthUseCase) issue(ctx context.Context, user *entity.User) (*dto.AuthResponse, error) {
	tokenID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generar id de token: %w", err)
	}
	signed, expiresAt, err := jwt.Generate(uc.jwtCfg.Secret, tokenID.String(), user.ID, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("firmar token: %w", err)
	}
	if err := uc.tokens.Create(ctx, &entity.AuthToken{
		ID:        tokenID.String(),
		UserID:    user.ID,
		CreatedAt: uc.now(),
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: signed, ExpiresAt: expiresAt, User: ToUserResponse(user)}, nil
}

// ToUserResponse entidad → DTO (nunca incluye el hash).
func ToUserResponse(u *entity.User) dto.UserResponse {
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
