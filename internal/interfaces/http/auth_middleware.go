package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/jobboard-api/internal/application/dto"
	"github.com/jhoicas/jobboard-api/internal/domain"
	"github.com/jhoicas/jobboard-api/internal/domain/entity"
	"github.com/jhoicas/jobboard-api/pkg/logger"
)

// Locals keys para el principal y el token en Fiber.
const (
	LocalPrincipal = "principal"
	LocalToken     = "token"
)

// PrincipalResolver resuelve un bearer token al usuario (auth.AuthUseCase).
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, token string) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token y deja el principal en c.Locals.
// Solo los fallos de autenticación son 401; un error del almacén pasa por writeError.
func AuthMiddleware(resolver PrincipalResolver, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		token := strings.TrimSpace(parts[1])
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		user, err := resolver.ResolvePrincipal(c.UserContext(), token)
		if err != nil && !errors.Is(err, domain.ErrUnauthenticated) {
			return writeError(c, log, err)
		}
		if err != nil || user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido, expirado o revocado"})
		}
		c.Locals(LocalPrincipal, user)
		c.Locals(LocalToken, token)
		return c.Next()
	}
}

// GetPrincipal devuelve el usuario autenticado (después del middleware de auth).
func GetPrincipal(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalPrincipal).(*entity.User)
	return u
}

// GetToken devuelve el token presentado en la petición.
func GetToken(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalToken).(string)
	return s
}
