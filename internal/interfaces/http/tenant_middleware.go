package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-asociaciones/internal/application/dto"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/tenant"
	"github.com/jhoicas/Inventario-asociaciones/pkg/logger"
)

// LocalScope key del tenant.Scope resuelto en c.Locals.
const LocalScope = "scope"

// scopeResolver lo implementa *usecase.AssociationUseCase.
type scopeResolver interface {
	ResolveScope(ctx context.Context, email string) (tenant.Scope, error)
}

// TenantMiddleware resuelve la asociación del email del token y deja el tenant.Scope en c.Locals.
// Debe usarse DESPUÉS de AuthMiddleware.
//
// Un email sin asociación no es error: el scope queda sin resolver y cada caso de uso decide
// (lecturas vacías, escrituras rechazadas). Un fallo de la base responde 503.
func TenantMiddleware(resolver scopeResolver, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := GetEmail(c)
		if email == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "UNAUTHORIZED", Message: "email no encontrado en el token",
			})
		}
		scope, err := resolver.ResolveScope(c.Context(), email)
		if err != nil {
			log.Error().Err(err).Str("email", email).Msg("resolver asociación")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code: "TENANT_RESOLUTION_FAILED", Message: "no se pudo resolver la asociación, intente más tarde",
			})
		}
		c.Locals(LocalScope, scope)
		return c.Next()
	}
}

// GetScope devuelve el scope resuelto por TenantMiddleware (vacío si no se ejecutó).
func GetScope(c *fiber.Ctx) tenant.Scope {
	s, _ := c.Locals(LocalScope).(tenant.Scope)
	return s
}
