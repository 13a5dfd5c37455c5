package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-asociaciones/internal/application/dto"
	"github.com/jhoicas/Inventario-asociaciones/internal/application/usecase"
)

// AssociationHandler alta y consulta de la asociación del usuario autenticado.
type AssociationHandler struct {
	uc *usecase.AssociationUseCase
}

// NewAssociationHandler construye el handler.
func NewAssociationHandler(uc *usecase.AssociationUseCase) *AssociationHandler {
	return &AssociationHandler{uc: uc}
}

// Ensure godoc
// @Summary      Asegurar asociación
// @Description  Crea la asociación del email del token si no existe. Idempotente. Sin name en el body se usa el nombre del token.
// @Tags         association
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EnsureAssociationRequest  false  "Nombre de la asociación"
// @Success      200   {object}  dto.AssociationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/association [post]
func (h *AssociationHandler) Ensure(c *fiber.Ctx) error {
	var in dto.EnsureAssociationRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = strings.TrimSpace(GetName(c))
	}
	out, err := h.uc.Ensure(c.Context(), GetEmail(c), name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener asociación
// @Tags         association
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AssociationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/association [get]
func (h *AssociationHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetEmail(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
