package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-asociaciones/internal/application/dto"
	"github.com/jhoicas/Inventario-asociaciones/internal/application/inventory"
)

// StockHandler reposiciones y salidas de stock (protegido).
type StockHandler struct {
	ledger *inventory.StockLedgerUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger *inventory.StockLedgerUseCase) *StockHandler {
	return &StockHandler{ledger: ledger}
}

// Replenish godoc
// @Summary      Reponer stock
// @Description  Suma la cantidad al producto y registra una transacción IN. Cantidad <= 0 no hace nada.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReplenishRequest  true  "Producto y cantidad"
// @Success      200   {object}  dto.ReplenishResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/replenish [post]
func (h *StockHandler) Replenish(c *fiber.Ctx) error {
	var in dto.ReplenishRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.ledger.Replenish(c.Context(), GetScope(c), in.ProductID, in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.JSON(dto.ResultResponse{Success: true, Message: "cantidad no positiva: sin cambios"})
	}
	return c.JSON(out)
}

// Deduct godoc
// @Summary      Registrar salida de stock
// @Description  Valida todo el lote y lo confirma de forma atómica: o se descuentan todas las líneas o ninguna.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeductRequest  true  "Líneas de la salida"
// @Success      200   {object}  dto.DeductResult
// @Failure      409   {object}  dto.DeductResult
// @Failure      500   {object}  dto.DeductResult
// @Router       /api/stock/deduct [post]
func (h *StockHandler) Deduct(c *fiber.Ctx) error {
	var in dto.DeductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res := h.ledger.Deduct(c.Context(), GetScope(c), in.Items)
	switch {
	case res.Success:
		return c.JSON(res)
	case res.Failure != nil && res.Failure.Reason == dto.DeductReasonInternal:
		return c.Status(fiber.StatusInternalServerError).JSON(res)
	}
	return c.Status(fiber.StatusConflict).JSON(res)
}
