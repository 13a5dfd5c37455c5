package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/Inventario-asociaciones/internal/application/analytics"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/repository"
)

// StatsHandler endpoints del dashboard y el historial de transacciones.
type StatsHandler struct {
	uc *appanalytics.StatsUseCase
}

// NewStatsHandler construye el handler.
func NewStatsHandler(uc *appanalytics.StatsUseCase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

// Overview godoc
// @Summary      Resumen del inventario
// @Tags         stats
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProductOverviewDTO
// @Router       /api/stats/overview [get]
func (h *StatsHandler) Overview(c *fiber.Ctx) error {
	out, err := h.uc.Overview(c.Context(), GetScope(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Productos por categoría
// @Tags         stats
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryDistributionDTO
// @Router       /api/stats/categories [get]
func (h *StatsHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.CategoryDistribution(c.Context(), GetScope(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// StockSummary godoc
// @Summary      Niveles de stock
// @Description  Con stock (> 5), stock bajo (1 a 5) y agotados, más la lista de críticos.
// @Tags         stats
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockSummaryDTO
// @Router       /api/stats/stock-summary [get]
func (h *StatsHandler) StockSummary(c *fiber.Ctx) error {
	out, err := h.uc.StockSummary(c.Context(), GetScope(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// StockReport godoc
// @Summary      Reporte de stock en PDF
// @Tags         stats
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stats/stock-report.pdf [get]
func (h *StatsHandler) StockReport(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.StockReportPDF(c.Context(), GetScope(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// Transactions godoc
// @Summary      Historial de transacciones
// @Description  Más recientes primero, con los datos actuales del producto.
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        limit       query  int     false  "Máximo de filas (0 = sin límite)"
// @Param        type        query  string  false  "IN u OUT"
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Success      200  {array}  dto.TransactionDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transactions [get]
func (h *StatsHandler) Transactions(c *fiber.Ctx) error {
	out, err := h.uc.RecentTransactions(c.Context(), GetScope(c), repository.TransactionFilter{
		Limit:     c.QueryInt("limit", 0),
		Type:      c.Query("type"),
		ProductID: c.Query("product_id"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
