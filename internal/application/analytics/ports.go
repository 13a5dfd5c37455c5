package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-asociaciones/internal/application/dto"
)

// StockReportData contenido del reporte de stock en PDF.
type StockReportData struct {
	AssociationEmail string
	GeneratedAt      time.Time
	Overview         dto.ProductOverviewDTO
	Summary          dto.StockSummaryDTO
	Products         []dto.ProductResponse // catálogo completo, ordenado por nombre
}

// StockReportGenerator genera la representación PDF del reporte (implementado en infrastructure/pdf).
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, data StockReportData) ([]byte, error)
}
