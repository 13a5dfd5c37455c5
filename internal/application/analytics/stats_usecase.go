// Package analytics contiene los casos de uso de estadísticas del dashboard y el reporte de stock.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-asociaciones/internal/application/dto"
	"github.com/jhoicas/Inventario-asociaciones/internal/application/usecase"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/entity"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/repository"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/stock"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/tenant"
)

// StatsUseCase calcula las estadísticas de una asociación en cada llamada (sin caché).
//
// Fuente de datos: StatsRepository para agregados, ProductRepository y TransactionRepository
// para listados. Solo lectura.
type StatsUseCase struct {
	statsRepo   repository.StatsRepository
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
	generator   StockReportGenerator
	now         func() time.Time
}

// NewStatsUseCase construye el caso de uso.
func NewStatsUseCase(
	statsRepo repository.StatsRepository,
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
	generator StockReportGenerator,
) *StatsUseCase {
	return &StatsUseCase{
		statsRepo:   statsRepo,
		productRepo: productRepo,
		txRepo:      txRepo,
		generator:   generator,
		now:         time.Now,
	}
}

// Overview totales del catálogo y del libro.
//
// Dos consultas en paralelo:
//  1. GetProductAggregates → productos, categorías en uso, valor del stock
//  2. CountTransactions    → transacciones
func (uc *StatsUseCase) Overview(ctx context.Context, scope tenant.Scope) (*dto.ProductOverviewDTO, error) {
	if !scope.Resolved() {
		return &dto.ProductOverviewDTO{StockValue: decimal.Zero}, nil
	}

	type aggResult struct {
		agg repository.ProductAggregates
		err error
	}
	type countResult struct {
		n   int64
		err error
	}
	aggCh := make(chan aggResult, 1)
	countCh := make(chan countResult, 1)

	go func() {
		agg, err := uc.statsRepo.GetProductAggregates(ctx, scope.AssociationID)
		aggCh <- aggResult{agg, err}
	}()
	go func() {
		n, err := uc.statsRepo.CountTransactions(ctx, scope.AssociationID)
		countCh <- countResult{n, err}
	}()

	agg := <-aggCh
	count := <-countCh
	if agg.err != nil {
		return nil, fmt.Errorf("stats: agregados de productos: %w", agg.err)
	}
	if count.err != nil {
		return nil, fmt.Errorf("stats: conteo de transacciones: %w", count.err)
	}

	return &dto.ProductOverviewDTO{
		TotalProducts:     agg.agg.TotalProducts,
		TotalCategories:   agg.agg.CategoriesInUse,
		TotalTransactions: count.n,
		StockValue:        agg.agg.StockValue,
	}, nil
}

// CategoryDistribution productos por categoría, incluidas las vacías, ordenadas por nombre.
func (uc *StatsUseCase) CategoryDistribution(ctx context.Context, scope tenant.Scope) ([]dto.CategoryDistributionDTO, error) {
	out := []dto.CategoryDistributionDTO{}
	if !scope.Resolved() {
		return out, nil
	}
	counts, err := uc.statsRepo.GetCategoryDistribution(ctx, scope.AssociationID)
	if err != nil {
		return nil, fmt.Errorf("stats: distribución por categoría: %w", err)
	}
	for _, c := range counts {
		out = append(out, dto.CategoryDistributionDTO{Name: c.Name, Value: c.Products})
	}
	return out, nil
}

// StockSummary clasifica cada producto con el umbral fijo de stock bajo.
// Los críticos se devuelven con los de stock bajo primero y luego los agotados.
func (uc *StatsUseCase) StockSummary(ctx context.Context, scope tenant.Scope) (*dto.StockSummaryDTO, error) {
	if !scope.Resolved() {
		return &dto.StockSummaryDTO{CriticalProducts: []dto.ProductResponse{}}, nil
	}
	products, err := uc.productRepo.List(ctx, scope.AssociationID, repository.ProductFilter{})
	if err != nil {
		return nil, fmt.Errorf("stats: listar productos: %w", err)
	}
	return summarize(products), nil
}

func summarize(products []*entity.ProductWithCategory) *dto.StockSummaryDTO {
	sum := &dto.StockSummaryDTO{}
	var low, out []dto.ProductResponse
	for _, p := range products {
		switch stock.Classify(p.Quantity) {
		case stock.LevelInStock:
			sum.InStockCount++
		case stock.LevelLowStock:
			sum.LowStockCount++
			low = append(low, *usecase.ToProductResponse(p))
		default:
			sum.OutOfStockCount++
			out = append(out, *usecase.ToProductResponse(p))
		}
	}
	sum.CriticalProducts = append(append(make([]dto.ProductResponse, 0, len(low)+len(out)), low...), out...)
	return sum
}

// RecentTransactions transacciones más recientes primero, con los datos actuales del producto.
// Limit <= 0 no limita. Un tipo distinto de IN/OUT es domain.ErrInvalidInput.
func (uc *StatsUseCase) RecentTransactions(ctx context.Context, scope tenant.Scope, filter repository.TransactionFilter) ([]dto.TransactionDTO, error) {
	if filter.Type != "" && !entity.ValidTransactionType(filter.Type) {
		return nil, domain.ErrInvalidInput
	}
	items := []dto.TransactionDTO{}
	if !scope.Resolved() {
		return items, nil
	}
	list, err := uc.txRepo.List(ctx, scope.AssociationID, filter)
	if err != nil {
		return nil, fmt.Errorf("stats: listar transacciones: %w", err)
	}
	for _, t := range list {
		items = append(items, dto.TransactionDTO{
			ID:           t.ID,
			Type:         t.Type,
			Quantity:     t.Quantity,
			ProductID:    t.ProductID,
			CreatedAt:    t.CreatedAt,
			ProductName:  t.ProductName,
			CategoryName: t.CategoryName,
			ImageURL:     t.ImageURL,
			Price:        t.Price,
			Unit:         t.Unit,
		})
	}
	return items, nil
}

// StockReportPDF genera el reporte de stock de la asociación.
// Retorna los bytes del PDF y el nombre de archivo sugerido.
func (uc *StatsUseCase) StockReportPDF(ctx context.Context, scope tenant.Scope) ([]byte, string, error) {
	if !scope.Resolved() {
		return nil, "", domain.ErrAssociationNotFound
	}
	overview, err := uc.Overview(ctx, scope)
	if err != nil {
		return nil, "", err
	}
	products, err := uc.productRepo.List(ctx, scope.AssociationID, repository.ProductFilter{})
	if err != nil {
		return nil, "", fmt.Errorf("stats: listar productos: %w", err)
	}
	data := StockReportData{
		AssociationEmail: scope.Email,
		GeneratedAt:      uc.now(),
		Overview:         *overview,
		Summary:          *summarize(products),
	}
	for _, p := range products {
		data.Products = append(data.Products, *usecase.ToProductResponse(p))
	}

	pdf, err := uc.generator.GenerateStockReport(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("stats: generar reporte: %w", err)
	}
	return pdf, fmt.Sprintf("reporte_stock_%s.pdf", data.GeneratedAt.Format("20060102")), nil
}
