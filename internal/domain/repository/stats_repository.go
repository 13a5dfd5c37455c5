package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// ProductAggregates agregados del catálogo de una asociación.
type ProductAggregates struct {
	TotalProducts   int64
	CategoriesInUse int64 // categorías distintas referenciadas por algún producto
	StockValue      decimal.Decimal
}

// CategoryCount número de productos de una categoría.
type CategoryCount struct {
	CategoryID string
	Name       string
	Products   int64
}

// StatsRepository consultas de solo lectura para el dashboard. No modifican datos.
type StatsRepository interface {
	GetProductAggregates(ctx context.Context, associationID string) (ProductAggregates, error)
	CountTransactions(ctx context.Context, associationID string) (int64, error)
	// GetCategoryDistribution incluye categorías sin productos (conteo 0), ordenadas por nombre.
	GetCategoryDistribution(ctx context.Context, associationID string) ([]CategoryCount, error)
}
