package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-asociaciones/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas de agregación del dashboard (solo lectura).
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construye el adaptador.
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

func (r *StatsRepo) GetProductAggregates(ctx context.Context, associationID string) (repository.ProductAggregates, error) {
	var agg repository.ProductAggregates
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(DISTINCT category_id),
		       COALESCE(SUM(price * quantity), 0)
		FROM products
		WHERE association_id = $1`,
		associationID,
	).Scan(&agg.TotalProducts, &agg.CategoriesInUse, &agg.StockValue)
	if err != nil {
		return agg, fmt.Errorf("product aggregates: %w", err)
	}
	return agg, nil
}

func (r *StatsRepo) CountTransactions(ctx context.Context, associationID string) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions WHERE association_id = $1`, associationID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

func (r *StatsRepo) GetCategoryDistribution(ctx context.Context, associationID string) ([]repository.CategoryCount, error) {
	rows, err := r.q.Query(ctx, `
		SELECT c.id, c.name, COUNT(p.id)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		WHERE c.association_id = $1
		GROUP BY c.id, c.name
		ORDER BY c.name`,
		associationID,
	)
	if err != nil {
		return nil, fmt.Errorf("category distribution: %w", err)
	}
	defer rows.Close()
	var out []repository.CategoryCount
	for rows.Next() {
		var cc repository.CategoryCount
		if err := rows.Scan(&cc.CategoryID, &cc.Name, &cc.Products); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		out = append(out, cc)
	}
	return out, rows.Err()
}
