package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/entity"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo libro de transacciones de stock sobre PostgreSQL. Solo inserta y lee.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create agrega una entrada al libro.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO transactions (id, association_id, product_id, type, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.AssociationID, t.ProductID, t.Type, t.Quantity, t.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		if isCheckViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// List devuelve las transacciones de la asociación, más recientes primero, con los datos
// actuales del producto y su categoría.
func (r *TransactionRepo) List(ctx context.Context, associationID string, filter repository.TransactionFilter) ([]*entity.TransactionDetail, error) {
	b := psql.Select(
		"t.id", "t.association_id", "t.product_id", "t.type", "t.quantity", "t.created_at",
		"p.name", "COALESCE(c.name, '')", "p.image_url", "p.price", "p.unit",
	).
		From("transactions t").
		Join("products p ON p.id = t.product_id").
		LeftJoin("categories c ON c.id = p.category_id").
		Where(sq.Eq{"t.association_id": associationID}).
		OrderBy("t.created_at DESC", "t.id DESC")
	if filter.Type != "" {
		b = b.Where(sq.Eq{"t.type": filter.Type})
	}
	if filter.ProductID != "" {
		if !validID(filter.ProductID) {
			return nil, nil
		}
		b = b.Where(sq.Eq{"t.product_id": filter.ProductID})
	}
	if filter.Limit > 0 {
		b = b.Limit(uint64(filter.Limit))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list transactions: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.TransactionDetail
	for rows.Next() {
		var d entity.TransactionDetail
		if err := rows.Scan(
			&d.ID, &d.AssociationID, &d.ProductID, &d.Type, &d.Quantity, &d.CreatedAt,
			&d.ProductName, &d.CategoryName, &d.ImageURL, &d.Price, &d.Unit,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
