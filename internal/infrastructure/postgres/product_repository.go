package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/entity"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

var productWithCategoryColumns = []string{
	"p.id", "p.association_id", "p.category_id", "p.name", "p.description", "p.price", "p.quantity",
	"p.image_url", "p.unit", "p.created_at", "p.updated_at", "COALESCE(c.name, '')",
}

func scanProduct(row pgx.Row) (*entity.ProductWithCategory, error) {
	var p entity.ProductWithCategory
	err := row.Scan(
		&p.ID, &p.AssociationID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.Quantity,
		&p.ImageURL, &p.Unit, &p.CreatedAt, &p.UpdatedAt, &p.CategoryName,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (id, association_id, category_id, name, description, price, quantity, image_url, unit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.AssociationID, p.CategoryID, p.Name, p.Description, p.Price, p.Quantity,
		p.ImageURL, p.Unit, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		if isCheckViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto de la asociación con el nombre de su categoría.
func (r *ProductRepo) GetByID(ctx context.Context, associationID, id string) (*entity.ProductWithCategory, error) {
	if !validID(id) {
		return nil, nil
	}
	query, args, err := psql.Select(productWithCategoryColumns...).
		From("products p").
		LeftJoin("categories c ON c.id = p.category_id").
		Where(sq.Eq{"p.id": id, "p.association_id": associationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get product: %w", err)
	}
	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza los datos de catálogo. No modifica quantity (solo vía Increment/Decrement).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	if !validID(p.ID) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET name = $3, description = $4, price = $5, image_url = $6, unit = $7, updated_at = $8
		WHERE id = $1 AND association_id = $2`,
		p.ID, p.AssociationID, p.Name, p.Description, p.Price, p.ImageURL, p.Unit, p.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el producto. transactions.product_id no cae en cascada: con movimientos falla con 23503.
func (r *ProductRepo) Delete(ctx context.Context, associationID, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1 AND association_id = $2`, id, associationID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista los productos de la asociación ordenados por nombre, con filtros opcionales.
func (r *ProductRepo) List(ctx context.Context, associationID string, filter repository.ProductFilter) ([]*entity.ProductWithCategory, error) {
	b := psql.Select(productWithCategoryColumns...).
		From("products p").
		LeftJoin("categories c ON c.id = p.category_id").
		Where(sq.Eq{"p.association_id": associationID}).
		OrderBy("p.name", "p.id")
	if filter.CategoryID != "" {
		if !validID(filter.CategoryID) {
			return nil, nil
		}
		b = b.Where(sq.Eq{"p.category_id": filter.CategoryID})
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		b = b.Where(sq.ILike{"p.name": "%" + escapeLike(s) + "%"})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list products: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductWithCategory
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// IncrementQuantity suma qty al stock y devuelve la cantidad resultante.
func (r *ProductRepo) IncrementQuantity(ctx context.Context, associationID, id string, qty int64) (int64, error) {
	if !validID(id) {
		return 0, domain.ErrNotFound
	}
	var q int64
	err := r.q.QueryRow(ctx, `
		UPDATE products SET quantity = quantity + $3, updated_at = now()
		WHERE id = $1 AND association_id = $2
		RETURNING quantity`,
		id, associationID, qty,
	).Scan(&q)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("increment quantity: %w", err)
	}
	return q, nil
}

// DecrementQuantity resta qty solo si quantity >= qty. Si no actualiza ninguna fila distingue
// entre producto inexistente y stock insuficiente.
func (r *ProductRepo) DecrementQuantity(ctx context.Context, associationID, id string, qty int64) (int64, error) {
	if !validID(id) {
		return 0, domain.ErrNotFound
	}
	var q int64
	err := r.q.QueryRow(ctx, `
		UPDATE products SET quantity = quantity - $3, updated_at = now()
		WHERE id = $1 AND association_id = $2 AND quantity >= $3
		RETURNING quantity`,
		id, associationID, qty,
	).Scan(&q)
	if err == nil {
		return q, nil
	}
	if isCheckViolation(err) {
		return 0, domain.ErrInsufficientStock
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("decrement quantity: %w", err)
	}

	var exists bool
	if err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1 AND association_id = $2)`,
		id, associationID,
	).Scan(&exists); err != nil {
		return 0, fmt.Errorf("check product: %w", err)
	}
	if !exists {
		return 0, domain.ErrNotFound
	}
	return 0, domain.ErrInsufficientStock
}

// escapeLike escapa los comodines de LIKE para que la búsqueda sea por subcadena literal.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
