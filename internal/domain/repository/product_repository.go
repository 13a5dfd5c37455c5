package repository

import (
	"context"

	"github.com/jhoicas/Inventario-asociaciones/internal/domain/entity"
)

// ProductFilter filtros opcionales del listado de productos.
type ProductFilter struct {
	CategoryID string
	Search     string // subcadena del nombre, sin distinguir mayúsculas
}

// ProductRepository define el puerto de persistencia para Product (usable con pool o tx).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByID devuelve (nil, nil) si el producto no existe en la asociación.
	GetByID(ctx context.Context, associationID, id string) (*entity.ProductWithCategory, error)
	// Update modifica los datos de catálogo; nunca la cantidad. domain.ErrNotFound si no es de la asociación.
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, associationID, id string) error
	List(ctx context.Context, associationID string, filter ProductFilter) ([]*entity.ProductWithCategory, error)

	// IncrementQuantity suma qty al stock y devuelve la cantidad resultante.
	IncrementQuantity(ctx context.Context, associationID, id string, qty int64) (int64, error)
	// DecrementQuantity resta qty solo si hay stock suficiente (decremento condicional).
	// Devuelve domain.ErrInsufficientStock si la resta dejaría el stock negativo
	// y domain.ErrNotFound si el producto no existe en la asociación.
	DecrementQuantity(ctx context.Context, associationID, id string, qty int64) (int64, error)
}
