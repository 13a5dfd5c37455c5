package repository

import (
	"context"

	"github.com/jhoicas/Inventario-asociaciones/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category.
// Todas las operaciones filtran por associationID.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	// GetByID devuelve (nil, nil) si la categoría no existe en la asociación.
	GetByID(ctx context.Context, associationID, id string) (*entity.Category, error)
	// Update devuelve domain.ErrNotFound si la fila no existe o es de otra asociación.
	Update(ctx context.Context, category *entity.Category) error
	// Delete devuelve domain.ErrNotFound si no existe y domain.ErrConflict si aún tiene productos.
	Delete(ctx context.Context, associationID, id string) error
	ListByAssociation(ctx context.Context, associationID string) ([]*entity.Category, error)
}
