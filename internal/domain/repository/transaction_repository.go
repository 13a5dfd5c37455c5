package repository

import (
	"context"

	"github.com/jhoicas/Inventario-asociaciones/internal/domain/entity"
)

// TransactionFilter filtros del listado de transacciones. Limit <= 0 = sin límite.
type TransactionFilter struct {
	Type      string
	ProductID string
	Limit     int
}

// TransactionRepository define el puerto del libro de transacciones (solo inserción y lectura).
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	// List devuelve las transacciones más recientes primero, enriquecidas con producto y categoría.
	List(ctx context.Context, associationID string, filter TransactionFilter) ([]*entity.TransactionDetail, error)
}
