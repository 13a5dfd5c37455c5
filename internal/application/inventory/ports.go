package inventory

import (
	"context"

	"github.com/jhoicas/Inventario-asociaciones/internal/domain/entity"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. Garantiza que el cambio de cantidad y
// la fila del libro se confirmen juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
	) error) error
}

// MovementPublisher notifica a otros sistemas los movimientos ya confirmados.
// Se invoca después del Commit; un fallo aquí no revierte nada.
type MovementPublisher interface {
	Publish(ctx context.Context, movements []entity.Transaction) error
}

// NopPublisher descarta los movimientos (publicación deshabilitada).
type NopPublisher struct{}

// Publish no hace nada.
func (NopPublisher) Publish(context.Context, []entity.Transaction) error { return nil }
