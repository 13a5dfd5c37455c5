package repository

import (
	"context"

	"github.com/jhoicas/Inventario-asociaciones/internal/domain/entity"
)

// AssociationRepository define el puerto de persistencia para Association (tenant).
type AssociationRepository interface {
	// GetByEmail devuelve (nil, nil) si no existe ninguna asociación con ese email.
	GetByEmail(ctx context.Context, email string) (*entity.Association, error)
	// CreateIfAbsent inserta la asociación si el email no existe; created=false si ya existía.
	CreateIfAbsent(ctx context.Context, association *entity.Association) (created bool, err error)
}
