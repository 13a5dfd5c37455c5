package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/entity"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/repository"
)

var _ repository.AssociationRepository = (*AssociationRepo)(nil)

// AssociationRepo implementación del puerto AssociationRepository sobre PostgreSQL.
type AssociationRepo struct {
	q Querier
}

// NewAssociationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssociationRepository(q Querier) *AssociationRepo {
	return &AssociationRepo{q: q}
}

// GetByEmail obtiene la asociación del email; (nil, nil) si no existe.
func (r *AssociationRepo) GetByEmail(ctx context.Context, email string) (*entity.Association, error) {
	var a entity.Association
	err := r.q.QueryRow(ctx,
		`SELECT id, email, name, created_at FROM associations WHERE email = $1`, email,
	).Scan(&a.ID, &a.Email, &a.Name, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get association: %w", err)
	}
	return &a, nil
}

// CreateIfAbsent inserta la asociación; si el email ya existe no hace nada (created=false).
func (r *AssociationRepo) CreateIfAbsent(ctx context.Context, a *entity.Association) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		INSERT INTO associations (id, email, name, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING`,
		a.ID, a.Email, a.Name, a.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert association: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}
