package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-asociaciones/internal/application/dto"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/entity"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/repository"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/tenant"
	"github.com/jhoicas/Inventario-asociaciones/pkg/logger"
)

// AssociationUseCase resuelve la identidad externa (email) a la asociación interna,
// creándola la primera vez que se ve el email.
type AssociationUseCase struct {
	repo repository.AssociationRepository
	log  *logger.Logger
}

// NewAssociationUseCase construye el caso de uso.
func NewAssociationUseCase(repo repository.AssociationRepository, log *logger.Logger) *AssociationUseCase {
	return &AssociationUseCase{repo: repo, log: log.Component("association")}
}

// Ensure crea la asociación si no existe ninguna para el email; si existe no hace nada.
// Devuelve la asociación vigente. Email o nombre vacíos: domain.ErrInvalidInput sin efecto.
func (uc *AssociationUseCase) Ensure(ctx context.Context, email, name string) (*dto.AssociationResponse, error) {
	email = tenant.NormalizeEmail(email)
	if email == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	a := &entity.Association{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		CreatedAt: time.Now(),
	}
	created, err := uc.repo.CreateIfAbsent(ctx, a)
	if err != nil {
		uc.log.Error().Err(err).Str("email", email).Msg("crear asociación")
		return nil, fmt.Errorf("asegurar asociación: %w", err)
	}
	if created {
		uc.log.Info().Str("association_id", a.ID).Str("email", email).Msg("asociación creada")
		return toAssociationResponse(a), nil
	}
	existing, err := uc.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	return existing, nil
}

// Get busca la asociación por email. domain.ErrAssociationNotFound si no existe;
// cualquier otro error es de infraestructura y se registra en el log.
func (uc *AssociationUseCase) Get(ctx context.Context, email string) (*dto.AssociationResponse, error) {
	email = tenant.NormalizeEmail(email)
	if email == "" {
		return nil, domain.ErrAssociationNotFound
	}
	a, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		uc.log.Error().Err(err).Str("email", email).Msg("buscar asociación")
		return nil, fmt.Errorf("buscar asociación: %w", err)
	}
	if a == nil {
		return nil, domain.ErrAssociationNotFound
	}
	return toAssociationResponse(a), nil
}

// ResolveScope construye el contexto de tenant para el email. Si no hay asociación devuelve
// un scope sin resolver (lecturas vacías) y error nil; solo los fallos de almacenamiento son error.
func (uc *AssociationUseCase) ResolveScope(ctx context.Context, email string) (tenant.Scope, error) {
	a, err := uc.Get(ctx, email)
	if errors.Is(err, domain.ErrAssociationNotFound) {
		return tenant.Unresolved(email), nil
	}
	if err != nil {
		return tenant.Unresolved(email), err
	}
	return tenant.Scope{AssociationID: a.ID, Email: a.Email}, nil
}

func toAssociationResponse(a *entity.Association) *dto.AssociationResponse {
	return &dto.AssociationResponse{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
	}
}
