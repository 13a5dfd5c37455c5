package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-asociaciones/internal/application/dto"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/entity"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/repository"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/tenant"
)

// CategoryUseCase casos de uso CRUD para categorías de una asociación.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría en la asociación del scope.
func (uc *CategoryUseCase) Create(ctx context.Context, scope tenant.Scope, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !scope.Resolved() {
		return nil, domain.ErrAssociationNotFound
	}
	now := time.Now()
	c := &entity.Category{
		ID:            uuid.New().String(),
		AssociationID: scope.AssociationID,
		Name:          name,
		Description:   in.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// Update cambia nombre y descripción. La categoría debe pertenecer a la asociación del scope.
func (uc *CategoryUseCase) Update(ctx context.Context, scope tenant.Scope, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if id == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !scope.Resolved() {
		return nil, domain.ErrAssociationNotFound
	}
	c, err := uc.repo.GetByID(ctx, scope.AssociationID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	c.Name = name
	c.Description = in.Description
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// Delete elimina la categoría si pertenece a la asociación. domain.ErrConflict si aún tiene productos.
func (uc *CategoryUseCase) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	if !scope.Resolved() {
		return domain.ErrAssociationNotFound
	}
	return uc.repo.Delete(ctx, scope.AssociationID, id)
}

// List devuelve las categorías de la asociación; vacío si el scope no está resuelto.
func (uc *CategoryUseCase) List(ctx context.Context, scope tenant.Scope) ([]dto.CategoryResponse, error) {
	items := []dto.CategoryResponse{}
	if !scope.Resolved() {
		return items, nil
	}
	list, err := uc.repo.ListByAssociation(ctx, scope.AssociationID)
	if err != nil {
		return nil, err
	}
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return items, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:            c.ID,
		AssociationID: c.AssociationID,
		Name:          c.Name,
		Description:   c.Description,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
