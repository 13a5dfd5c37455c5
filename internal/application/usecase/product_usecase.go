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
	"github.com/shopspring/decimal"
)

// ProductUseCase casos de uso CRUD para productos. La cantidad se maneja solo vía el libro de stock.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create crea un producto con cantidad 0. Requiere nombre, precio > 0 y una categoría de la misma asociación.
func (uc *ProductUseCase) Create(ctx context.Context, scope tenant.Scope, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.CategoryID == "" || !in.Price.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if !scope.Resolved() {
		return nil, domain.ErrAssociationNotFound
	}
	category, err := uc.categoryRepo.GetByID(ctx, scope.AssociationID, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	p := &entity.Product{
		ID:            uuid.New().String(),
		AssociationID: scope.AssociationID,
		CategoryID:    category.ID,
		Name:          name,
		Description:   in.Description,
		Price:         in.Price,
		Quantity:      0,
		ImageURL:      in.ImageURL,
		Unit:          in.Unit,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(&entity.ProductWithCategory{Product: *p, CategoryName: category.Name}), nil
}

// GetByID obtiene un producto de la asociación. (nil, nil) si no existe o el scope no está resuelto.
func (uc *ProductUseCase) GetByID(ctx context.Context, scope tenant.Scope, id string) (*dto.ProductResponse, error) {
	if id == "" || !scope.Resolved() {
		return nil, nil
	}
	p, err := uc.repo.GetByID(ctx, scope.AssociationID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return toProductResponse(p), nil
}

// Update actualiza los datos de catálogo del producto. No modifica la cantidad ni la categoría.
func (uc *ProductUseCase) Update(ctx context.Context, scope tenant.Scope, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if id == "" || name == "" || !in.Price.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if !scope.Resolved() {
		return nil, domain.ErrAssociationNotFound
	}
	current, err := uc.repo.GetByID(ctx, scope.AssociationID, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	current.Name = name
	current.Description = in.Description
	current.Price = in.Price
	current.ImageURL = in.ImageURL
	if in.Unit != "" {
		current.Unit = in.Unit
	}
	current.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, &current.Product); err != nil {
		return nil, err
	}
	return toProductResponse(current), nil
}

// Delete elimina un producto de la asociación. Con movimientos en el libro: domain.ErrConflict.
func (uc *ProductUseCase) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	if !scope.Resolved() {
		return domain.ErrAssociationNotFound
	}
	return uc.repo.Delete(ctx, scope.AssociationID, id)
}

// List lista los productos de la asociación con el nombre de su categoría; vacío si no hay asociación.
func (uc *ProductUseCase) List(ctx context.Context, scope tenant.Scope, filter repository.ProductFilter) ([]dto.ProductResponse, error) {
	items := []dto.ProductResponse{}
	if !scope.Resolved() {
		return items, nil
	}
	list, err := uc.repo.List(ctx, scope.AssociationID, filter)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

func toProductResponse(p *entity.ProductWithCategory) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		AssociationID: p.AssociationID,
		CategoryID:    p.CategoryID,
		CategoryName:  p.CategoryName,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Quantity:      p.Quantity,
		ImageURL:      p.ImageURL,
		Unit:          p.Unit,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToProductResponse expone el mapeo para otros casos de uso (dashboard).
func ToProductResponse(p *entity.ProductWithCategory) *dto.ProductResponse {
	return toProductResponse(p)
}
