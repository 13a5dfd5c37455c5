package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/jhoicas/Inventario-asociaciones/internal/application/dto"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/tenant"
	"github.com/jhoicas/Inventario-asociaciones/pkg/logger"
)

// ImageStore almacenamiento de imágenes de producto (implementado en infrastructure/storage).
type ImageStore interface {
	Store(ctx context.Context, filename string, r io.Reader) (publicPath string, err error)
	Remove(ctx context.Context, publicPath string) error
}

// ProductUploadUseCase crea un producto junto con su imagen.
type ProductUploadUseCase struct {
	products *ProductUseCase
	store    ImageStore
	log      *logger.Logger
}

// NewProductUploadUseCase construye el caso de uso.
func NewProductUploadUseCase(products *ProductUseCase, store ImageStore, log *logger.Logger) *ProductUploadUseCase {
	return &ProductUploadUseCase{products: products, store: store, log: log.Component("product_upload")}
}

// CreateWithImage guarda la imagen, crea el producto con imageUrl = ruta pública y,
// si la creación falla, borra la imagen recién guardada.
func (uc *ProductUploadUseCase) CreateWithImage(
	ctx context.Context,
	scope tenant.Scope,
	in dto.CreateProductRequest,
	filename string,
	image io.Reader,
) (*dto.ProductResponse, error) {
	publicPath, err := uc.store.Store(ctx, filename, image)
	if err != nil {
		return nil, fmt.Errorf("guardar imagen: %w", err)
	}
	in.ImageURL = publicPath

	p, err := uc.products.Create(ctx, scope, in)
	if err != nil {
		if rmErr := uc.store.Remove(ctx, publicPath); rmErr != nil {
			uc.log.Warn().Err(rmErr).Str("path", publicPath).Msg("no se pudo borrar la imagen huérfana")
		}
		return nil, err
	}
	uc.log.Info().Str("product_id", p.ID).Str("image", publicPath).Msg("producto creado con imagen")
	return p, nil
}
