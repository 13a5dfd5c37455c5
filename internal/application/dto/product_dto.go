package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. La cantidad inicia en 0;
// el stock se carga con una reposición.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	CategoryID  string          `json:"categoryId" validate:"required"`
	Unit        string          `json:"unit"`
	ImageURL    string          `json:"imageUrl"`
}

// UpdateProductRequest entrada para actualizar un producto (sin cantidad ni categoría).
type UpdateProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	ImageURL    string          `json:"imageUrl"`
	Unit        string          `json:"unit"`
}

// ProductResponse salida de un producto con el nombre de su categoría.
type ProductResponse struct {
	ID            string          `json:"id"`
	AssociationID string          `json:"association_id"`
	CategoryID    string          `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int64           `json:"quantity"`
	ImageURL      string          `json:"image_url"`
	Unit          string          `json:"unit"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
