package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de una asociación.
// Quantity solo cambia vía el libro de transacciones (Replenish/Deduct), nunca por el CRUD.
type Product struct {
	ID            string
	AssociationID string
	CategoryID    string
	Name          string
	Description   string
	Price         decimal.Decimal
	Quantity      int64
	ImageURL      string
	Unit          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductWithCategory producto con el nombre de su categoría (lecturas del catálogo y dashboard).
type ProductWithCategory struct {
	Product
	CategoryName string
}
