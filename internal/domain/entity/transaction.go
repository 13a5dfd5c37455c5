package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de stock.
const (
	TransactionTypeIN  = "IN"  // reposición
	TransactionTypeOUT = "OUT" // salida
)

// Transaction entrada inmutable del libro de stock. Quantity siempre es positiva;
// la dirección la indica Type.
type Transaction struct {
	ID            string
	AssociationID string
	ProductID     string
	Type          string
	Quantity      int64
	CreatedAt     time.Time
}

// ValidTransactionType informa si t es IN u OUT.
func ValidTransactionType(t string) bool {
	return t == TransactionTypeIN || t == TransactionTypeOUT
}

// TransactionDetail transacción enriquecida con los datos actuales del producto y su categoría
// (no los del momento de la transacción).
type TransactionDetail struct {
	Transaction
	ProductName  string
	CategoryName string
	ImageURL     string
	Price        decimal.Decimal
	Unit         string
}
