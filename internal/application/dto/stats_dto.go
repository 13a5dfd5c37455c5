package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductOverviewDTO respuesta de GET /api/stats/overview.
type ProductOverviewDTO struct {
	TotalProducts     int64           `json:"total_products"`
	TotalCategories   int64           `json:"total_categories"` // categorías en uso por algún producto
	TotalTransactions int64           `json:"total_transactions"`
	StockValue        decimal.Decimal `json:"stock_value"` // Σ precio × cantidad
}

// CategoryDistributionDTO número de productos por categoría (gráfico del dashboard).
type CategoryDistributionDTO struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// StockSummaryDTO respuesta de GET /api/stats/stock-summary.
// InStock + LowStock + OutOfStock = total de productos.
type StockSummaryDTO struct {
	InStockCount     int64             `json:"in_stock_count"`
	LowStockCount    int64             `json:"low_stock_count"`
	OutOfStockCount  int64             `json:"out_of_stock_count"`
	CriticalProducts []ProductResponse `json:"critical_products"` // bajos primero, luego agotados
}

// TransactionDTO transacción con los datos actuales del producto.
type TransactionDTO struct {
	ID           string          `json:"id"`
	Type         string          `json:"type"`
	Quantity     int64           `json:"quantity"`
	ProductID    string          `json:"product_id"`
	CreatedAt    time.Time       `json:"created_at"`
	ProductName  string          `json:"product_name"`
	CategoryName string          `json:"category_name"`
	ImageURL     string          `json:"image_url"`
	Price        decimal.Decimal `json:"price"`
	Unit         string          `json:"unit"`
}
