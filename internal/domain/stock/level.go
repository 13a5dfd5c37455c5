// Package stock contiene la política de niveles de stock usada por el dashboard.
package stock

// LowStockThreshold cantidad máxima (inclusive) con la que un producto con stock se considera bajo.
const LowStockThreshold int64 = 5

// Level clasificación de un producto según su cantidad disponible.
type Level string

const (
	LevelInStock    Level = "in_stock"     // cantidad > 5
	LevelLowStock   Level = "low_stock"    // 0 < cantidad <= 5
	LevelOutOfStock Level = "out_of_stock" // cantidad == 0
)

// Classify devuelve el nivel de una cantidad. Las cantidades negativas no deberían existir
// (CHECK en la BD); si aparecen se tratan como agotado.
func Classify(quantity int64) Level {
	switch {
	case quantity > LowStockThreshold:
		return LevelInStock
	case quantity > 0:
		return LevelLowStock
	default:
		return LevelOutOfStock
	}
}

// IsCritical informa si el producto debe aparecer en la lista de críticos (bajo o agotado).
func IsCritical(quantity int64) bool {
	return Classify(quantity) != LevelInStock
}
