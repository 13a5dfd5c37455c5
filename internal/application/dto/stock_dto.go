package dto

// ReplenishRequest body para POST /api/stock/replenish.
type ReplenishRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// OrderItem línea de una salida de stock.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// DeductRequest body para POST /api/stock/deduct.
type DeductRequest struct {
	Items []OrderItem `json:"items"`
}

// Motivos de rechazo de una salida.
const (
	DeductReasonNotFound          = "not_found"
	DeductReasonInvalidQuantity   = "invalid_quantity"
	DeductReasonInsufficientStock = "insufficient_stock"
	DeductReasonNoAssociation     = "no_association"
	DeductReasonEmptyOrder        = "empty_order"
	DeductReasonInternal          = "internal"
)

// DeductFailure detalle estructurado del producto que impidió la salida.
type DeductFailure struct {
	ProductID   string `json:"product_id,omitempty"`
	ProductName string `json:"product_name,omitempty"`
	Reason      string `json:"reason"`
	Requested   int64  `json:"requested,omitempty"`
	Available   int64  `json:"available,omitempty"`
}

// DeductResult resultado de una salida de stock: {success, message} más el detalle del rechazo.
type DeductResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Failure *DeductFailure `json:"failure,omitempty"`
}

// ReplenishResponse resultado de una reposición aplicada.
type ReplenishResponse struct {
	ProductID     string `json:"product_id"`
	Quantity      int64  `json:"quantity"` // cantidad resultante
	TransactionID string `json:"transaction_id"`
}
