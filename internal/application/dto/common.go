package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ResultResponse respuesta {success, message} usada por la subida de productos y las salidas de stock.
type ResultResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
