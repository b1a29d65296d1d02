package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// InsufficientStockResponse cuerpo del 409 por stock insuficiente.
type InsufficientStockResponse struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Required    int    `json:"required"`
	Available   int    `json:"available"`
}

// LineItemRequest línea común a solicitudes de compra y órdenes de venta.
type LineItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}
