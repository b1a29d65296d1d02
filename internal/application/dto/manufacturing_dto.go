package dto

// BOMComponentRequest componente de una lista de materiales.
type BOMComponentRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// CreateBOMRequest entrada para registrar una receta de fabricación.
type CreateBOMRequest struct {
	Name       string                `json:"name" validate:"required,max=200"`
	ProductID  string                `json:"productId" validate:"required"`
	Components []BOMComponentRequest `json:"components" validate:"required,min=1,dive"`
}

// CreateProductionOrderRequest entrada para planificar una orden de producción.
type CreateProductionOrderRequest struct {
	BOMID    string `json:"bomId" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}
