package dto

// CreatePRRequest entrada para crear una solicitud de compra.
type CreatePRRequest struct {
	Requester string            `json:"requester" validate:"required,max=200"`
	Items     []LineItemRequest `json:"items" validate:"required,min=1,dive"`
}

// GeneratePORequest body para convertir una PR aprobada en orden de compra.
type GeneratePORequest struct {
	Supplier string `json:"supplier" validate:"required,max=200"`
}
