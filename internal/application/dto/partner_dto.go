package dto

// CreatePartnerRequest entrada para registrar un cliente o proveedor.
type CreatePartnerRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Type    string `json:"type" validate:"required,oneof=Customer Supplier"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"max=50"`
	Address string `json:"address" validate:"max=300"`
}

// PartnerFilter filtros de GET /api/partners.
type PartnerFilter struct {
	Type string `query:"type" validate:"omitempty,oneof=Customer Supplier"`
}
