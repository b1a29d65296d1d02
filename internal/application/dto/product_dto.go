package dto

import (
	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Status y Type toman valores por defecto si vienen vacíos.
type CreateProductRequest struct {
	SKU      string          `json:"sku" validate:"required,max=100"`
	Name     string          `json:"name" validate:"required,max=200"`
	Category string          `json:"category" validate:"max=100"`
	Price    decimal.Decimal `json:"price"`
	Cost     decimal.Decimal `json:"cost"`
	Stock    int             `json:"stock" validate:"gte=0"`
	Status   string          `json:"status" validate:"omitempty,oneof=Active Inactive"`
	Type     string          `json:"type" validate:"omitempty,oneof='Raw Material' 'Finished Good'"`
}

// UpdateProductRequest entrada para actualizar un producto (sin SKU ni Stock).
type UpdateProductRequest struct {
	Name     *string          `json:"name" validate:"omitempty,max=200"`
	Category *string          `json:"category" validate:"omitempty,max=100"`
	Price    *decimal.Decimal `json:"price"`
	Cost     *decimal.Decimal `json:"cost"`
	Status   *string          `json:"status" validate:"omitempty,oneof=Active Inactive"`
	Type     *string          `json:"type" validate:"omitempty,oneof='Raw Material' 'Finished Good'"`
}

// ProductFilter filtros de GET /api/products.
type ProductFilter struct {
	Search string `query:"search"`
}
