package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus estado de catálogo del producto.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "Active"
	ProductStatusInactive ProductStatus = "Inactive"
)

// Valid indica si el estado pertenece al conjunto cerrado.
func (s ProductStatus) Valid() bool {
	return s == ProductStatusActive || s == ProductStatusInactive
}

// ProductType es informativo: materia prima o producto terminado.
type ProductType string

const (
	ProductTypeRawMaterial  ProductType = "Raw Material"
	ProductTypeFinishedGood ProductType = "Finished Good"
)

func (t ProductType) Valid() bool {
	return t == ProductTypeRawMaterial || t == ProductTypeFinishedGood
}

// Product representa un producto del catálogo con su existencia (stock) global.
// Stock nunca puede quedar negativo; sólo cambia vía ajustes o efectos de los flujos.
type Product struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"` // código único
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"` // precio de venta
	Cost      decimal.Decimal `json:"cost"`  // costo unitario
	Stock     int             `json:"stock"`
	Status    ProductStatus   `json:"status"`
	Type      ProductType     `json:"type"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// StockValue valor del inventario a costo (Stock * Cost).
func (p *Product) StockValue() decimal.Decimal {
	return p.Cost.Mul(decimal.NewFromInt(int64(p.Stock)))
}
