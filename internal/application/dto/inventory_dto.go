package dto

import "github.com/shopspring/decimal"

// AdjustStockRequest body para POST /api/products/:id/adjust. Delta puede ser negativo.
type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"ne=0"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un producto bajo el umbral de stock.
type ReplenishmentSuggestionDTO struct {
	ProductID          string          `json:"productId"`
	SKU                string          `json:"sku"`
	ProductName        string          `json:"productName"`
	CurrentStock       int             `json:"currentStock"`
	Threshold          int             `json:"threshold"`
	IdealStock         int             `json:"idealStock"`        // umbral * 1.5
	SuggestedOrderQty  int             `json:"suggestedOrderQty"` // IdealStock - CurrentStock
	UnitCost           decimal.Decimal `json:"unitCost"`
	EstimatedOrderCost decimal.Decimal `json:"estimatedOrderCost"`
	GrossMarginPct     decimal.Decimal `json:"grossMarginPct"`
	UnitsSold          int             `json:"unitsSold"` // unidades en órdenes de venta registradas
	Priority           int             `json:"priority"`  // 1 = más urgente
}
