package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/uow"
	"github.com/jhoicas/erp-core/internal/domain/entity"
)

// ReplenishmentUseCase genera la lista de reposición: productos activos bajo el umbral de stock,
// con la cantidad sugerida y una prioridad basada en margen y volumen vendido.
type ReplenishmentUseCase struct {
	tx        *uow.TxRunner
	threshold int
}

// NewReplenishmentUseCase construye el caso de uso con el umbral de stock bajo.
func NewReplenishmentUseCase(tx *uow.TxRunner, lowStockThreshold int) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{tx: tx, threshold: lowStockThreshold}
}

// Suggestions devuelve las sugerencias ordenadas por prioridad (1 = más urgente).
func (uc *ReplenishmentUseCase) Suggestions(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	out := make([]dto.ReplenishmentSuggestionDTO, 0)
	err := uc.tx.View(ctx, func(tx *uow.Tx) error {
		products, err := tx.Products()
		if err != nil {
			return err
		}
		orders, err := tx.SalesOrders()
		if err != nil {
			return err
		}

		// Unidades comprometidas en órdenes de venta por producto
		unitsSold := make(map[string]int)
		for _, so := range orders {
			for _, it := range so.Items {
				unitsSold[it.ProductID] += it.Quantity
			}
		}

		hundred := decimal.NewFromInt(100)
		ideal := uc.threshold + uc.threshold/2
		for _, p := range products {
			if p.Status != entity.ProductStatusActive || p.Stock >= uc.threshold {
				continue
			}
			suggested := ideal - p.Stock
			if suggested < 0 {
				suggested = 0
			}
			var margin decimal.Decimal
			if p.Price.IsPositive() {
				margin = p.Price.Sub(p.Cost).Div(p.Price).Mul(hundred).Round(2)
			}
			out = append(out, dto.ReplenishmentSuggestionDTO{
				ProductID:          p.ID,
				SKU:                p.SKU,
				ProductName:        p.Name,
				CurrentStock:       p.Stock,
				Threshold:          uc.threshold,
				IdealStock:         ideal,
				SuggestedOrderQty:  suggested,
				UnitCost:           p.Cost,
				EstimatedOrderCost: p.Cost.Mul(decimal.NewFromInt(int64(suggested))),
				GrossMarginPct:     margin,
				UnitsSold:          unitsSold[p.ID],
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Mayor margen primero, luego mayor volumen vendido, finalmente mayor déficit.
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.GrossMarginPct.Equal(b.GrossMarginPct) {
			return a.GrossMarginPct.GreaterThan(b.GrossMarginPct)
		}
		if a.UnitsSold != b.UnitsSold {
			return a.UnitsSold > b.UnitsSold
		}
		return a.Threshold-a.CurrentStock > b.Threshold-b.CurrentStock
	})
	for i := range out {
		out[i].Priority = i + 1
	}
	return out, nil
}
