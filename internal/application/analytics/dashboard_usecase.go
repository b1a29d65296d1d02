// Package analytics contiene los indicadores del tablero principal.
package analytics

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/uow"
	"github.com/jhoicas/erp-core/internal/domain/entity"
)

// DashboardUseCase genera el resumen del tablero.
//
// Fuente de datos: las colecciones del store, sólo lectura.
type DashboardUseCase struct {
	tx                *uow.TxRunner
	lowStockThreshold int
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(tx *uow.TxRunner, lowStockThreshold int) *DashboardUseCase {
	return &DashboardUseCase{tx: tx, lowStockThreshold: lowStockThreshold}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Las tres colecciones se leen dentro de un mismo View (una sola foto del store);
// después se calculan en paralelo:
//  1. productos     → valor del inventario, stock bajo, distribución por categoría
//  2. órdenes venta → ingresos y órdenes abiertas
//  3. solicitudes   → PRs pendientes de aprobación
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	var (
		products []*entity.Product
		orders   []*entity.SalesOrder
		prs      []*entity.PurchaseRequest
	)
	err := uc.tx.View(ctx, func(tx *uow.Tx) error {
		var err error
		if products, err = tx.Products(); err != nil {
			return err
		}
		if orders, err = tx.SalesOrders(); err != nil {
			return err
		}
		prs, err = tx.PurchaseRequests()
		return err
	})
	if err != nil {
		return nil, err
	}

	out := &dto.DashboardSummaryDTO{LowStockThreshold: uc.lowStockThreshold}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		value := decimal.Zero
		low := 0
		byCategory := make(map[string]int)
		for _, p := range products {
			value = value.Add(p.StockValue())
			if p.Stock < uc.lowStockThreshold {
				low++
			}
			byCategory[p.Category]++
		}
		out.TotalStockValue = value
		out.LowStockCount = low
		out.ProductCount = len(products)
		out.Categories = categoryStats(byCategory)
		return gctx.Err()
	})

	g.Go(func() error {
		revenue := decimal.Zero
		open := 0
		for _, so := range orders {
			revenue = revenue.Add(so.TotalAmount)
			if so.Status != entity.SalesStatusCompleted {
				open++
			}
		}
		out.TotalRevenue = revenue
		out.OpenSalesOrders = open
		return gctx.Err()
	})

	g.Go(func() error {
		pending := 0
		for _, pr := range prs {
			if pr.Status == entity.PRStatusPending {
				pending++
			}
		}
		out.PendingPRs = pending
		return gctx.Err()
	})

	// Cada goroutine escribe campos distintos de out.
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// categoryStats ordena por cantidad descendente y luego por nombre.
func categoryStats(byCategory map[string]int) []dto.CategoryStat {
	stats := make([]dto.CategoryStat, 0, len(byCategory))
	for name, n := range byCategory {
		stats = append(stats, dto.CategoryStat{Category: name, Count: n})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Category < stats[j].Category
	})
	return stats
}
