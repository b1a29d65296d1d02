// Package procurement implementa el flujo de compras: solicitud, aprobación, orden de compra y recepción.
package procurement

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/uow"
	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/domain/inventory"
)

// ProcurementUseCase orquesta PR -> aprobación -> PO -> recepción de mercancía.
type ProcurementUseCase struct {
	tx  *uow.TxRunner
	log zerolog.Logger
}

// NewProcurementUseCase construye el caso de uso.
func NewProcurementUseCase(tx *uow.TxRunner, log zerolog.Logger) *ProcurementUseCase {
	return &ProcurementUseCase{tx: tx, log: log}
}

// CreatePR crea una solicitud Pending con nombre y costo de cada producto congelados.
func (uc *ProcurementUseCase) CreatePR(ctx context.Context, in dto.CreatePRRequest) (*entity.PurchaseRequest, error) {
	requester := strings.TrimSpace(in.Requester)
	if requester == "" {
		return nil, domain.Validationf("el solicitante es obligatorio")
	}
	if len(in.Items) == 0 {
		return nil, domain.Validationf("la solicitud debe tener al menos una línea")
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, domain.Validationf("cantidad inválida para %s: %d", it.ProductID, it.Quantity)
		}
	}

	var created *entity.PurchaseRequest
	err := uc.tx.Run(ctx, func(tx *uow.Tx) error {
		products, err := tx.Products()
		if err != nil {
			return err
		}
		prs, err := tx.PurchaseRequests()
		if err != nil {
			return err
		}
		plan := inventory.NewStockPlan(products)
		items := make([]entity.PRItem, 0, len(in.Items))
		for _, it := range in.Items {
			p := plan.Product(it.ProductID)
			if p == nil {
				return domain.NotFoundf("producto %s", it.ProductID)
			}
			items = append(items, entity.PRItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    it.Quantity,
				Cost:        p.Cost,
			})
		}
		created = &entity.PurchaseRequest{
			ID:        tx.NewID(uow.PrefixPurchaseRequest),
			Requester: requester,
			Date:      tx.Now(),
			Items:     items,
			TotalCost: entity.SumPRItems(items),
			Status:    entity.PRStatusPending,
		}
		return tx.PutPurchaseRequests(append([]*entity.PurchaseRequest{created}, prs...))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("pr_id", created.ID).Str("total_cost", created.TotalCost.String()).Msg("solicitud de compra creada")
	return created, nil
}

// ApprovePR pasa Pending -> Approved. Aprobar una PR ya aprobada no hace nada.
func (uc *ProcurementUseCase) ApprovePR(ctx context.Context, id string) (*entity.PurchaseRequest, error) {
	return uc.transitionPR(ctx, id, entity.PRStatusApproved)
}

// RejectPR pasa Pending -> Rejected. Rechazar una PR ya rechazada no hace nada.
func (uc *ProcurementUseCase) RejectPR(ctx context.Context, id string) (*entity.PurchaseRequest, error) {
	return uc.transitionPR(ctx, id, entity.PRStatusRejected)
}

func (uc *ProcurementUseCase) transitionPR(ctx context.Context, id string, next entity.PRStatus) (*entity.PurchaseRequest, error) {
	var pr *entity.PurchaseRequest
	changed := false
	err := uc.tx.Run(ctx, func(tx *uow.Tx) error {
		changed = false
		prs, err := tx.PurchaseRequests()
		if err != nil {
			return err
		}
		pr = findPR(prs, id)
		if pr == nil {
			return domain.NotFoundf("solicitud de compra %s", id)
		}
		if pr.Status == next {
			return nil
		}
		if !pr.Status.CanTransitionTo(next) {
			return domain.InvalidTransitionf("solicitud %s: %s -> %s", id, pr.Status, next)
		}
		pr.Status = next
		changed = true
		return tx.PutPurchaseRequests(prs)
	})
	if err != nil {
		return nil, err
	}
	if changed {
		uc.log.Info().Str("pr_id", id).Str("status", string(next)).Msg("solicitud de compra actualizada")
	}
	return pr, nil
}

// GeneratePO convierte una PR Approved en una orden de compra Sent con el mismo totalCost.
// La PR queda ConvertedToPO con el ID de la orden; ambas colecciones se escriben juntas.
func (uc *ProcurementUseCase) GeneratePO(ctx context.Context, prID string, in dto.GeneratePORequest) (*entity.PurchaseOrder, error) {
	supplier := strings.TrimSpace(in.Supplier)
	if supplier == "" {
		return nil, domain.Validationf("el proveedor es obligatorio")
	}

	var po *entity.PurchaseOrder
	err := uc.tx.Run(ctx, func(tx *uow.Tx) error {
		prs, err := tx.PurchaseRequests()
		if err != nil {
			return err
		}
		pr := findPR(prs, prID)
		if pr == nil {
			return domain.NotFoundf("solicitud de compra %s", prID)
		}
		if pr.Status == entity.PRStatusConvertedToPO {
			return domain.AlreadyProcessedf("la solicitud %s ya generó la orden %s", prID, pr.POID)
		}
		if !pr.Status.CanTransitionTo(entity.PRStatusConvertedToPO) {
			return domain.InvalidTransitionf("solicitud %s en estado %s; debe estar Approved", prID, pr.Status)
		}
		pos, err := tx.PurchaseOrders()
		if err != nil {
			return err
		}
		po = &entity.PurchaseOrder{
			ID:        tx.NewID(uow.PrefixPurchaseOrder),
			PRID:      pr.ID,
			Supplier:  supplier,
			Date:      tx.Now(),
			TotalCost: pr.TotalCost,
			Status:    entity.POStatusSent,
		}
		pr.Status = entity.PRStatusConvertedToPO
		pr.POID = po.ID
		if err := tx.PutPurchaseRequests(prs); err != nil {
			return err
		}
		return tx.PutPurchaseOrders(append([]*entity.PurchaseOrder{po}, pos...))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("po_id", po.ID).Str("pr_id", prID).Str("supplier", supplier).Msg("orden de compra generada")
	return po, nil
}

// CompletePO registra la recepción de mercancía: Sent -> Completed, suma al stock cada línea de
// la PR de origen y recalcula el costo unitario por promedio ponderado.
func (uc *ProcurementUseCase) CompletePO(ctx context.Context, poID string) (*entity.PurchaseOrder, error) {
	var po *entity.PurchaseOrder
	err := uc.tx.Run(ctx, func(tx *uow.Tx) error {
		pos, err := tx.PurchaseOrders()
		if err != nil {
			return err
		}
		po = findPO(pos, poID)
		if po == nil {
			return domain.NotFoundf("orden de compra %s", poID)
		}
		if po.Status == entity.POStatusCompleted {
			return domain.AlreadyProcessedf("la orden de compra %s ya fue recibida", poID)
		}
		if !po.Status.CanTransitionTo(entity.POStatusCompleted) {
			return domain.InvalidTransitionf("orden de compra %s en estado %s", poID, po.Status)
		}
		prs, err := tx.PurchaseRequests()
		if err != nil {
			return err
		}
		pr := findPR(prs, po.PRID)
		if pr == nil {
			return domain.NotFoundf("solicitud de compra %s", po.PRID)
		}
		products, err := tx.Products()
		if err != nil {
			return err
		}

		plan := inventory.NewStockPlan(products)
		running := make(map[string]int)
		for _, it := range pr.Items {
			if err := plan.Add(it.ProductID, it.Quantity); err != nil {
				return err
			}
			p := plan.Product(it.ProductID)
			stock, seen := running[p.ID]
			if !seen {
				stock = p.Stock
			}
			p.Cost = inventory.WeightedAverageCost(stock, p.Cost, it.Quantity, it.Cost)
			running[p.ID] = stock + it.Quantity
		}
		if _, err := plan.Commit(tx.Now()); err != nil {
			return err
		}

		now := tx.Now()
		po.Status = entity.POStatusCompleted
		po.CompletedAt = &now
		if err := tx.PutProducts(products); err != nil {
			return err
		}
		return tx.PutPurchaseOrders(pos)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("po_id", poID).Msg("mercancía recibida")
	return po, nil
}

// ListPRs devuelve las solicitudes, la más reciente primero.
func (uc *ProcurementUseCase) ListPRs(ctx context.Context) ([]*entity.PurchaseRequest, error) {
	var out []*entity.PurchaseRequest
	err := uc.tx.View(ctx, func(tx *uow.Tx) error {
		var err error
		out, err = tx.PurchaseRequests()
		return err
	})
	return out, err
}

// ListPOs devuelve las órdenes de compra, la más reciente primero.
func (uc *ProcurementUseCase) ListPOs(ctx context.Context) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	err := uc.tx.View(ctx, func(tx *uow.Tx) error {
		var err error
		out, err = tx.PurchaseOrders()
		return err
	})
	return out, err
}

func findPR(prs []*entity.PurchaseRequest, id string) *entity.PurchaseRequest {
	for _, pr := range prs {
		if pr.ID == id {
			return pr
		}
	}
	return nil
}

func findPO(pos []*entity.PurchaseOrder, id string) *entity.PurchaseOrder {
	for _, po := range pos {
		if po.ID == id {
			return po
		}
	}
	return nil
}
