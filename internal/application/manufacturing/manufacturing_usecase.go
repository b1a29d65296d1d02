// Package manufacturing gestiona listas de materiales y órdenes de producción.
package manufacturing

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

// ManufacturingUseCase BOMs y órdenes de producción.
type ManufacturingUseCase struct {
	tx  *uow.TxRunner
	log zerolog.Logger
}

// NewManufacturingUseCase construye el caso de uso.
func NewManufacturingUseCase(tx *uow.TxRunner, log zerolog.Logger) *ManufacturingUseCase {
	return &ManufacturingUseCase{tx: tx, log: log}
}

// CreateBOM registra la receta de un producto terminado.
func (uc *ManufacturingUseCase) CreateBOM(ctx context.Context, in dto.CreateBOMRequest) (*entity.BOM, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validationf("el nombre del BOM es obligatorio")
	}
	if len(in.Components) == 0 {
		return nil, domain.Validationf("el BOM debe tener al menos un componente")
	}
	components := make([]entity.BOMComponent, 0, len(in.Components))
	for _, c := range in.Components {
		if c.Quantity <= 0 {
			return nil, domain.Validationf("cantidad inválida para el componente %s: %d", c.ProductID, c.Quantity)
		}
		if c.ProductID == in.ProductID {
			return nil, domain.Validationf("el producto terminado no puede ser componente de sí mismo")
		}
		components = append(components, entity.BOMComponent{ProductID: c.ProductID, Quantity: c.Quantity})
	}

	var created *entity.BOM
	err := uc.tx.Run(ctx, func(tx *uow.Tx) error {
		products, err := tx.Products()
		if err != nil {
			return err
		}
		plan := inventory.NewStockPlan(products)
		if plan.Product(in.ProductID) == nil {
			return domain.NotFoundf("producto terminado %s", in.ProductID)
		}
		for _, c := range components {
			if plan.Product(c.ProductID) == nil {
				return domain.NotFoundf("materia prima %s", c.ProductID)
			}
		}
		boms, err := tx.BOMs()
		if err != nil {
			return err
		}
		created = &entity.BOM{
			ID:         tx.NewID(uow.PrefixBOM),
			Name:       name,
			ProductID:  in.ProductID,
			Components: components,
		}
		return tx.PutBOMs(append(boms, created))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("bom_id", created.ID).Str("product_id", created.ProductID).Int("components", len(components)).Msg("BOM creado")
	return created, nil
}

// ListBOMs devuelve las listas de materiales.
func (uc *ManufacturingUseCase) ListBOMs(ctx context.Context) ([]*entity.BOM, error) {
	var out []*entity.BOM
	err := uc.tx.View(ctx, func(tx *uow.Tx) error {
		var err error
		out, err = tx.BOMs()
		return err
	})
	return out, err
}

// CreateProductionOrder planifica la fabricación de quantity unidades según un BOM.
func (uc *ManufacturingUseCase) CreateProductionOrder(ctx context.Context, in dto.CreateProductionOrderRequest) (*entity.ProductionOrder, error) {
	if in.Quantity <= 0 {
		return nil, domain.Validationf("la cantidad a producir debe ser mayor que cero")
	}
	var created *entity.ProductionOrder
	err := uc.tx.Run(ctx, func(tx *uow.Tx) error {
		boms, err := tx.BOMs()
		if err != nil {
			return err
		}
		if findBOM(boms, in.BOMID) == nil {
			return domain.NotFoundf("BOM %s", in.BOMID)
		}
		orders, err := tx.ProductionOrders()
		if err != nil {
			return err
		}
		created = &entity.ProductionOrder{
			ID:       tx.NewID(uow.PrefixProductionOrder),
			BOMID:    in.BOMID,
			Quantity: in.Quantity,
			Status:   entity.ProductionStatusPlanned,
			Date:     tx.Now(),
		}
		return tx.PutProductionOrders(append([]*entity.ProductionOrder{created}, orders...))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", created.ID).Str("bom_id", created.BOMID).Int("quantity", created.Quantity).Msg("orden de producción planificada")
	return created, nil
}

// ListProductionOrders devuelve las órdenes de producción, la más reciente primero.
func (uc *ManufacturingUseCase) ListProductionOrders(ctx context.Context) ([]*entity.ProductionOrder, error) {
	var out []*entity.ProductionOrder
	err := uc.tx.View(ctx, func(tx *uow.Tx) error {
		var err error
		out, err = tx.ProductionOrders()
		return err
	})
	return out, err
}

// CompleteProduction consume las materias primas y suma el producto terminado en dos fases:
// primero valida todos los componentes y sólo si todos alcanzan muta el stock.
func (uc *ManufacturingUseCase) CompleteProduction(ctx context.Context, orderID string) (*entity.ProductionOrder, error) {
	var order *entity.ProductionOrder
	err := uc.tx.Run(ctx, func(tx *uow.Tx) error {
		orders, err := tx.ProductionOrders()
		if err != nil {
			return err
		}
		order = findOrder(orders, orderID)
		if order == nil {
			return domain.NotFoundf("orden de producción %s", orderID)
		}
		if order.Status == entity.ProductionStatusCompleted {
			return domain.AlreadyProcessedf("la orden de producción %s ya fue completada", orderID)
		}
		boms, err := tx.BOMs()
		if err != nil {
			return err
		}
		bom := findBOM(boms, order.BOMID)
		if bom == nil {
			return domain.NotFoundf("definición de BOM %s", order.BOMID)
		}
		products, err := tx.Products()
		if err != nil {
			return err
		}

		// Fase 1: validación (no muta nada)
		plan := inventory.NewStockPlan(products)
		for _, c := range bom.Components {
			if err := plan.Add(c.ProductID, -c.Quantity*order.Quantity); err != nil {
				return err
			}
		}
		if err := plan.Add(bom.ProductID, order.Quantity); err != nil {
			return err
		}
		if err := plan.Validate(); err != nil {
			return err
		}

		// Fase 2: ejecución
		now := tx.Now()
		plan.Apply(now)
		order.Status = entity.ProductionStatusCompleted
		order.CompletedAt = &now
		if err := tx.PutProducts(products); err != nil {
			return err
		}
		return tx.PutProductionOrders(orders)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", orderID).Str("bom_id", order.BOMID).Int("quantity", order.Quantity).Msg("producción completada")
	return order, nil
}

func findBOM(boms []*entity.BOM, id string) *entity.BOM {
	for _, b := range boms {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func findOrder(orders []*entity.ProductionOrder, id string) *entity.ProductionOrder {
	for _, o := range orders {
		if o.ID == id {
			return o
		}
	}
	return nil
}
