package manufacturing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/manufacturing"
	"github.com/jhoicas/erp-core/internal/application/seed"
	"github.com/jhoicas/erp-core/internal/application/uow"
	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/infrastructure/memory"
)

func newUseCase(t *testing.T) (*manufacturing.ManufacturingUseCase, *uow.TxRunner) {
	t.Helper()
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	r := uow.NewTxRunner(memory.NewCollectionStore(), uow.WithClock(func() time.Time { return now }))
	_, err := seed.Load(context.Background(), r, seed.Demo(now), false, zerolog.Nop())
	require.NoError(t, err)
	return manufacturing.NewManufacturingUseCase(r, zerolog.Nop()), r
}

func stocks(t *testing.T, r *uow.TxRunner) map[string]int {
	t.Helper()
	out := make(map[string]int)
	require.NoError(t, r.View(context.Background(), func(tx *uow.Tx) error {
		products, err := tx.Products()
		if err != nil {
			return err
		}
		for _, p := range products {
			out[p.ID] = p.Stock
		}
		return nil
	}))
	return out
}

func TestCompleteProduction_ConsumeYProduce(t *testing.T) {
	uc, r := newUseCase(t)
	ctx := context.Background()

	// BOM-001: RM-001 x2, RM-002 x1, RM-003 x4 por silla; stock 50/30/200; silla 5.
	mo, err := uc.CreateProductionOrder(ctx, dto.CreateProductionOrderRequest{BOMID: "BOM-001", Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionStatusPlanned, mo.Status)

	done, err := uc.CompleteProduction(ctx, mo.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionStatusCompleted, done.Status)
	assert.NotNil(t, done.CompletedAt)

	s := stocks(t, r)
	assert.Equal(t, 30, s["RM-001"])
	assert.Equal(t, 20, s["RM-002"])
	assert.Equal(t, 160, s["RM-003"])
	assert.Equal(t, 15, s["3"])

	_, err = uc.CompleteProduction(ctx, mo.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	assert.Equal(t, s, stocks(t, r))
}

func TestCompleteProduction_TodoONada(t *testing.T) {
	uc, r := newUseCase(t)
	ctx := context.Background()
	before := stocks(t, r)

	// 26 sillas requieren 52 tablones y sólo hay 50; bases (26/30) y tornillos (104/200) alcanzan.
	mo, err := uc.CreateProductionOrder(ctx, dto.CreateProductionOrderRequest{BOMID: "BOM-001", Quantity: 26})
	require.NoError(t, err)

	_, err = uc.CompleteProduction(ctx, mo.ID)
	var short *domain.InsufficientStockError
	require.True(t, errors.As(err, &short))
	assert.Equal(t, "Oak Wood Plank", short.ProductName)
	assert.Equal(t, 52, short.Required)
	assert.Equal(t, 50, short.Available)

	assert.Equal(t, before, stocks(t, r), "ningún stock cambia")
	orders, err := uc.ListProductionOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionStatusPlanned, orders[0].Status)
}

func TestCompleteProduction_NoEncontrado(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.CompleteProduction(context.Background(), "MO-x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// plannedOrder inserta una orden Planned directamente en el store, sin pasar por las validaciones del caso de uso.
func plannedOrder(t *testing.T, r *uow.TxRunner, bomID string, quantity int, boms ...*entity.BOM) string {
	t.Helper()
	const id = "MO-TEST"
	require.NoError(t, r.Run(context.Background(), func(tx *uow.Tx) error {
		if len(boms) > 0 {
			existing, err := tx.BOMs()
			if err != nil {
				return err
			}
			if err := tx.PutBOMs(append(existing, boms...)); err != nil {
				return err
			}
		}
		orders, err := tx.ProductionOrders()
		if err != nil {
			return err
		}
		return tx.PutProductionOrders(append(orders, &entity.ProductionOrder{
			ID: id, BOMID: bomID, Quantity: quantity, Status: entity.ProductionStatusPlanned,
		}))
	}))
	return id
}

func orderStatus(t *testing.T, r *uow.TxRunner, id string) entity.ProductionStatus {
	t.Helper()
	var status entity.ProductionStatus
	require.NoError(t, r.View(context.Background(), func(tx *uow.Tx) error {
		orders, err := tx.ProductionOrders()
		if err != nil {
			return err
		}
		for _, o := range orders {
			if o.ID == id {
				status = o.Status
			}
		}
		return nil
	}))
	return status
}

func TestCompleteProduction_BOMEliminado(t *testing.T) {
	uc, r := newUseCase(t)
	id := plannedOrder(t, r, "BOM-borrado", 2)
	before := stocks(t, r)

	_, err := uc.CompleteProduction(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, before, stocks(t, r), "sin BOM no se toca ningún stock")
	assert.Equal(t, entity.ProductionStatusPlanned, orderStatus(t, r, id))
}

func TestCompleteProduction_MateriaPrimaInexistente(t *testing.T) {
	uc, r := newUseCase(t)
	bom := &entity.BOM{
		ID:        "BOM-GHOST",
		Name:      "Silla con pieza retirada",
		ProductID: "3",
		Components: []entity.BOMComponent{
			{ProductID: "RM-001", Quantity: 2},
			{ProductID: "RM-999", Quantity: 1},
		},
	}
	id := plannedOrder(t, r, bom.ID, 3, bom)
	before := stocks(t, r)

	_, err := uc.CompleteProduction(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, before, stocks(t, r), "RM-001 no debe descontarse si otro componente no existe")
	assert.Equal(t, entity.ProductionStatusPlanned, orderStatus(t, r, id))
}

func TestCreateProductionOrder_Validaciones(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	_, err := uc.CreateProductionOrder(ctx, dto.CreateProductionOrderRequest{BOMID: "BOM-x", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.CreateProductionOrder(ctx, dto.CreateProductionOrderRequest{BOMID: "BOM-001", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateBOM(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	bom, err := uc.CreateBOM(ctx, dto.CreateBOMRequest{
		Name:       "Laptop Kit",
		ProductID:  "1",
		Components: []dto.BOMComponentRequest{{ProductID: "RM-002", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, bom.ID)

	boms, err := uc.ListBOMs(ctx)
	require.NoError(t, err)
	assert.Len(t, boms, 2)

	tests := []struct {
		name string
		in   dto.CreateBOMRequest
		want error
	}{
		{"sin nombre", dto.CreateBOMRequest{ProductID: "1", Components: []dto.BOMComponentRequest{{ProductID: "RM-001", Quantity: 1}}}, domain.ErrValidation},
		{"sin componentes", dto.CreateBOMRequest{Name: "x", ProductID: "1"}, domain.ErrValidation},
		{"cantidad cero", dto.CreateBOMRequest{Name: "x", ProductID: "1", Components: []dto.BOMComponentRequest{{ProductID: "RM-001"}}}, domain.ErrValidation},
		{"autoreferencia", dto.CreateBOMRequest{Name: "x", ProductID: "1", Components: []dto.BOMComponentRequest{{ProductID: "1", Quantity: 1}}}, domain.ErrValidation},
		{"producto terminado inexistente", dto.CreateBOMRequest{Name: "x", ProductID: "nope", Components: []dto.BOMComponentRequest{{ProductID: "RM-001", Quantity: 1}}}, domain.ErrNotFound},
		{"componente inexistente", dto.CreateBOMRequest{Name: "x", ProductID: "1", Components: []dto.BOMComponentRequest{{ProductID: "RM-999", Quantity: 1}}}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.CreateBOM(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCompleteProduction_FaltanteEnComponentePosterior(t *testing.T) {
	uc, r := newUseCase(t)
	ctx := context.Background()

	// Con 100 tablones el cuello de botella pasa a ser la base de aluminio (31 > 30),
	// que se valida después de un componente con stock suficiente.
	require.NoError(t, r.Run(ctx, func(tx *uow.Tx) error {
		products, err := tx.Products()
		if err != nil {
			return err
		}
		for _, p := range products {
			if p.ID == "RM-001" {
				p.Stock = 100
			}
		}
		return tx.PutProducts(products)
	}))
	before := stocks(t, r)

	mo, err := uc.CreateProductionOrder(ctx, dto.CreateProductionOrderRequest{BOMID: "BOM-001", Quantity: 31})
	require.NoError(t, err)
	_, err = uc.CompleteProduction(ctx, mo.ID)

	var short *domain.InsufficientStockError
	require.True(t, errors.As(err, &short))
	assert.Equal(t, "RM-002", short.ProductID)
	assert.Equal(t, 31, short.Required)
	assert.Equal(t, 30, short.Available)
	assert.Equal(t, before, stocks(t, r))
}
