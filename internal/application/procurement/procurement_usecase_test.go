package procurement_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/procurement"
	"github.com/jhoicas/erp-core/internal/application/seed"
	"github.com/jhoicas/erp-core/internal/application/uow"
	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/infrastructure/memory"
)

func newUseCase(t *testing.T) (*procurement.ProcurementUseCase, *uow.TxRunner) {
	t.Helper()
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	r := uow.NewTxRunner(memory.NewCollectionStore(), uow.WithClock(func() time.Time { return now }))
	_, err := seed.Load(context.Background(), r, seed.Demo(now), false, zerolog.Nop())
	require.NoError(t, err)
	return procurement.NewProcurementUseCase(r, zerolog.Nop()), r
}

func product(t *testing.T, r *uow.TxRunner, id string) *entity.Product {
	t.Helper()
	var out *entity.Product
	require.NoError(t, r.View(context.Background(), func(tx *uow.Tx) error {
		products, err := tx.Products()
		if err != nil {
			return err
		}
		for _, p := range products {
			if p.ID == id {
				out = p
			}
		}
		return nil
	}))
	require.NotNil(t, out)
	return out
}

func TestCreatePR_TotalYSnapshots(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	pr, err := uc.CreatePR(ctx, dto.CreatePRRequest{
		Requester: "Jane",
		Items: []dto.LineItemRequest{
			{ProductID: "RM-001", Quantity: 10},
			{ProductID: "RM-003", Quantity: 3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PRStatusPending, pr.Status)
	require.Len(t, pr.Items, 2)
	assert.Equal(t, "Oak Wood Plank", pr.Items[0].ProductName)
	assert.True(t, pr.TotalCost.Equal(decimal.NewFromInt(10*20+3*5)))
	assert.True(t, pr.TotalCost.Equal(entity.SumPRItems(pr.Items)))

	list, err := uc.ListPRs(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, pr.ID, list[0].ID, "la nueva PR va primero")
}

func TestCreatePR_Errores(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	_, err := uc.CreatePR(ctx, dto.CreatePRRequest{Requester: "Jane", Items: []dto.LineItemRequest{{ProductID: "nope", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.CreatePR(ctx, dto.CreatePRRequest{Requester: "", Items: []dto.LineItemRequest{{ProductID: "2", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.CreatePR(ctx, dto.CreatePRRequest{Requester: "Jane"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.CreatePR(ctx, dto.CreatePRRequest{Requester: "Jane", Items: []dto.LineItemRequest{{ProductID: "2", Quantity: 0}}})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFlujoCompleto_PRaPO(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	pr, err := uc.ApprovePR(ctx, "PR-2023-001")
	require.NoError(t, err)
	assert.Equal(t, entity.PRStatusApproved, pr.Status)

	// Aprobar dos veces no cambia nada.
	pr, err = uc.ApprovePR(ctx, "PR-2023-001")
	require.NoError(t, err)
	assert.Equal(t, entity.PRStatusApproved, pr.Status)

	po, err := uc.GeneratePO(ctx, "PR-2023-001", dto.GeneratePORequest{Supplier: "Global Supplies Co."})
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusSent, po.Status)
	assert.Equal(t, "PR-2023-001", po.PRID)
	assert.True(t, po.TotalCost.Equal(decimal.NewFromInt(1000)), "el PO copia el totalCost de la PR")

	prs, err := uc.ListPRs(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.PRStatusConvertedToPO, prs[0].Status)
	assert.Equal(t, po.ID, prs[0].POID)

	pos, err := uc.ListPOs(ctx)
	require.NoError(t, err)
	require.Len(t, pos, 1)

	_, err = uc.GeneratePO(ctx, "PR-2023-001", dto.GeneratePORequest{Supplier: "Otro"})
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)

	_, err = uc.ApprovePR(ctx, "PR-2023-001")
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

func TestGeneratePO_RequierePRAprobada(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	_, err := uc.GeneratePO(ctx, "PR-2023-001", dto.GeneratePORequest{Supplier: "Global Supplies Co."})
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	pos, err := uc.ListPOs(ctx)
	require.NoError(t, err)
	assert.Empty(t, pos, "una conversión rechazada no crea la PO")

	_, err = uc.GeneratePO(ctx, "PR-x", dto.GeneratePORequest{Supplier: "Global Supplies Co."})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.GeneratePO(ctx, "PR-2023-001", dto.GeneratePORequest{Supplier: " "})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRejectPR(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	pr, err := uc.RejectPR(ctx, "PR-2023-001")
	require.NoError(t, err)
	assert.Equal(t, entity.PRStatusRejected, pr.Status)

	_, err = uc.ApprovePR(ctx, "PR-2023-001")
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	_, err = uc.RejectPR(ctx, "PR-x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompletePO_RecibeMercancia(t *testing.T) {
	uc, r := newUseCase(t)
	ctx := context.Background()

	// Producto 2: stock 100 a costo 20. La PR se crea con costo 20; luego se cambia el costo
	// del producto para comprobar el promedio ponderado.
	_, err := uc.ApprovePR(ctx, "PR-2023-001")
	require.NoError(t, err)
	po, err := uc.GeneratePO(ctx, "PR-2023-001", dto.GeneratePORequest{Supplier: "Global Supplies Co."})
	require.NoError(t, err)

	require.NoError(t, r.Run(ctx, func(tx *uow.Tx) error {
		products, err := tx.Products()
		if err != nil {
			return err
		}
		for _, p := range products {
			if p.ID == "2" {
				p.Cost = decimal.NewFromInt(23)
			}
		}
		return tx.PutProducts(products)
	}))

	done, err := uc.CompletePO(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)

	p := product(t, r, "2")
	assert.Equal(t, 150, p.Stock)
	// (100*23 + 50*20) / 150 = 22
	assert.True(t, p.Cost.Equal(decimal.NewFromInt(22)), "costo %s", p.Cost)

	_, err = uc.CompletePO(ctx, po.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	assert.Equal(t, 150, product(t, r, "2").Stock)

	_, err = uc.CompletePO(ctx, "PO-x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
