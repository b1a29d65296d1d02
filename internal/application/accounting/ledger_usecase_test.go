package accounting_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-core/internal/application/accounting"
	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/procurement"
	"github.com/jhoicas/erp-core/internal/application/seed"
	"github.com/jhoicas/erp-core/internal/application/uow"
	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/infrastructure/memory"
)

// tickingClock avanza una hora en cada operación para que el orden por fecha sea observable.
func tickingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Hour)
		return current
	}
}

type fixture struct {
	ledger *accounting.LedgerUseCase
	proc   *procurement.ProcurementUseCase
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	r := uow.NewTxRunner(memory.NewCollectionStore(), uow.WithClock(tickingClock(start)))
	_, err := seed.Load(context.Background(), r, seed.Demo(start), false, zerolog.Nop())
	require.NoError(t, err)
	return fixture{
		ledger: accounting.NewLedgerUseCase(r, zerolog.Nop()),
		proc:   procurement.NewProcurementUseCase(r, zerolog.Nop()),
	}
}

func (f fixture) generatePO(t *testing.T) *entity.PurchaseOrder {
	t.Helper()
	ctx := context.Background()
	_, err := f.proc.ApprovePR(ctx, "PR-2023-001")
	require.NoError(t, err)
	po, err := f.proc.GeneratePO(ctx, "PR-2023-001", dto.GeneratePORequest{Supplier: "Global Supplies Co."})
	require.NoError(t, err)
	return po
}

func TestListTransactions_ProyectaOrdenesDeCompra(t *testing.T) {
	f := newFixture(t)
	po := f.generatePO(t)

	out, err := f.ledger.ListTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 3)

	// La PO es de 2024; los gastos semilla son de 2023.
	first := out[0]
	assert.Equal(t, "TX-PO-"+po.ID, first.ID)
	assert.Equal(t, "Supplier Payment - Global Supplies Co.", first.Description)
	assert.Equal(t, entity.TransactionTypeExpense, first.Type)
	assert.Equal(t, entity.CategoryProcurement, first.Category)
	assert.True(t, first.Amount.Equal(po.TotalCost))
	assert.Equal(t, po.ID, first.ReferenceID)

	assert.Equal(t, "TX-002", out[1].ID)
	assert.Equal(t, "TX-001", out[2].ID)

	// Es una proyección: llamarla de nuevo no duplica nada.
	again, err := f.ledger.ListTransactions(context.Background())
	require.NoError(t, err)
	assert.Len(t, again, 3)
}

func TestAddOperationalExpense(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tx, err := f.ledger.AddOperationalExpense(ctx, dto.CreateExpenseRequest{Description: "Electricity", Amount: decimal.NewFromInt(300)})
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionTypeExpense, tx.Type)
	assert.Equal(t, entity.CategoryGeneral, tx.Category)

	out, err := f.ledger.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, tx.ID, out[0].ID)
}

func TestAddOperationalExpense_Referencias(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	po := f.generatePO(t)

	tx, err := f.ledger.AddOperationalExpense(ctx, dto.CreateExpenseRequest{
		Description: "Freight", Amount: decimal.NewFromInt(40), Category: "Logistics", ReferenceID: po.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, po.ID, tx.ReferenceID)

	_, err = f.ledger.AddOperationalExpense(ctx, dto.CreateExpenseRequest{
		Description: "Freight", Amount: decimal.NewFromInt(40), ReferenceID: "PO-inexistente",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddOperationalExpense_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.ledger.AddOperationalExpense(ctx, dto.CreateExpenseRequest{Description: " ", Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.ledger.AddOperationalExpense(ctx, dto.CreateExpenseRequest{Description: "x", Amount: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSummary(t *testing.T) {
	f := newFixture(t)
	f.generatePO(t)

	s, err := f.ledger.Summary(context.Background())
	require.NoError(t, err)
	assert.True(t, s.TotalIncome.IsZero())
	// 2000 + 100 semilla + 1000 de la PO
	assert.True(t, s.TotalExpense.Equal(decimal.NewFromInt(3100)))
	assert.True(t, s.NetProfit.Equal(decimal.NewFromInt(-3100)))
}
