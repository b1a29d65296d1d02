// Package accounting expone el libro financiero: asientos registrados más la proyección de compras.
package accounting

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/uow"
	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
)

// LedgerUseCase lectura del libro y registro de gastos operativos.
type LedgerUseCase struct {
	tx  *uow.TxRunner
	log zerolog.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(tx *uow.TxRunner, log zerolog.Logger) *LedgerUseCase {
	return &LedgerUseCase{tx: tx, log: log}
}

// ListTransactions une los asientos registrados con un egreso sintético por cada orden de compra,
// ordenados por fecha descendente. No persiste nada; se recalcula en cada llamada.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	err := uc.tx.View(ctx, func(tx *uow.Tx) error {
		var err error
		out, err = project(tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Summary totales de ingresos y egresos sobre la misma proyección que ListTransactions.
func (uc *LedgerUseCase) Summary(ctx context.Context) (*dto.LedgerSummaryResponse, error) {
	entries, err := uc.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range entries {
		switch t.Type {
		case entity.TransactionTypeIncome:
			income = income.Add(t.Amount)
		case entity.TransactionTypeExpense:
			expense = expense.Add(t.Amount)
		}
	}
	return &dto.LedgerSummaryResponse{
		TotalIncome:  income,
		TotalExpense: expense,
		NetProfit:    income.Sub(expense),
	}, nil
}

// AddOperationalExpense registra un egreso manual. Si trae referenceId debe apuntar a una
// orden de compra, orden de venta o corrida de nómina existente.
func (uc *LedgerUseCase) AddOperationalExpense(ctx context.Context, in dto.CreateExpenseRequest) (*entity.Transaction, error) {
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return nil, domain.Validationf("la descripción es obligatoria")
	}
	if !in.Amount.IsPositive() {
		return nil, domain.Validationf("el monto debe ser mayor que cero")
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = entity.CategoryGeneral
	}
	ref := strings.TrimSpace(in.ReferenceID)

	var created *entity.Transaction
	err := uc.tx.Run(ctx, func(tx *uow.Tx) error {
		if ref != "" {
			ok, err := referenceExists(tx, ref)
			if err != nil {
				return err
			}
			if !ok {
				return domain.NotFoundf("referencia %s", ref)
			}
		}
		txs, err := tx.Transactions()
		if err != nil {
			return err
		}
		date := tx.Now()
		if in.Date != nil {
			date = *in.Date
		}
		created = &entity.Transaction{
			ID:          tx.NewID(uow.PrefixTransaction),
			Date:        date,
			Description: desc,
			Type:        entity.TransactionTypeExpense,
			Amount:      in.Amount,
			Category:    category,
			ReferenceID: ref,
		}
		return tx.PutTransactions(append([]*entity.Transaction{created}, txs...))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("transaction_id", created.ID).Str("category", created.Category).Str("amount", created.Amount.String()).Msg("gasto registrado")
	return created, nil
}

func project(tx *uow.Tx) ([]*entity.Transaction, error) {
	recorded, err := tx.Transactions()
	if err != nil {
		return nil, err
	}
	pos, err := tx.PurchaseOrders()
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Transaction, 0, len(recorded)+len(pos))
	out = append(out, recorded...)
	for _, po := range pos {
		out = append(out, &entity.Transaction{
			ID:          "TX-PO-" + po.ID,
			Date:        po.Date,
			Description: fmt.Sprintf("Supplier Payment - %s", po.Supplier),
			Type:        entity.TransactionTypeExpense,
			Amount:      po.TotalCost,
			Category:    entity.CategoryProcurement,
			ReferenceID: po.ID,
		})
	}
	slices.SortStableFunc(out, func(a, b *entity.Transaction) int {
		return b.Date.Compare(a.Date)
	})
	return out, nil
}

func referenceExists(tx *uow.Tx, id string) (bool, error) {
	pos, err := tx.PurchaseOrders()
	if err != nil {
		return false, err
	}
	for _, po := range pos {
		if po.ID == id {
			return true, nil
		}
	}
	orders, err := tx.SalesOrders()
	if err != nil {
		return false, err
	}
	for _, so := range orders {
		if so.ID == id {
			return true, nil
		}
	}
	runs, err := tx.PayrollRuns()
	if err != nil {
		return false, err
	}
	for _, r := range runs {
		if r.ID == id {
			return true, nil
		}
	}
	return false, nil
}
