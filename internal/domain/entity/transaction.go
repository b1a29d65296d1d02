package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType ingreso o egreso del libro.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "Income"
	TransactionTypeExpense TransactionType = "Expense"
)

// Categorías que generan los flujos automáticamente.
const (
	CategorySales       = "Sales"
	CategoryPayroll     = "Payroll"
	CategoryProcurement = "Procurement"
	CategoryGeneral     = "General"
)

// Transaction asiento del libro financiero. Sólo se agrega; nunca se modifica ni elimina.
// ReferenceID apunta a una PO, SO o corrida de nómina existente al momento de crearse.
type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	ReferenceID string          `json:"referenceId,omitempty"`
}
