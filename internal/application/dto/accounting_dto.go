package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest entrada para registrar un gasto operativo.
type CreateExpenseRequest struct {
	Description string          `json:"description" validate:"required,max=300"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category" validate:"max=100"`
	Date        *time.Time      `json:"date"`
	ReferenceID string          `json:"referenceId"`
}

// LedgerSummaryResponse totales del libro (incluye las compras proyectadas).
type LedgerSummaryResponse struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetProfit    decimal.Decimal `json:"netProfit"`
}
