package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest entrada para dar de alta un empleado.
type CreateEmployeeRequest struct {
	Name       string          `json:"name" validate:"required,max=200"`
	Position   string          `json:"position" validate:"max=100"`
	Department string          `json:"department" validate:"max=100"`
	Salary     decimal.Decimal `json:"salary"`
	JoinedDate *time.Time      `json:"joinedDate"`
}

// PayrollRunResponse resultado de una corrida de nómina.
type PayrollRunResponse struct {
	RunID         string          `json:"runId"`
	TransactionID string          `json:"transactionId"`
	Period        string          `json:"period"`
	EmployeeCount int             `json:"employeeCount"`
	Total         decimal.Decimal `json:"total"`
}
