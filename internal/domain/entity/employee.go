package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeStatus sólo los Active entran en la nómina.
type EmployeeStatus string

const (
	EmployeeStatusActive     EmployeeStatus = "Active"
	EmployeeStatusTerminated EmployeeStatus = "Terminated"
)

// Employee empleado con salario mensual recurrente.
type Employee struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Position   string          `json:"position"`
	Department string          `json:"department"`
	Salary     decimal.Decimal `json:"salary"`
	Status     EmployeeStatus  `json:"status"`
	JoinedDate time.Time       `json:"joinedDate"`
}

// PayrollRun registro de una corrida de nómina; es la referencia del egreso que genera.
type PayrollRun struct {
	ID            string          `json:"id"`
	Period        string          `json:"period"` // YYYY-MM
	Date          time.Time       `json:"date"`
	EmployeeCount int             `json:"employeeCount"`
	Total         decimal.Decimal `json:"total"`
	TransactionID string          `json:"transactionId"`
}
