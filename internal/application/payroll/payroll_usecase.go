// Package payroll gestiona empleados y la corrida de nómina mensual.
package payroll

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/uow"
	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
)

// periodLayout formato del período de nómina (YYYY-MM).
const periodLayout = "2006-01"

// PayrollUseCase empleados y nómina.
type PayrollUseCase struct {
	tx  *uow.TxRunner
	log zerolog.Logger
}

// NewPayrollUseCase construye el caso de uso.
func NewPayrollUseCase(tx *uow.TxRunner, log zerolog.Logger) *PayrollUseCase {
	return &PayrollUseCase{tx: tx, log: log}
}

// AddEmployee da de alta un empleado Active. JoinedDate por defecto es hoy.
func (uc *PayrollUseCase) AddEmployee(ctx context.Context, in dto.CreateEmployeeRequest) (*entity.Employee, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validationf("el nombre del empleado es obligatorio")
	}
	if in.Salary.IsNegative() {
		return nil, domain.Validationf("el salario no puede ser negativo")
	}

	var created *entity.Employee
	err := uc.tx.Run(ctx, func(tx *uow.Tx) error {
		employees, err := tx.Employees()
		if err != nil {
			return err
		}
		joined := tx.Now()
		if in.JoinedDate != nil {
			joined = *in.JoinedDate
		}
		created = &entity.Employee{
			ID:         tx.NewID(uow.PrefixEmployee),
			Name:       name,
			Position:   strings.TrimSpace(in.Position),
			Department: strings.TrimSpace(in.Department),
			Salary:     in.Salary,
			Status:     entity.EmployeeStatusActive,
			JoinedDate: joined,
		}
		return tx.PutEmployees(append(employees, created))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("employee_id", created.ID).Str("department", created.Department).Msg("empleado registrado")
	return created, nil
}

// TerminateEmployee pasa un empleado a Terminated; deja de entrar en la nómina.
func (uc *PayrollUseCase) TerminateEmployee(ctx context.Context, id string) (*entity.Employee, error) {
	var emp *entity.Employee
	err := uc.tx.Run(ctx, func(tx *uow.Tx) error {
		emp = nil
		employees, err := tx.Employees()
		if err != nil {
			return err
		}
		for _, e := range employees {
			if e.ID == id {
				emp = e
				break
			}
		}
		if emp == nil {
			return domain.NotFoundf("empleado %s", id)
		}
		if emp.Status == entity.EmployeeStatusTerminated {
			return domain.AlreadyProcessedf("el empleado %s ya fue retirado", id)
		}
		emp.Status = entity.EmployeeStatusTerminated
		return tx.PutEmployees(employees)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("employee_id", id).Msg("empleado retirado")
	return emp, nil
}

// ListEmployees devuelve todos los empleados.
func (uc *PayrollUseCase) ListEmployees(ctx context.Context) ([]*entity.Employee, error) {
	var out []*entity.Employee
	err := uc.tx.View(ctx, func(tx *uow.Tx) error {
		var err error
		out, err = tx.Employees()
		return err
	})
	return out, err
}

// RunPayroll suma el salario de los empleados Active y registra un único egreso "Payroll".
// Cada llamada registra una corrida nueva; repetir el período se permite pero queda en el log.
func (uc *PayrollUseCase) RunPayroll(ctx context.Context) (*dto.PayrollRunResponse, error) {
	var run *entity.PayrollRun
	repeated := false
	err := uc.tx.Run(ctx, func(tx *uow.Tx) error {
		repeated = false
		employees, err := tx.Employees()
		if err != nil {
			return err
		}
		count := 0
		total := decimal.Zero
		for _, e := range employees {
			if e.Status == entity.EmployeeStatusActive {
				count++
				total = total.Add(e.Salary)
			}
		}
		if count == 0 {
			return domain.Validationf("no hay empleados activos")
		}

		runs, err := tx.PayrollRuns()
		if err != nil {
			return err
		}
		txs, err := tx.Transactions()
		if err != nil {
			return err
		}

		now := tx.Now()
		period := now.Format(periodLayout)
		for _, r := range runs {
			if r.Period == period {
				repeated = true
				break
			}
		}
		run = &entity.PayrollRun{
			ID:            tx.NewID(uow.PrefixPayrollRun),
			Period:        period,
			Date:          now,
			EmployeeCount: count,
			Total:         total,
			TransactionID: tx.NewID(uow.PrefixTransaction),
		}
		expense := &entity.Transaction{
			ID:          run.TransactionID,
			Date:        now,
			Description: fmt.Sprintf("Monthly Payroll (%d employees)", count),
			Type:        entity.TransactionTypeExpense,
			Amount:      total,
			Category:    entity.CategoryPayroll,
			ReferenceID: run.ID,
		}
		if err := tx.PutPayrollRuns(append([]*entity.PayrollRun{run}, runs...)); err != nil {
			return err
		}
		return tx.PutTransactions(append([]*entity.Transaction{expense}, txs...))
	})
	if err != nil {
		return nil, err
	}

	if repeated {
		uc.log.Warn().Str("period", run.Period).Str("run_id", run.ID).Msg("nómina ejecutada más de una vez en el mismo período")
	}
	uc.log.Info().Str("run_id", run.ID).Int("employees", run.EmployeeCount).Str("total", run.Total.String()).Msg("nómina registrada")
	return &dto.PayrollRunResponse{
		RunID:         run.ID,
		TransactionID: run.TransactionID,
		Period:        run.Period,
		EmployeeCount: run.EmployeeCount,
		Total:         run.Total,
	}, nil
}

// ListPayrollRuns devuelve las corridas registradas, la más reciente primero.
func (uc *PayrollUseCase) ListPayrollRuns(ctx context.Context) ([]*entity.PayrollRun, error) {
	var out []*entity.PayrollRun
	err := uc.tx.View(ctx, func(tx *uow.Tx) error {
		var err error
		out, err = tx.PayrollRuns()
		return err
	})
	return out, err
}
