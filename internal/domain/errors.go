package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrValidation             = errors.New("entrada inválida")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrInvalidStateTransition = errors.New("transición de estado no permitida")
	ErrAlreadyProcessed       = errors.New("operación ya procesada")
)

// InsufficientStockError detalla qué producto quedaría en negativo.
// errors.Is(err, ErrInsufficientStock) es verdadero para este tipo.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Required    int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: %s (requerido %d, disponible %d)",
		ErrInsufficientStock.Error(), e.ProductName, e.Required, e.Available)
}

// Is permite comparar contra el sentinel ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// NotFoundf envuelve ErrNotFound con el recurso que falta.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Validationf envuelve ErrValidation con el detalle del campo.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// InvalidTransitionf envuelve ErrInvalidStateTransition.
func InvalidTransitionf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidStateTransition, fmt.Sprintf(format, args...))
}

// AlreadyProcessedf envuelve ErrAlreadyProcessed.
func AlreadyProcessedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrAlreadyProcessed, fmt.Sprintf(format, args...))
}
