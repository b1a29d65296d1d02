package dto

import "github.com/jhoicas/erp-core/internal/domain/entity"

// CreateSalesOrderRequest entrada para crear una cotización (reserva stock).
type CreateSalesOrderRequest struct {
	CustomerName string            `json:"customerName" validate:"required,max=200"`
	Items        []LineItemRequest `json:"items" validate:"required,min=1,dive"`
}

// AdvanceSalesStatusResponse estado resultante tras avanzar una orden.
type AdvanceSalesStatusResponse struct {
	ID     string             `json:"id"`
	Status entity.SalesStatus `json:"status"`
}
