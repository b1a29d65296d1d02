package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesStatus avanza estrictamente hacia adelante, un paso a la vez.
type SalesStatus string

const (
	SalesStatusQuotation     SalesStatus = "Quotation"
	SalesStatusSalesOrder    SalesStatus = "Sales Order"
	SalesStatusDeliveryOrder SalesStatus = "Delivery Order"
	SalesStatusInvoice       SalesStatus = "Invoice"
	SalesStatusCompleted     SalesStatus = "Completed"
)

// salesFlow secuencia fija; Completed es punto fijo.
var salesFlow = map[SalesStatus]SalesStatus{
	SalesStatusQuotation:     SalesStatusSalesOrder,
	SalesStatusSalesOrder:    SalesStatusDeliveryOrder,
	SalesStatusDeliveryOrder: SalesStatusInvoice,
	SalesStatusInvoice:       SalesStatusCompleted,
}

// Next devuelve el siguiente estado y false si s ya es Completed (o desconocido).
func (s SalesStatus) Next() (SalesStatus, bool) {
	next, ok := salesFlow[s]
	return next, ok
}

// Invoiced indica que la orden ya puede cobrarse.
func (s SalesStatus) Invoiced() bool {
	return s == SalesStatusInvoice || s == SalesStatusCompleted
}

// PaymentStatus eje independiente: sólo Unpaid -> Paid.
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "Unpaid"
	PaymentStatusPaid   PaymentStatus = "Paid"
)

// SalesItem línea de la orden con nombre y precio congelados.
type SalesItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

func (i SalesItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SalesOrder orden de venta; el stock se reserva (descuenta) al crearla.
type SalesOrder struct {
	ID            string          `json:"id"`
	CustomerName  string          `json:"customerName"`
	Date          time.Time       `json:"date"`
	Items         []SalesItem     `json:"items"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Status        SalesStatus     `json:"status"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
}
