// Package sales implementa el flujo de ventas: cotización con reserva de stock, avance de estado y cobro.
package sales

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
	"github.com/jhoicas/erp-core/internal/domain/inventory"
)

// SalesUseCase casos de uso de órdenes de venta.
type SalesUseCase struct {
	tx  *uow.TxRunner
	pdf InvoicePDFGenerator
	log zerolog.Logger
}

// NewSalesUseCase construye el caso de uso. pdf puede ser nil si no se expone la factura imprimible.
func NewSalesUseCase(tx *uow.TxRunner, pdf InvoicePDFGenerator, log zerolog.Logger) *SalesUseCase {
	return &SalesUseCase{tx: tx, pdf: pdf, log: log}
}

// Create crea la orden en estado Quotation y descuenta el stock de todas las líneas.
// Si cualquier línea no tiene stock suficiente no se descuenta nada ni se crea la orden.
func (uc *SalesUseCase) Create(ctx context.Context, in dto.CreateSalesOrderRequest) (*entity.SalesOrder, error) {
	customer := strings.TrimSpace(in.CustomerName)
	if customer == "" {
		return nil, domain.Validationf("el cliente es obligatorio")
	}
	if len(in.Items) == 0 {
		return nil, domain.Validationf("la orden debe tener al menos una línea")
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, domain.Validationf("cantidad inválida para %s: %d", it.ProductID, it.Quantity)
		}
	}

	var created *entity.SalesOrder
	err := uc.tx.Run(ctx, func(tx *uow.Tx) error {
		products, err := tx.Products()
		if err != nil {
			return err
		}
		orders, err := tx.SalesOrders()
		if err != nil {
			return err
		}

		// 1. Plan: resolver productos y acumular descuentos (sin mutar)
		plan := inventory.NewStockPlan(products)
		items := make([]entity.SalesItem, 0, len(in.Items))
		total := decimal.Zero
		for _, it := range in.Items {
			if err := plan.Add(it.ProductID, -it.Quantity); err != nil {
				return err
			}
			p := plan.Product(it.ProductID)
			line := entity.SalesItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    it.Quantity,
				Price:       p.Price,
			}
			total = total.Add(line.Subtotal())
			items = append(items, line)
		}

		// 2. Commit: valida todas las líneas antes de tocar cualquier stock
		if _, err := plan.Commit(tx.Now()); err != nil {
			return err
		}

		created = &entity.SalesOrder{
			ID:            tx.NewID(uow.PrefixSalesOrder),
			CustomerName:  customer,
			Date:          tx.Now(),
			Items:         items,
			TotalAmount:   total,
			Status:        entity.SalesStatusQuotation,
			PaymentStatus: entity.PaymentStatusUnpaid,
		}
		if err := tx.PutProducts(products); err != nil {
			return err
		}
		return tx.PutSalesOrders(append([]*entity.SalesOrder{created}, orders...))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("order_id", created.ID).
		Str("customer", created.CustomerName).
		Str("total", created.TotalAmount.String()).
		Int("lines", len(created.Items)).
		Msg("orden de venta creada")
	return created, nil
}

// Advance mueve la orden al siguiente estado. En Completed no hace nada.
func (uc *SalesUseCase) Advance(ctx context.Context, id string) (*entity.SalesOrder, error) {
	var so *entity.SalesOrder
	var from entity.SalesStatus
	moved := false
	err := uc.tx.Run(ctx, func(tx *uow.Tx) error {
		moved = false
		orders, err := tx.SalesOrders()
		if err != nil {
			return err
		}
		so = findOrder(orders, id)
		if so == nil {
			return domain.NotFoundf("orden de venta %s", id)
		}
		next, ok := so.Status.Next()
		if !ok {
			return nil
		}
		from = so.Status
		so.Status = next
		moved = true
		return tx.PutSalesOrders(orders)
	})
	if err != nil {
		return nil, err
	}
	if moved {
		uc.log.Info().Str("order_id", id).Str("from", string(from)).Str("to", string(so.Status)).Msg("orden de venta avanzada")
	}
	return so, nil
}

// ReceivePayment marca la orden como pagada y registra el ingreso en el libro.
// La orden debe estar en Invoice o Completed y no haber sido pagada.
func (uc *SalesUseCase) ReceivePayment(ctx context.Context, id string) (*entity.SalesOrder, error) {
	var so *entity.SalesOrder
	var income *entity.Transaction
	err := uc.tx.Run(ctx, func(tx *uow.Tx) error {
		orders, err := tx.SalesOrders()
		if err != nil {
			return err
		}
		so = findOrder(orders, id)
		if so == nil {
			return domain.NotFoundf("orden de venta %s", id)
		}
		if !so.Status.Invoiced() {
			return domain.InvalidTransitionf("sólo se cobran órdenes facturadas; %s está en %s", id, so.Status)
		}
		if so.PaymentStatus == entity.PaymentStatusPaid {
			return domain.AlreadyProcessedf("la orden %s ya fue pagada", id)
		}
		txs, err := tx.Transactions()
		if err != nil {
			return err
		}

		now := tx.Now()
		so.PaymentStatus = entity.PaymentStatusPaid
		so.PaidAt = &now
		income = &entity.Transaction{
			ID:          tx.NewID(uow.PrefixTransaction),
			Date:        now,
			Description: fmt.Sprintf("Payment Received - %s", so.CustomerName),
			Type:        entity.TransactionTypeIncome,
			Amount:      so.TotalAmount,
			Category:    entity.CategorySales,
			ReferenceID: so.ID,
		}
		if err := tx.PutSalesOrders(orders); err != nil {
			return err
		}
		return tx.PutTransactions(append([]*entity.Transaction{income}, txs...))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", id).Str("transaction_id", income.ID).Str("amount", income.Amount.String()).Msg("pago recibido")
	return so, nil
}

// GetByID obtiene una orden de venta.
func (uc *SalesUseCase) GetByID(ctx context.Context, id string) (*entity.SalesOrder, error) {
	var so *entity.SalesOrder
	err := uc.tx.View(ctx, func(tx *uow.Tx) error {
		orders, err := tx.SalesOrders()
		if err != nil {
			return err
		}
		so = findOrder(orders, id)
		if so == nil {
			return domain.NotFoundf("orden de venta %s", id)
		}
		return nil
	})
	return so, err
}

// List devuelve las órdenes de venta, la más reciente primero.
func (uc *SalesUseCase) List(ctx context.Context) ([]*entity.SalesOrder, error) {
	var out []*entity.SalesOrder
	err := uc.tx.View(ctx, func(tx *uow.Tx) error {
		var err error
		out, err = tx.SalesOrders()
		return err
	})
	return out, err
}

// InvoicePDF genera la factura imprimible de una orden en Invoice o Completed.
// Devuelve los bytes y el nombre de archivo sugerido.
func (uc *SalesUseCase) InvoicePDF(ctx context.Context, id string) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("sales: generador de PDF no configurado")
	}
	var so *entity.SalesOrder
	var customer *entity.Partner
	err := uc.tx.View(ctx, func(tx *uow.Tx) error {
		orders, err := tx.SalesOrders()
		if err != nil {
			return err
		}
		so = findOrder(orders, id)
		if so == nil {
			return domain.NotFoundf("orden de venta %s", id)
		}
		if !so.Status.Invoiced() {
			return domain.InvalidTransitionf("la orden %s aún no está facturada (%s)", id, so.Status)
		}
		partners, err := tx.Partners()
		if err != nil {
			return err
		}
		for _, p := range partners {
			if p.Type == entity.PartnerTypeCustomer && strings.EqualFold(p.Name, so.CustomerName) {
				customer = p
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.pdf.GenerateSalesInvoicePDF(ctx, so, customer)
	if err != nil {
		return nil, "", fmt.Errorf("sales: generar factura %s: %w", id, err)
	}
	return doc, fmt.Sprintf("factura-%s.pdf", so.ID), nil
}

func findOrder(orders []*entity.SalesOrder, id string) *entity.SalesOrder {
	for _, so := range orders {
		if so.ID == id {
			return so
		}
	}
	return nil
}
