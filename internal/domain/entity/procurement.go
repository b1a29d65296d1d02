package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PRStatus ciclo de vida de una solicitud de compra.
type PRStatus string

const (
	PRStatusPending       PRStatus = "Pending"
	PRStatusApproved      PRStatus = "Approved"
	PRStatusRejected      PRStatus = "Rejected"
	PRStatusConvertedToPO PRStatus = "Converted To PO"
)

// prTransitions tabla de transiciones permitidas. Rejected y ConvertedToPO son terminales.
var prTransitions = map[PRStatus][]PRStatus{
	PRStatusPending:  {PRStatusApproved, PRStatusRejected},
	PRStatusApproved: {PRStatusConvertedToPO},
}

// CanTransitionTo indica si la tabla permite pasar de s a next.
func (s PRStatus) CanTransitionTo(next PRStatus) bool {
	for _, allowed := range prTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal indica que no hay transiciones de salida.
func (s PRStatus) Terminal() bool {
	return len(prTransitions[s]) == 0
}

// POStatus estado de la orden de compra enviada al proveedor.
type POStatus string

const (
	POStatusPending   POStatus = "Pending"
	POStatusSent      POStatus = "Sent"
	POStatusCompleted POStatus = "Completed"
)

var poTransitions = map[POStatus][]POStatus{
	POStatusPending: {POStatusSent},
	POStatusSent:    {POStatusCompleted},
}

func (s POStatus) CanTransitionTo(next POStatus) bool {
	for _, allowed := range poTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PRItem línea de la solicitud. ProductName y Cost son snapshots al momento de crearla.
type PRItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Cost        decimal.Decimal `json:"cost"`
}

// Subtotal Quantity * Cost.
func (i PRItem) Subtotal() decimal.Decimal {
	return i.Cost.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// PurchaseRequest solicitud interna de compra sujeta a aprobación.
// TotalCost se calcula al crearla y no se recalcula.
type PurchaseRequest struct {
	ID        string          `json:"id"`
	Requester string          `json:"requester"`
	Date      time.Time       `json:"date"`
	Items     []PRItem        `json:"items"`
	TotalCost decimal.Decimal `json:"totalCost"`
	Status    PRStatus        `json:"status"`
	POID      string          `json:"poId,omitempty"`
}

// SumPRItems Σ(quantity × cost).
func SumPRItems(items []PRItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// PurchaseOrder orden enviada al proveedor; sólo nace de convertir una PR aprobada.
// TotalCost siempre es igual al de la PR de origen.
type PurchaseOrder struct {
	ID          string          `json:"id"`
	PRID        string          `json:"prId"`
	Supplier    string          `json:"supplier"` // snapshot del nombre
	Date        time.Time       `json:"date"`
	TotalCost   decimal.Decimal `json:"totalCost"`
	Status      POStatus        `json:"status"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
}
