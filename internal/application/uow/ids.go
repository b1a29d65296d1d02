package uow

import "github.com/google/uuid"

// Prefijos de identificadores por tipo de registro.
const (
	PrefixProduct         = "PRD"
	PrefixPartner         = "PTN"
	PrefixPurchaseRequest = "PR"
	PrefixPurchaseOrder   = "PO"
	PrefixSalesOrder      = "SO"
	PrefixTransaction     = "TX"
	PrefixEmployee        = "EMP"
	PrefixBOM             = "BOM"
	PrefixProductionOrder = "MO"
	PrefixPayrollRun      = "PAY"
)

// IDGenerator produce IDs resistentes a colisiones (UUID v4) con prefijo legible.
type IDGenerator struct {
	next func() string
}

// NewIDGenerator usa uuid.NewString.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{next: uuid.NewString}
}

// New devuelve prefix-<uuid>.
func (g *IDGenerator) New(prefix string) string {
	return prefix + "-" + g.next()
}
