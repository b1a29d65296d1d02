package sales

import (
	"context"

	"github.com/jhoicas/erp-core/internal/domain/entity"
)

// InvoicePDFGenerator genera la representación imprimible de una orden facturada.
// customer puede ser nil si el nombre de la orden no está en el directorio de socios.
type InvoicePDFGenerator interface {
	GenerateSalesInvoicePDF(ctx context.Context, order *entity.SalesOrder, customer *entity.Partner) ([]byte, error)
}
