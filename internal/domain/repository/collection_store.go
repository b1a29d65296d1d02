package repository

import (
	"context"
	"errors"
)

// Nombres de las colecciones persistidas; cada una es un arreglo JSON de registros.
const (
	CollectionProducts         = "products"
	CollectionPartners         = "partners"
	CollectionPurchaseRequests = "purchase-requests"
	CollectionPurchaseOrders   = "purchase-orders"
	CollectionSalesOrders      = "sales-orders"
	CollectionTransactions     = "transactions"
	CollectionEmployees        = "employees"
	CollectionBOMs             = "boms"
	CollectionProductionOrders = "production-orders"
	CollectionPayrollRuns      = "payroll-runs"
)

// CollectionStore define el puerto de persistencia durable (DIP): get/put de colecciones
// con nombre, serializadas como JSON. No ofrece transacciones propias; la atomicidad
// entre colecciones la da PutBatch dentro de una sola operación.
type CollectionStore interface {
	// Get devuelve el JSON de la colección; found=false si nunca se escribió.
	Get(ctx context.Context, name string) (data []byte, found bool, err error)
	Put(ctx context.Context, name string, data []byte) error
	// PutBatch escribe varias colecciones de una vez (todo o nada según el backend).
	PutBatch(ctx context.Context, batch map[string][]byte) error
}

// ErrConflict otro proceso escribió las colecciones leídas antes del commit y los reintentos se agotaron.
var ErrConflict = errors.New("conflicto de escritura concurrente")

// Session lecturas y escritura final de una sección crítica exclusiva del backend.
type Session interface {
	Get(ctx context.Context, name string) (data []byte, found bool, err error)
	PutBatch(ctx context.Context, batch map[string][]byte) error
}

// ExclusiveStore lo implementan los backends que pueden compartirse entre procesos.
// RunExclusive ejecuta fn de modo que ninguna otra sección exclusiva, de este u otro
// proceso, intercale escrituras entre sus lecturas y su PutBatch. fn puede ejecutarse
// más de una vez (reintento optimista) y debe ser idempotente respecto a su estado externo.
type ExclusiveStore interface {
	CollectionStore
	RunExclusive(ctx context.Context, fn func(s Session) error) error
}
