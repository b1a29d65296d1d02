package uow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/domain/repository"
)

// Tx da acceso tipado a las colecciones dentro de una operación.
// Las lecturas se decodifican una sola vez; las escrituras quedan preparadas hasta el commit.
type Tx struct {
	ctx      context.Context
	store    repository.Session
	ids      *IDGenerator
	now      time.Time
	readOnly bool
	cache    map[string]any
	staged   map[string]any
}

// Now instante único de la operación (todas las fechas que escribe comparten este valor).
func (tx *Tx) Now() time.Time { return tx.now }

// NewID genera un identificador PREFIX-uuid.
func (tx *Tx) NewID(prefix string) string { return tx.ids.New(prefix) }

func (tx *Tx) Products() ([]*entity.Product, error) {
	return load[entity.Product](tx, repository.CollectionProducts)
}

func (tx *Tx) PutProducts(list []*entity.Product) error {
	return stage(tx, repository.CollectionProducts, list)
}

func (tx *Tx) Partners() ([]*entity.Partner, error) {
	return load[entity.Partner](tx, repository.CollectionPartners)
}

func (tx *Tx) PutPartners(list []*entity.Partner) error {
	return stage(tx, repository.CollectionPartners, list)
}

func (tx *Tx) PurchaseRequests() ([]*entity.PurchaseRequest, error) {
	return load[entity.PurchaseRequest](tx, repository.CollectionPurchaseRequests)
}

func (tx *Tx) PutPurchaseRequests(list []*entity.PurchaseRequest) error {
	return stage(tx, repository.CollectionPurchaseRequests, list)
}

func (tx *Tx) PurchaseOrders() ([]*entity.PurchaseOrder, error) {
	return load[entity.PurchaseOrder](tx, repository.CollectionPurchaseOrders)
}

func (tx *Tx) PutPurchaseOrders(list []*entity.PurchaseOrder) error {
	return stage(tx, repository.CollectionPurchaseOrders, list)
}

func (tx *Tx) SalesOrders() ([]*entity.SalesOrder, error) {
	return load[entity.SalesOrder](tx, repository.CollectionSalesOrders)
}

func (tx *Tx) PutSalesOrders(list []*entity.SalesOrder) error {
	return stage(tx, repository.CollectionSalesOrders, list)
}

func (tx *Tx) Transactions() ([]*entity.Transaction, error) {
	return load[entity.Transaction](tx, repository.CollectionTransactions)
}

func (tx *Tx) PutTransactions(list []*entity.Transaction) error {
	return stage(tx, repository.CollectionTransactions, list)
}

func (tx *Tx) Employees() ([]*entity.Employee, error) {
	return load[entity.Employee](tx, repository.CollectionEmployees)
}

func (tx *Tx) PutEmployees(list []*entity.Employee) error {
	return stage(tx, repository.CollectionEmployees, list)
}

func (tx *Tx) BOMs() ([]*entity.BOM, error) {
	return load[entity.BOM](tx, repository.CollectionBOMs)
}

func (tx *Tx) PutBOMs(list []*entity.BOM) error {
	return stage(tx, repository.CollectionBOMs, list)
}

func (tx *Tx) ProductionOrders() ([]*entity.ProductionOrder, error) {
	return load[entity.ProductionOrder](tx, repository.CollectionProductionOrders)
}

func (tx *Tx) PutProductionOrders(list []*entity.ProductionOrder) error {
	return stage(tx, repository.CollectionProductionOrders, list)
}

func (tx *Tx) PayrollRuns() ([]*entity.PayrollRun, error) {
	return load[entity.PayrollRun](tx, repository.CollectionPayrollRuns)
}

func (tx *Tx) PutPayrollRuns(list []*entity.PayrollRun) error {
	return stage(tx, repository.CollectionPayrollRuns, list)
}

func load[T any](tx *Tx, name string) ([]*T, error) {
	if v, ok := tx.staged[name]; ok {
		return v.([]*T), nil
	}
	if v, ok := tx.cache[name]; ok {
		return v.([]*T), nil
	}
	data, found, err := tx.store.Get(tx.ctx, name)
	if err != nil {
		return nil, fmt.Errorf("uow: leer %s: %w", name, err)
	}
	list := make([]*T, 0)
	if found && len(data) > 0 {
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("uow: decodificar %s: %w", name, err)
		}
		if list == nil {
			list = make([]*T, 0)
		}
	}
	tx.cache[name] = list
	return list, nil
}

func stage[T any](tx *Tx, name string, list []*T) error {
	if tx.readOnly {
		return ErrReadOnly
	}
	if list == nil {
		list = make([]*T, 0)
	}
	tx.staged[name] = list
	return nil
}

// commit serializa lo preparado y lo escribe en un solo PutBatch.
func (tx *Tx) commit(ctx context.Context) error {
	if len(tx.staged) == 0 {
		return nil
	}
	batch := make(map[string][]byte, len(tx.staged))
	for name, v := range tx.staged {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("uow: serializar %s: %w", name, err)
		}
		batch[name] = data
	}
	if err := tx.store.PutBatch(ctx, batch); err != nil {
		return fmt.Errorf("uow: commit: %w", err)
	}
	return nil
}
