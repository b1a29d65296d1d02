// Package uow implementa la unidad de trabajo sobre el CollectionStore: cada operación
// de negocio corre como sección crítica "leer → validar → mutar en memoria → escribir".
package uow

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jhoicas/erp-core/internal/domain/repository"
)

// ErrReadOnly se devuelve al intentar escribir desde View.
var ErrReadOnly = errors.New("uow: transacción de sólo lectura")

// TxRunner serializa las operaciones que escriben (un solo escritor) y permite lecturas
// concurrentes. Sólo persiste las colecciones que la función marcó, y sólo si no falló.
type TxRunner struct {
	mu    sync.RWMutex
	store repository.CollectionStore
	ids   *IDGenerator
	clock func() time.Time
}

// Option configura el runner.
type Option func(*TxRunner)

// WithClock reemplaza time.Now (útil en tests).
func WithClock(clock func() time.Time) Option {
	return func(r *TxRunner) { r.clock = clock }
}

// NewTxRunner construye el runner con el store.
func NewTxRunner(store repository.CollectionStore, opts ...Option) *TxRunner {
	r := &TxRunner{
		store: store,
		ids:   NewIDGenerator(),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run toma el candado de escritura, ejecuta fn y hace commit de lo preparado.
// Si fn devuelve error no se escribe ninguna colección.
//
// Cuando el store es compartido entre procesos (repository.ExclusiveStore) la sección
// crítica se extiende al backend; ante un conflicto optimista fn se vuelve a ejecutar
// sobre datos frescos, por lo que sólo debe comunicarse hacia afuera a través de tx.
func (r *TxRunner) Run(ctx context.Context, fn func(tx *Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	if ex, ok := r.store.(repository.ExclusiveStore); ok {
		return ex.RunExclusive(ctx, func(s repository.Session) error {
			return r.runOnce(ctx, s, fn)
		})
	}
	return r.runOnce(ctx, r.store, fn)
}

func (r *TxRunner) runOnce(ctx context.Context, s repository.Session, fn func(tx *Tx) error) error {
	tx := r.newTx(ctx, s, false)
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	// Una vez iniciado, el commit no se interrumpe por cancelación del caller.
	return tx.commit(context.WithoutCancel(ctx))
}

// View ejecuta fn con candado compartido; cualquier Put devuelve ErrReadOnly.
func (r *TxRunner) View(ctx context.Context, fn func(tx *Tx) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(r.newTx(ctx, r.store, true))
}

func (r *TxRunner) newTx(ctx context.Context, s repository.Session, readOnly bool) *Tx {
	return &Tx{
		ctx:      ctx,
		store:    s,
		ids:      r.ids,
		now:      r.clock(),
		readOnly: readOnly,
		cache:    make(map[string]any),
		staged:   make(map[string]any),
	}
}
