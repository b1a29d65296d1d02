package uow_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-core/internal/application/uow"
	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/domain/inventory"
	"github.com/jhoicas/erp-core/internal/domain/repository"
	"github.com/jhoicas/erp-core/internal/infrastructure/memory"
)

// failingStore es un CollectionStore simple (sin sección exclusiva) cuyo PutBatch puede fallar.
type failingStore struct {
	inner    *memory.CollectionStore
	batchErr error
}

func (s *failingStore) Get(ctx context.Context, name string) ([]byte, bool, error) {
	return s.inner.Get(ctx, name)
}

func (s *failingStore) Put(ctx context.Context, name string, data []byte) error {
	return s.inner.Put(ctx, name, data)
}

func (s *failingStore) PutBatch(ctx context.Context, batch map[string][]byte) error {
	if s.batchErr != nil {
		return s.batchErr
	}
	return s.inner.PutBatch(ctx, batch)
}

func seedProduct(t *testing.T, r *uow.TxRunner, id string, stock int) {
	t.Helper()
	require.NoError(t, r.Run(context.Background(), func(tx *uow.Tx) error {
		products, err := tx.Products()
		if err != nil {
			return err
		}
		return tx.PutProducts(append(products, &entity.Product{ID: id, Name: id, Stock: stock}))
	}))
}

func stockOf(t *testing.T, r *uow.TxRunner, id string) int {
	t.Helper()
	var stock int
	require.NoError(t, r.View(context.Background(), func(tx *uow.Tx) error {
		products, err := tx.Products()
		if err != nil {
			return err
		}
		for _, p := range products {
			if p.ID == id {
				stock = p.Stock
			}
		}
		return nil
	}))
	return stock
}

func TestRun_CommitSoloSiNoHayError(t *testing.T) {
	store := memory.NewCollectionStore()
	r := uow.NewTxRunner(store)
	seedProduct(t, r, "P1", 10)

	boom := errors.New("boom")
	err := r.Run(context.Background(), func(tx *uow.Tx) error {
		products, err := tx.Products()
		if err != nil {
			return err
		}
		products[0].Stock = 0
		if err := tx.PutProducts(products); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 10, stockOf(t, r, "P1"), "un error no debe persistir nada")
}

func TestRun_EscribeVariasColeccionesJuntas(t *testing.T) {
	store := memory.NewCollectionStore()
	r := uow.NewTxRunner(store)

	require.NoError(t, r.Run(context.Background(), func(tx *uow.Tx) error {
		if err := tx.PutSalesOrders([]*entity.SalesOrder{{ID: "SO-1"}}); err != nil {
			return err
		}
		return tx.PutTransactions([]*entity.Transaction{{ID: "TX-1", ReferenceID: "SO-1"}})
	}))

	_, found, err := store.Get(context.Background(), repository.CollectionSalesOrders)
	require.NoError(t, err)
	assert.True(t, found)
	_, found, err = store.Get(context.Background(), repository.CollectionTransactions)
	require.NoError(t, err)
	assert.True(t, found)
	_, found, _ = store.Get(context.Background(), repository.CollectionProducts)
	assert.False(t, found, "sólo se escriben las colecciones preparadas")
}

func TestRun_FalloDelStoreSePropaga(t *testing.T) {
	store := &failingStore{inner: memory.NewCollectionStore(), batchErr: errors.New("disco lleno")}
	r := uow.NewTxRunner(store)

	err := r.Run(context.Background(), func(tx *uow.Tx) error {
		return tx.PutProducts([]*entity.Product{{ID: "P1"}})
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disco lleno")
}

func TestRun_ContextoCancelado(t *testing.T) {
	r := uow.NewTxRunner(memory.NewCollectionStore())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := r.Run(ctx, func(tx *uow.Tx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestView_NoPermiteEscribir(t *testing.T) {
	r := uow.NewTxRunner(memory.NewCollectionStore())
	err := r.View(context.Background(), func(tx *uow.Tx) error {
		return tx.PutPartners(nil)
	})
	assert.ErrorIs(t, err, uow.ErrReadOnly)
}

func TestTx_ColeccionAusenteEsListaVacia(t *testing.T) {
	r := uow.NewTxRunner(memory.NewCollectionStore())
	require.NoError(t, r.View(context.Background(), func(tx *uow.Tx) error {
		boms, err := tx.BOMs()
		require.NoError(t, err)
		assert.NotNil(t, boms)
		assert.Empty(t, boms)
		return nil
	}))
}

func TestTx_RelojEIdentificadores(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	r := uow.NewTxRunner(memory.NewCollectionStore(), uow.WithClock(func() time.Time { return fixed }))

	seen := make(map[string]bool)
	require.NoError(t, r.Run(context.Background(), func(tx *uow.Tx) error {
		assert.Equal(t, fixed, tx.Now())
		for i := 0; i < 100; i++ {
			id := tx.NewID(uow.PrefixSalesOrder)
			assert.True(t, strings.HasPrefix(id, "SO-"))
			assert.False(t, seen[id], "id repetido")
			seen[id] = true
		}
		return nil
	}))
}

func TestRun_SerializaEscrituras(t *testing.T) {
	r := uow.NewTxRunner(memory.NewCollectionStore())
	seedProduct(t, r, "P1", 30)

	var wg sync.WaitGroup
	var mu sync.Mutex
	failures := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := r.Run(context.Background(), func(tx *uow.Tx) error {
				products, err := tx.Products()
				if err != nil {
					return err
				}
				plan := inventory.NewStockPlan(products)
				if err := plan.Add("P1", -1); err != nil {
					return err
				}
				if _, err := plan.Commit(tx.Now()); err != nil {
					return err
				}
				return tx.PutProducts(products)
			})
			if err != nil {
				mu.Lock()
				failures++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, stockOf(t, r, "P1"))
	assert.Equal(t, 20, failures, "sólo 30 descuentos caben en el stock")
}

// countingStore cuenta las secciones exclusivas y puede fallar el commit dentro de ellas.
type countingStore struct {
	*memory.CollectionStore
	exclusive int
	batchErr  error
}

func (s *countingStore) RunExclusive(ctx context.Context, fn func(repository.Session) error) error {
	s.exclusive++
	return s.CollectionStore.RunExclusive(ctx, func(sess repository.Session) error {
		return fn(failingSession{Session: sess, err: s.batchErr})
	})
}

type failingSession struct {
	repository.Session
	err error
}

func (s failingSession) PutBatch(ctx context.Context, batch map[string][]byte) error {
	if s.err != nil {
		return s.err
	}
	return s.Session.PutBatch(ctx, batch)
}

func TestRun_UsaLaSeccionExclusivaDelStore(t *testing.T) {
	store := &countingStore{CollectionStore: memory.NewCollectionStore()}
	r := uow.NewTxRunner(store)
	seedProduct(t, r, "P1", 3)
	assert.Equal(t, 1, store.exclusive)

	assert.Equal(t, 3, stockOf(t, r, "P1"))
	assert.Equal(t, 1, store.exclusive, "View no abre secciones exclusivas")

	store.batchErr = errors.New("conflicto")
	err := r.Run(context.Background(), func(tx *uow.Tx) error {
		return tx.PutProducts(nil)
	})
	require.Error(t, err)
	assert.Equal(t, 3, stockOf(t, r, "P1"), "el commit fallido no escribe")
}

func TestRun_DosRunnersNoPierdenEscrituras(t *testing.T) {
	store := memory.NewCollectionStore()
	r1 := uow.NewTxRunner(store)
	r2 := uow.NewTxRunner(store)
	seedProduct(t, r1, "P1", 40)

	var wg sync.WaitGroup
	var mu sync.Mutex
	failures := 0
	for i := 0; i < 60; i++ {
		r := r1
		if i%2 == 1 {
			r = r2
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := r.Run(context.Background(), func(tx *uow.Tx) error {
				products, err := tx.Products()
				if err != nil {
					return err
				}
				plan := inventory.NewStockPlan(products)
				if err := plan.Add("P1", -1); err != nil {
					return err
				}
				if _, err := plan.Commit(tx.Now()); err != nil {
					return err
				}
				return tx.PutProducts(products)
			})
			if err != nil {
				mu.Lock()
				failures++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, stockOf(t, r2, "P1"))
	assert.Equal(t, 20, failures, "cada descuento exitoso se refleja en el stock")
}
