package sales_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-core/internal/application/sales"
	"github.com/jhoicas/erp-core/internal/application/seed"
	"github.com/jhoicas/erp-core/internal/application/uow"
	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/repository"
	"github.com/jhoicas/erp-core/internal/infrastructure/memory"
	"github.com/jhoicas/erp-core/internal/infrastructure/redisstore"
)

// slowStore retrasa cada lectura de una sección exclusiva como lo haría un viaje de red.
type slowStore struct {
	*memory.CollectionStore
	delay time.Duration
}

func (s *slowStore) RunExclusive(ctx context.Context, fn func(repository.Session) error) error {
	return s.CollectionStore.RunExclusive(ctx, func(sess repository.Session) error {
		return fn(slowSession{Session: sess, delay: s.delay})
	})
}

type slowSession struct {
	repository.Session
	delay time.Duration
}

func (s slowSession) Get(ctx context.Context, name string) ([]byte, bool, error) {
	time.Sleep(s.delay)
	return s.Session.Get(ctx, name)
}

func salesOrderCount(t *testing.T, r *uow.TxRunner) int {
	t.Helper()
	var n int
	require.NoError(t, r.View(context.Background(), func(tx *uow.Tx) error {
		orders, err := tx.SalesOrders()
		n = len(orders)
		return err
	}))
	return n
}

func TestCreate_DosRunnersSobreElMismoStore(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	clock := uow.WithClock(func() time.Time { return now })
	store := &slowStore{CollectionStore: memory.NewCollectionStore(), delay: 20 * time.Millisecond}

	// Cada runner representa una réplica del API con su propio candado local.
	r1 := uow.NewTxRunner(store, clock)
	r2 := uow.NewTxRunner(store, clock)
	_, err := seed.Load(context.Background(), r1, seed.Demo(now), false, zerolog.Nop())
	require.NoError(t, err)

	ucs := []*sales.SalesUseCase{
		sales.NewSalesUseCase(r1, nil, zerolog.Nop()),
		sales.NewSalesUseCase(r2, nil, zerolog.Nop()),
	}
	errs := make([]error, len(ucs))
	var wg sync.WaitGroup
	for i, uc := range ucs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = uc.Create(context.Background(), order("3", 5))
		}()
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	}
	assert.Equal(t, 1, ok, "sólo una orden cabe en el stock de 5")
	assert.Equal(t, 0, stocks(t, r1)["3"])
	assert.Equal(t, 1, salesOrderCount(t, r2))
}

// interleaveStore ejecuta between una sola vez, justo después de que la sección exclusiva lee las órdenes.
type interleaveStore struct {
	*redisstore.CollectionStore
	once    sync.Once
	between func()
}

func (s *interleaveStore) RunExclusive(ctx context.Context, fn func(repository.Session) error) error {
	return s.CollectionStore.RunExclusive(ctx, func(sess repository.Session) error {
		return fn(interleaveSession{Session: sess, store: s})
	})
}

type interleaveSession struct {
	repository.Session
	store *interleaveStore
}

func (s interleaveSession) Get(ctx context.Context, name string) ([]byte, bool, error) {
	data, found, err := s.Session.Get(ctx, name)
	if name == repository.CollectionSalesOrders {
		s.store.once.Do(s.store.between)
	}
	return data, found, err
}

func TestCreate_RedisReintentaTrasEscrituraConcurrente(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	clock := uow.WithClock(func() time.Time { return now })
	shared := redisstore.NewCollectionStore(client, "erp:")

	other := uow.NewTxRunner(shared, clock)
	_, err := seed.Load(context.Background(), other, seed.Demo(now), false, zerolog.Nop())
	require.NoError(t, err)
	otherUC := sales.NewSalesUseCase(other, nil, zerolog.Nop())

	var otherErr error
	store := &interleaveStore{CollectionStore: shared}
	store.between = func() {
		// La otra réplica vende todo el stock mientras esta ya leyó productos y órdenes.
		_, otherErr = otherUC.Create(context.Background(), order("3", 5))
	}
	uc := sales.NewSalesUseCase(uow.NewTxRunner(store, clock), nil, zerolog.Nop())

	_, err = uc.Create(context.Background(), order("3", 5))
	require.NoError(t, otherErr)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock, "el reintento debe ver el stock ya vendido")
	assert.Equal(t, 0, stocks(t, other)["3"])
	assert.Equal(t, 1, salesOrderCount(t, other), "ninguna orden se pierde")
}
