package redisstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-core/internal/domain/repository"
	"github.com/jhoicas/erp-core/internal/infrastructure/redisstore"
)

func newStore(t *testing.T) (*redisstore.CollectionStore, *miniredis.Miniredis) {
	t.Helper()
	store, _, mr := newStoreWithClient(t)
	return store, mr
}

func newStoreWithClient(t *testing.T) (*redisstore.CollectionStore, *redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redisstore.NewCollectionStore(client, "erp:"), client, mr
}

func TestCollectionStore_GetAusente(t *testing.T) {
	store, _ := newStore(t)

	data, found, err := store.Get(context.Background(), "products")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, data)
}

func TestCollectionStore_PutYGet(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "products", []byte(`[{"id":"1"}]`)))

	data, found, err := store.Get(ctx, "products")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `[{"id":"1"}]`, string(data))

	raw, err := mr.Get("erp:products")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1"}]`, raw, "la llave debe llevar el prefijo")
}

func TestCollectionStore_PutBatch(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	err := store.PutBatch(ctx, map[string][]byte{
		"sales-orders": []byte(`[{"id":"SO-1"}]`),
		"products":     []byte(`[{"id":"1","stock":90}]`),
	})
	require.NoError(t, err)

	for _, name := range []string{"sales-orders", "products"} {
		_, found, err := store.Get(ctx, name)
		require.NoError(t, err)
		assert.True(t, found, name)
	}
}

func TestNewClient_Ping(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := redisstore.NewClient(context.Background(), redisstore.Config{Addr: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	mr.Close()
	_, err = redisstore.NewClient(context.Background(), redisstore.Config{Addr: mr.Addr()})
	assert.Error(t, err, "sin servidor el ping debe fallar")
}

func TestRunExclusive_ReintentaSiCambiaLaLlaveLeida(t *testing.T) {
	store, client, _ := newStoreWithClient(t)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "products", []byte(`[{"id":"1","stock":5}]`)))

	attempts := 0
	err := store.RunExclusive(ctx, func(s repository.Session) error {
		attempts++
		data, found, err := s.Get(ctx, "products")
		require.NoError(t, err)
		require.True(t, found)
		if attempts == 1 {
			// Otro cliente escribe entre la lectura y el commit.
			require.NoError(t, client.Set(ctx, "erp:products", `[{"id":"1","stock":0}]`, 0).Err())
		} else {
			assert.JSONEq(t, `[{"id":"1","stock":0}]`, string(data), "el reintento lee el valor nuevo")
		}
		return s.PutBatch(ctx, map[string][]byte{"sales-orders": []byte(`[{"id":"SO-1"}]`)})
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)

	data, _, err := store.Get(ctx, "products")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","stock":0}]`, string(data), "el primer intento no escribió nada")
}

func TestRunExclusive_ConflictoPersistente(t *testing.T) {
	store, client, _ := newStoreWithClient(t)
	ctx := context.Background()

	attempts := 0
	err := store.RunExclusive(ctx, func(s repository.Session) error {
		attempts++
		if _, _, err := s.Get(ctx, "products"); err != nil {
			return err
		}
		require.NoError(t, client.Set(ctx, "erp:products", `[]`, 0).Err())
		return s.PutBatch(ctx, map[string][]byte{"products": []byte(`[{"id":"x"}]`)})
	})
	assert.ErrorIs(t, err, repository.ErrConflict)
	assert.Equal(t, 5, attempts)

	data, _, err := store.Get(ctx, "products")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestRunExclusive_ErrorDeFnNoSeReintenta(t *testing.T) {
	store, _ := newStore(t)
	boom := errors.New("boom")

	attempts := 0
	err := store.RunExclusive(context.Background(), func(s repository.Session) error {
		attempts++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
}
