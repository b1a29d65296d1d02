// Package redisstore implementa el CollectionStore sobre Redis: una llave por colección.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/erp-core/internal/domain/repository"
)

var _ repository.ExclusiveStore = (*CollectionStore)(nil)

// maxAttempts reintentos de una sección exclusiva cuando otra escritura toca las llaves vigiladas.
const maxAttempts = 5

// Config conexión a Redis.
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // prefijo de llaves, ej. "erp:"
}

// NewClient crea el cliente y verifica la conexión con PING.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}

// CollectionStore guarda cada colección como un string JSON bajo <prefix><nombre>.
type CollectionStore struct {
	client redis.UniversalClient
	prefix string
}

// NewCollectionStore construye el adaptador sobre un cliente existente.
func NewCollectionStore(client redis.UniversalClient, prefix string) *CollectionStore {
	return &CollectionStore{client: client, prefix: prefix}
}

func (s *CollectionStore) key(name string) string {
	return s.prefix + name
}

func (s *CollectionStore) Get(ctx context.Context, name string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis: get %s: %w", name, err)
	}
	return data, true, nil
}

func (s *CollectionStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.client.Set(ctx, s.key(name), data, 0).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", name, err)
	}
	return nil
}

// PutBatch escribe todas las colecciones en un solo MULTI/EXEC.
func (s *CollectionStore) PutBatch(ctx context.Context, batch map[string][]byte) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for name, data := range batch {
			pipe.Set(ctx, s.key(name), data, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: multi/exec: %w", err)
	}
	return nil
}

// RunExclusive ejecuta fn con control optimista: cada colección leída queda bajo WATCH y el
// PutBatch final va en MULTI/EXEC. Si otro cliente modificó alguna llave vigilada, EXEC se
// aborta sin escribir nada y fn se repite sobre los datos nuevos; agotados los intentos
// devuelve repository.ErrConflict.
func (s *CollectionStore) RunExclusive(ctx context.Context, fn func(repository.Session) error) error {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			return fn(&watchSession{store: s, tx: tx})
		})
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return fmt.Errorf("redis: %d intentos: %w", maxAttempts, repository.ErrConflict)
}

type watchSession struct {
	store *CollectionStore
	tx    *redis.Tx
}

func (w *watchSession) Get(ctx context.Context, name string) ([]byte, bool, error) {
	key := w.store.key(name)
	if err := w.tx.Watch(ctx, key).Err(); err != nil {
		return nil, false, fmt.Errorf("redis: watch %s: %w", name, err)
	}
	data, err := w.tx.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis: get %s: %w", name, err)
	}
	return data, true, nil
}

func (w *watchSession) PutBatch(ctx context.Context, batch map[string][]byte) error {
	_, err := w.tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for name, data := range batch {
			pipe.Set(ctx, w.store.key(name), data, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: multi/exec: %w", err)
	}
	return nil
}
