package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/erp-core/internal/domain/repository"
)

var _ repository.ExclusiveStore = (*CollectionStore)(nil)

// Querier subconjunto común de pgxpool.Pool y pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS erp_collections (
		name       TEXT PRIMARY KEY,
		data       JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

const upsertSQL = `
	INSERT INTO erp_collections (name, data, updated_at)
	VALUES ($1, $2, now())
	ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`

// writerLockKey clave del advisory lock que serializa a los escritores de todas las réplicas.
const writerLockKey int64 = 0x4552_5043_4f4c // "ERPCOL"

// CollectionStore guarda cada colección como una fila JSONB de erp_collections.
type CollectionStore struct {
	pool *pgxpool.Pool
}

// NewCollectionStore construye el adaptador de persistencia sobre el pool.
func NewCollectionStore(pool *pgxpool.Pool) *CollectionStore {
	return &CollectionStore{pool: pool}
}

// EnsureSchema crea la tabla si no existe.
func (s *CollectionStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("crear erp_collections: %w", err)
	}
	return nil
}

func (s *CollectionStore) Get(ctx context.Context, name string) ([]byte, bool, error) {
	return get(ctx, s.pool, name)
}

func (s *CollectionStore) Put(ctx context.Context, name string, data []byte) error {
	return put(ctx, s.pool, name, data)
}

// PutBatch inicia una transacción, hace upsert de cada colección y hace Commit o Rollback.
func (s *CollectionStore) PutBatch(ctx context.Context, batch map[string][]byte) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for name, data := range batch {
		if err := put(ctx, tx, name, data); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunExclusive abre una transacción, toma pg_advisory_xact_lock y ejecuta fn con lecturas
// y escrituras dentro de esa misma transacción. El candado se libera con el Commit o Rollback.
func (s *CollectionStore) RunExclusive(ctx context.Context, fn func(repository.Session) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, writerLockKey); err != nil {
		return fmt.Errorf("advisory lock: %w", err)
	}
	if err := fn(txSession{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txSession lee y escribe a través de la transacción que tiene el candado.
type txSession struct {
	tx pgx.Tx
}

func (s txSession) Get(ctx context.Context, name string) ([]byte, bool, error) {
	return get(ctx, s.tx, name)
}

func (s txSession) PutBatch(ctx context.Context, batch map[string][]byte) error {
	for name, data := range batch {
		if err := put(ctx, s.tx, name, data); err != nil {
			return err
		}
	}
	return nil
}

func get(ctx context.Context, q Querier, name string) ([]byte, bool, error) {
	var data []byte
	err := q.QueryRow(ctx, `SELECT data FROM erp_collections WHERE name = $1`, name).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get collection %s: %w", name, err)
	}
	return data, true, nil
}

func put(ctx context.Context, q Querier, name string, data []byte) error {
	// string => el parámetro viaja como texto y PostgreSQL lo convierte a JSONB.
	if _, err := q.Exec(ctx, upsertSQL, name, string(data)); err != nil {
		return fmt.Errorf("upsert collection %s: %w", name, err)
	}
	return nil
}
