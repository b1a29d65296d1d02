// Package storage elige el backend del CollectionStore según STORE_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/erp-core/internal/domain/repository"
	"github.com/jhoicas/erp-core/internal/infrastructure/memory"
	"github.com/jhoicas/erp-core/internal/infrastructure/postgres"
	"github.com/jhoicas/erp-core/internal/infrastructure/redisstore"
	"github.com/jhoicas/erp-core/pkg/config"
)

// Open construye el store configurado junto con la función que libera sus conexiones.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (repository.CollectionStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		pg := postgres.NewCollectionStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info().Str("driver", cfg.Store.Driver).Int32("max_conns", pool.Config().MaxConns).Msg("store listo")
		return pg, pool.Close, nil

	case config.StoreDriverRedis:
		client, err := redisstore.NewClient(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("driver", cfg.Store.Driver).Str("addr", cfg.Redis.Addr).Str("prefix", cfg.Redis.Prefix).Msg("store listo")
		return redisstore.NewCollectionStore(client, cfg.Redis.Prefix), func() { _ = client.Close() }, nil

	case config.StoreDriverMemory, "":
		log.Warn().Str("driver", config.StoreDriverMemory).Msg("store en memoria: los datos se pierden al reiniciar")
		return memory.NewCollectionStore(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("store driver desconocido: %q", cfg.Store.Driver)
}
