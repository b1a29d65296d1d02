// seed carga el dataset de demostración en el store configurado (STORE_DRIVER).
//
// Uso: go run ./cmd/seed [-force]
// Sin -force no toca un store que ya tiene productos.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/jhoicas/erp-core/internal/application/seed"
	"github.com/jhoicas/erp-core/internal/application/uow"
	"github.com/jhoicas/erp-core/internal/infrastructure/storage"
	"github.com/jhoicas/erp-core/pkg/config"
	"github.com/jhoicas/erp-core/pkg/logger"
)

func main() {
	force := flag.Bool("force", false, "reemplazar los datos existentes")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, AppName: cfg.App.Name})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, closeStore, err := storage.Open(ctx, cfg, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir store")
	}
	defer closeStore()

	loaded, err := seed.Load(ctx, uow.NewTxRunner(store), seed.Demo(time.Now()), *force, log.Component("seed"))
	if err != nil {
		log.Fatal().Err(err).Msg("cargar datos demo")
	}
	if !loaded {
		log.Warn().Msg("el store ya tiene productos; use -force para reemplazarlos")
		return
	}
	log.Info().Str("store", cfg.Store.Driver).Msg("datos demo cargados")
}
