package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/erp-core/internal/application/accounting"
	appanalytics "github.com/jhoicas/erp-core/internal/application/analytics"
	"github.com/jhoicas/erp-core/internal/application/inventory"
	"github.com/jhoicas/erp-core/internal/application/manufacturing"
	"github.com/jhoicas/erp-core/internal/application/partner"
	"github.com/jhoicas/erp-core/internal/application/payroll"
	"github.com/jhoicas/erp-core/internal/application/procurement"
	"github.com/jhoicas/erp-core/internal/application/sales"
	"github.com/jhoicas/erp-core/internal/application/seed"
	"github.com/jhoicas/erp-core/internal/application/uow"
	infrapdf "github.com/jhoicas/erp-core/internal/infrastructure/pdf"
	"github.com/jhoicas/erp-core/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/erp-core/internal/interfaces/http"
	"github.com/jhoicas/erp-core/pkg/config"
	"github.com/jhoicas/erp-core/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		AppName: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, closeStore, err := storage.Open(ctx, cfg, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir store")
	}
	defer closeStore()

	txRunner := uow.NewTxRunner(store)

	if cfg.App.SeedDemo {
		loaded, err := seed.Load(ctx, txRunner, seed.Demo(time.Now()), false, log.Component("seed"))
		if err != nil {
			log.Fatal().Err(err).Msg("cargar datos demo")
		}
		log.Info().Bool("loaded", loaded).Msg("datos demo")
	}

	productUC := inventory.NewProductUseCase(txRunner, log.Component("products"))
	replenishmentUC := inventory.NewReplenishmentUseCase(txRunner, cfg.Inventory.LowStockThreshold)
	partnerUC := partner.NewPartnerUseCase(txRunner, log.Component("partners"))
	procurementUC := procurement.NewProcurementUseCase(txRunner, log.Component("procurement"))

	// PDF: factura imprimible de la orden de venta
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	salesUC := sales.NewSalesUseCase(txRunner, pdfGenerator, log.Component("sales"))

	manufacturingUC := manufacturing.NewManufacturingUseCase(txRunner, log.Component("manufacturing"))
	payrollUC := payroll.NewPayrollUseCase(txRunner, log.Component("payroll"))
	ledgerUC := accounting.NewLedgerUseCase(txRunner, log.Component("accounting"))
	dashboardUC := appanalytics.NewDashboardUseCase(txRunner, cfg.Inventory.LowStockThreshold)
	marginsUC := appanalytics.NewMarginsUseCase(txRunner)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:       productUC,
		Replenishment:   replenishmentUC,
		PartnerUC:       partnerUC,
		ProcurementUC:   procurementUC,
		SalesUC:         salesUC,
		ManufacturingUC: manufacturingUC,
		PayrollUC:       payrollUC,
		LedgerUC:        ledgerUC,
		DashboardUC:     dashboardUC,
		MarginsUC:       marginsUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
