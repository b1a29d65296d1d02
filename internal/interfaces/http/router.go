package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-core/internal/application/accounting"
	appanalytics "github.com/jhoicas/erp-core/internal/application/analytics"
	"github.com/jhoicas/erp-core/internal/application/inventory"
	"github.com/jhoicas/erp-core/internal/application/manufacturing"
	"github.com/jhoicas/erp-core/internal/application/partner"
	"github.com/jhoicas/erp-core/internal/application/payroll"
	"github.com/jhoicas/erp-core/internal/application/procurement"
	"github.com/jhoicas/erp-core/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC       *inventory.ProductUseCase
	Replenishment   *inventory.ReplenishmentUseCase
	PartnerUC       *partner.PartnerUseCase
	ProcurementUC   *procurement.ProcurementUseCase
	SalesUC         *sales.SalesUseCase
	ManufacturingUC *manufacturing.ManufacturingUseCase
	PayrollUC       *payroll.PayrollUseCase
	LedgerUC        *accounting.LedgerUseCase
	DashboardUC     *appanalytics.DashboardUseCase
	MarginsUC       *appanalytics.MarginsUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Post("/:id/adjust", productHandler.AdjustStock)

	// Inventory
	inventoryHandler := NewInventoryHandler(deps.Replenishment)
	api.Get("/inventory/replenishment", inventoryHandler.GetReplenishmentSuggestions)

	// Partners
	partners := api.Group("/partners")
	partnerHandler := NewPartnerHandler(deps.PartnerUC)
	partners.Post("/", partnerHandler.Create)
	partners.Get("/", partnerHandler.List)

	// Procurement
	procHandler := NewProcurementHandler(deps.ProcurementUC)
	prs := api.Group("/purchase-requests")
	prs.Post("/", procHandler.CreatePR)
	prs.Get("/", procHandler.ListPRs)
	prs.Post("/:id/approve", procHandler.ApprovePR)
	prs.Post("/:id/reject", procHandler.RejectPR)
	prs.Post("/:id/purchase-order", procHandler.GeneratePO)
	pos := api.Group("/purchase-orders")
	pos.Get("/", procHandler.ListPOs)
	pos.Post("/:id/complete", procHandler.CompletePO)

	// Sales
	salesOrders := api.Group("/sales-orders")
	salesHandler := NewSalesHandler(deps.SalesUC)
	salesOrders.Post("/", salesHandler.Create)
	salesOrders.Get("/", salesHandler.List)
	salesOrders.Get("/:id", salesHandler.GetByID)
	salesOrders.Post("/:id/advance", salesHandler.Advance)
	salesOrders.Post("/:id/payment", salesHandler.ReceivePayment)
	salesOrders.Get("/:id/invoice.pdf", salesHandler.DownloadInvoicePDF)

	// Manufacturing
	mfgHandler := NewManufacturingHandler(deps.ManufacturingUC)
	boms := api.Group("/boms")
	boms.Post("/", mfgHandler.CreateBOM)
	boms.Get("/", mfgHandler.ListBOMs)
	mos := api.Group("/production-orders")
	mos.Post("/", mfgHandler.CreateProductionOrder)
	mos.Get("/", mfgHandler.ListProductionOrders)
	mos.Post("/:id/complete", mfgHandler.CompleteProduction)

	// HR / Payroll
	payrollHandler := NewPayrollHandler(deps.PayrollUC)
	employees := api.Group("/employees")
	employees.Post("/", payrollHandler.AddEmployee)
	employees.Get("/", payrollHandler.ListEmployees)
	employees.Post("/:id/terminate", payrollHandler.TerminateEmployee)
	api.Post("/payroll/run", payrollHandler.RunPayroll)
	api.Get("/payroll/runs", payrollHandler.ListPayrollRuns)

	// Accounting
	txs := api.Group("/transactions")
	accHandler := NewAccountingHandler(deps.LedgerUC)
	txs.Get("/", accHandler.ListTransactions)
	txs.Get("/summary", accHandler.Summary)
	txs.Post("/expenses", accHandler.AddExpense)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", dashboardHandler.GetSummary)

	// Analytics
	analyticsHandler := NewAnalyticsHandler(deps.MarginsUC)
	api.Get("/analytics/margins", analyticsHandler.GetMargins)
}
