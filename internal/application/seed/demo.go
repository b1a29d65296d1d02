// Package seed contiene el conjunto de datos de demostración y su carga en el store.
package seed

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-core/internal/application/uow"
	"github.com/jhoicas/erp-core/internal/domain/entity"
)

// Dataset colecciones iniciales.
type Dataset struct {
	Products         []*entity.Product
	Partners         []*entity.Partner
	PurchaseRequests []*entity.PurchaseRequest
	Employees        []*entity.Employee
	BOMs             []*entity.BOM
	Transactions     []*entity.Transaction
}

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func money(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// Demo devuelve los datos de demostración: tres productos terminados, tres materias primas
// (RM-001..RM-003) que consume el BOM-001, dos clientes, dos proveedores, una PR pendiente,
// dos empleados y dos gastos operativos.
func Demo(now time.Time) Dataset {
	product := func(id, sku, name, category string, price, cost int64, stock int, ptype entity.ProductType) *entity.Product {
		return &entity.Product{
			ID: id, SKU: sku, Name: name, Category: category,
			Price: money(price), Cost: money(cost), Stock: stock,
			Status: entity.ProductStatusActive, Type: ptype,
			CreatedAt: now, UpdatedAt: now,
		}
	}
	partner := func(id, name string, ptype entity.PartnerType, email, phone, address string) *entity.Partner {
		return &entity.Partner{ID: id, Name: name, Type: ptype, Email: email, Phone: phone, Address: address, CreatedAt: now}
	}

	prItems := []entity.PRItem{{ProductID: "2", ProductName: "Wireless Mouse", Quantity: 50, Cost: money(20)}}

	return Dataset{
		Products: []*entity.Product{
			product("1", "LAP-001", "Gaming Laptop X1", "Electronics", 1500, 1000, 10, entity.ProductTypeFinishedGood),
			product("2", "MOU-002", "Wireless Mouse", "Accessories", 50, 20, 100, entity.ProductTypeFinishedGood),
			product("3", "CHAIR-003", "Ergo Chair", "Furniture", 300, 150, 5, entity.ProductTypeFinishedGood),
			product("RM-001", "WOOD-OAK", "Oak Wood Plank", "Raw Material", 0, 20, 50, entity.ProductTypeRawMaterial),
			product("RM-002", "MET-ALU", "Aluminum Base", "Raw Material", 0, 30, 30, entity.ProductTypeRawMaterial),
			product("RM-003", "SCR-SET", "Screw Set (x10)", "Raw Material", 0, 5, 200, entity.ProductTypeRawMaterial),
		},
		Partners: []*entity.Partner{
			partner("1", "Tech Solutions Inc.", entity.PartnerTypeCustomer, "contact@techsol.com", "02-123-4567", "123 Tech Park"),
			partner("2", "Global Supplies Co.", entity.PartnerTypeSupplier, "sales@globalsupplies.com", "02-987-6543", "456 Warehouse District"),
			partner("3", "Retail King", entity.PartnerTypeCustomer, "purchasing@retailking.com", "02-555-8888", "789 Mall Avenue"),
			partner("4", "Chip Makers Ltd.", entity.PartnerTypeSupplier, "orders@chipmakers.com", "02-444-3333", "101 Silicon Valley"),
		},
		PurchaseRequests: []*entity.PurchaseRequest{{
			ID:        "PR-2023-001",
			Requester: "John Doe",
			Date:      day("2023-10-01"),
			Items:     prItems,
			TotalCost: entity.SumPRItems(prItems),
			Status:    entity.PRStatusPending,
		}},
		Employees: []*entity.Employee{
			{ID: "EMP-001", Name: "Sarah Connor", Position: "HR Manager", Department: "Human Resources", Salary: money(5000), Status: entity.EmployeeStatusActive, JoinedDate: day("2022-01-15")},
			{ID: "EMP-002", Name: "Tony Stark", Position: "Lead Engineer", Department: "Engineering", Salary: money(12000), Status: entity.EmployeeStatusActive, JoinedDate: day("2021-05-20")},
		},
		BOMs: []*entity.BOM{{
			ID:        "BOM-001",
			Name:      "Ergo Chair Assembly",
			ProductID: "3",
			Components: []entity.BOMComponent{
				{ProductID: "RM-001", Quantity: 2},
				{ProductID: "RM-002", Quantity: 1},
				{ProductID: "RM-003", Quantity: 4},
			},
		}},
		Transactions: []*entity.Transaction{
			{ID: "TX-001", Date: day("2023-10-05"), Description: "Office Rent", Type: entity.TransactionTypeExpense, Amount: money(2000), Category: "Rent"},
			{ID: "TX-002", Date: day("2023-10-10"), Description: "Internet Bill", Type: entity.TransactionTypeExpense, Amount: money(100), Category: "Utilities"},
		},
	}
}

// Load escribe el dataset en una sola transacción. Si ya hay productos no toca nada
// y devuelve false, salvo que force sea true.
func Load(ctx context.Context, r *uow.TxRunner, data Dataset, force bool, log zerolog.Logger) (bool, error) {
	loaded := false
	err := r.Run(ctx, func(tx *uow.Tx) error {
		loaded = false
		existing, err := tx.Products()
		if err != nil {
			return err
		}
		if len(existing) > 0 && !force {
			return nil
		}
		// Colecciones que el dataset deja vacías también se reinician.
		steps := []func() error{
			func() error { return tx.PutProducts(data.Products) },
			func() error { return tx.PutPartners(data.Partners) },
			func() error { return tx.PutPurchaseRequests(data.PurchaseRequests) },
			func() error { return tx.PutPurchaseOrders(nil) },
			func() error { return tx.PutSalesOrders(nil) },
			func() error { return tx.PutTransactions(data.Transactions) },
			func() error { return tx.PutEmployees(data.Employees) },
			func() error { return tx.PutBOMs(data.BOMs) },
			func() error { return tx.PutProductionOrders(nil) },
			func() error { return tx.PutPayrollRuns(nil) },
		}
		for _, step := range steps {
			if err := step(); err != nil {
				return err
			}
		}
		loaded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if loaded {
		log.Info().Int("products", len(data.Products)).Int("partners", len(data.Partners)).Msg("datos de demostración cargados")
	} else {
		log.Info().Msg("el store ya tiene productos; se omite la carga de demostración")
	}
	return loaded, nil
}
