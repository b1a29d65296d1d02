package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard.
type DashboardSummaryDTO struct {
	TotalStockValue   decimal.Decimal `json:"totalStockValue"` // Σ(stock × cost)
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`    // Σ totalAmount de las órdenes de venta
	LowStockCount     int             `json:"lowStockCount"`
	LowStockThreshold int             `json:"lowStockThreshold"`
	ProductCount      int             `json:"productCount"`
	OpenSalesOrders   int             `json:"openSalesOrders"` // no Completed
	PendingPRs        int             `json:"pendingPRs"`
	Categories        []CategoryStat  `json:"categories"`
}

// CategoryStat número de productos por categoría para el gráfico de distribución.
type CategoryStat struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}
