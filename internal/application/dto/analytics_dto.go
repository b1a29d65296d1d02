package dto

import "github.com/shopspring/decimal"

// MarginsReportRequest parámetros de GET /api/analytics/margins.
type MarginsReportRequest struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD; default: primer día del mes
	EndDate   string `query:"end_date"`   // YYYY-MM-DD; default: hoy
	TopN      int    `query:"top_n" validate:"gte=0,lte=200"`
}

// PeriodDTO rango de fechas efectivo del reporte.
type PeriodDTO struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// MarginByCustomerDTO rentabilidad agregada de un cliente.
type MarginByCustomerDTO struct {
	CustomerName string          `json:"customerName"`
	OrderCount   int             `json:"orderCount"`
	UnitsSold    int             `json:"unitsSold"`
	GrossRevenue decimal.Decimal `json:"grossRevenue"`
	TotalCOGS    decimal.Decimal `json:"totalCogs"`
	TotalMargin  decimal.Decimal `json:"totalMargin"`
	MarginPct    decimal.Decimal `json:"marginPct"`
	RevenuePct   decimal.Decimal `json:"revenuePct"` // participación en el ingreso total
}

// CustomerProfitabilityDTO totales del período y desglose por cliente.
type CustomerProfitabilityDTO struct {
	TotalRevenue     decimal.Decimal       `json:"totalRevenue"`
	TotalCOGS        decimal.Decimal       `json:"totalCogs"`
	TotalMargin      decimal.Decimal       `json:"totalMargin"`
	OverallMarginPct decimal.Decimal       `json:"overallMarginPct"`
	Customers        []MarginByCustomerDTO `json:"customers"`
}

// SKURankingDTO posición de un producto en el ranking por utilidad bruta.
type SKURankingDTO struct {
	Rank             int             `json:"rank"`
	ProductID        string          `json:"productId"`
	SKU              string          `json:"sku"`
	ProductName      string          `json:"productName"`
	UnitsSold        int             `json:"unitsSold"`
	GrossRevenue     decimal.Decimal `json:"grossRevenue"`
	TotalCOGS        decimal.Decimal `json:"totalCogs"`
	GrossProfit      decimal.Decimal `json:"grossProfit"`
	MarginPct        decimal.Decimal `json:"marginPct"`
	RevenuePct       decimal.Decimal `json:"revenuePct"`
	CumulativeRevPct decimal.Decimal `json:"cumulativeRevenuePct"`
	IsTopPareto      bool            `json:"isTopPareto"`
}

// MarginsReportDTO respuesta de GET /api/analytics/margins.
type MarginsReportDTO struct {
	Period        PeriodDTO                `json:"period"`
	Profitability CustomerProfitabilityDTO `json:"profitability"`
	SKURanking    []SKURankingDTO          `json:"skuRanking"`
	ParetoSKUs    []SKURankingDTO          `json:"paretoSkus"`
}
