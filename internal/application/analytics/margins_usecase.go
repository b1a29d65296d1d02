package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/uow"
	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
)

const (
	defaultTopN     = 20
	maxTopN         = 200
	paretoThreshold = 80 // el top de SKUs que acumula ~80% del ingreso
)

var (
	hundred  = decimal.NewFromInt(100)
	pareto80 = decimal.NewFromInt(paretoThreshold)
)

// MarginsUseCase calcula la rentabilidad de las ventas de un período:
//   - márgenes por cliente,
//   - ranking de productos por utilidad bruta,
//   - el subconjunto Pareto (productos que generan ~80% del ingreso).
//
// El costo de cada línea es el costo unitario actual del producto: las órdenes
// guardan el precio de venta pero no el costo del momento.
type MarginsUseCase struct {
	tx *uow.TxRunner
}

// NewMarginsUseCase construye el caso de uso.
func NewMarginsUseCase(tx *uow.TxRunner) *MarginsUseCase {
	return &MarginsUseCase{tx: tx}
}

type skuAgg struct {
	productID, sku, name string
	units                int
	revenue, cogs        decimal.Decimal
}

type customerAgg struct {
	name          string
	orders, units int
	revenue, cogs decimal.Decimal
}

// GetMarginsReport genera el reporte completo de márgenes para un período.
func (uc *MarginsUseCase) GetMarginsReport(ctx context.Context, req dto.MarginsReportRequest) (*dto.MarginsReportDTO, error) {
	topN := req.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	if topN > maxTopN {
		topN = maxTopN
	}

	var (
		start, end time.Time
		skus       []*skuAgg
		customers  []*customerAgg
	)
	err := uc.tx.View(ctx, func(tx *uow.Tx) error {
		var err error
		start, end, err = parsePeriod(tx.Now(), req.StartDate, req.EndDate)
		if err != nil {
			return err
		}
		products, err := tx.Products()
		if err != nil {
			return err
		}
		orders, err := tx.SalesOrders()
		if err != nil {
			return err
		}
		skus, customers = aggregate(products, orders, start, end)
		return nil
	})
	if err != nil {
		return nil, err
	}

	ranking := buildSKURanking(skus)
	if len(ranking) > topN {
		ranking = ranking[:topN]
	}
	paretoSKUs := make([]dto.SKURankingDTO, 0)
	for _, sku := range ranking {
		if sku.IsTopPareto {
			paretoSKUs = append(paretoSKUs, sku)
		}
	}

	return &dto.MarginsReportDTO{
		Period: dto.PeriodDTO{
			StartDate: start.Format("2006-01-02"),
			EndDate:   end.Format("2006-01-02"),
		},
		Profitability: buildCustomerProfitability(customers),
		SKURanking:    ranking,
		ParetoSKUs:    paretoSKUs,
	}, nil
}

// aggregate acumula ingreso y costo por producto y por cliente para las órdenes del período.
func aggregate(products []*entity.Product, orders []*entity.SalesOrder, start, end time.Time) ([]*skuAgg, []*customerAgg) {
	byID := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	skuIdx := make(map[string]*skuAgg)
	custIdx := make(map[string]*customerAgg)
	var skus []*skuAgg
	var customers []*customerAgg

	for _, so := range orders {
		if so.Date.Before(start) || so.Date.After(end) {
			continue
		}
		c, ok := custIdx[so.CustomerName]
		if !ok {
			c = &customerAgg{name: so.CustomerName}
			custIdx[so.CustomerName] = c
			customers = append(customers, c)
		}
		c.orders++

		for _, it := range so.Items {
			cost := decimal.Zero
			s, ok := skuIdx[it.ProductID]
			if !ok {
				s = &skuAgg{productID: it.ProductID, name: it.ProductName}
				if p := byID[it.ProductID]; p != nil {
					s.sku = p.SKU
				}
				skuIdx[it.ProductID] = s
				skus = append(skus, s)
			}
			if p := byID[it.ProductID]; p != nil {
				cost = p.Cost
			}
			lineCOGS := cost.Mul(decimal.NewFromInt(int64(it.Quantity)))

			s.units += it.Quantity
			s.revenue = s.revenue.Add(it.Subtotal())
			s.cogs = s.cogs.Add(lineCOGS)

			c.units += it.Quantity
			c.revenue = c.revenue.Add(it.Subtotal())
			c.cogs = c.cogs.Add(lineCOGS)
		}
	}
	return skus, customers
}

// buildCustomerProfitability convierte los agregados en DTO con totales globales y % de participación.
func buildCustomerProfitability(rows []*customerAgg) dto.CustomerProfitabilityDTO {
	var totalRevenue, totalCOGS decimal.Decimal
	for _, r := range rows {
		totalRevenue = totalRevenue.Add(r.revenue)
		totalCOGS = totalCOGS.Add(r.cogs)
	}
	totalMargin := totalRevenue.Sub(totalCOGS)

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].revenue.GreaterThan(rows[j].revenue) })

	customers := make([]dto.MarginByCustomerDTO, 0, len(rows))
	for _, r := range rows {
		margin := r.revenue.Sub(r.cogs)
		customers = append(customers, dto.MarginByCustomerDTO{
			CustomerName: r.name,
			OrderCount:   r.orders,
			UnitsSold:    r.units,
			GrossRevenue: r.revenue.Round(2),
			TotalCOGS:    r.cogs.Round(2),
			TotalMargin:  margin.Round(2),
			MarginPct:    percent(margin, r.revenue),
			RevenuePct:   percent(r.revenue, totalRevenue),
		})
	}

	return dto.CustomerProfitabilityDTO{
		TotalRevenue:     totalRevenue.Round(2),
		TotalCOGS:        totalCOGS.Round(2),
		TotalMargin:      totalMargin.Round(2),
		OverallMarginPct: percent(totalMargin, totalRevenue),
		Customers:        customers,
	}
}

// buildSKURanking ordena por utilidad bruta descendente y enriquece cada fila con:
//   - Rank (posición ordinal).
//   - MarginPct y RevenuePct.
//   - CumulativeRevPct acumulado (curva Pareto).
//   - IsTopPareto: true mientras el acumulado no supere el 80%.
func buildSKURanking(rows []*skuAgg) []dto.SKURankingDTO {
	if len(rows) == 0 {
		return []dto.SKURankingDTO{}
	}

	var totalRevenue decimal.Decimal
	for _, r := range rows {
		totalRevenue = totalRevenue.Add(r.revenue)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		pi, pj := rows[i].revenue.Sub(rows[i].cogs), rows[j].revenue.Sub(rows[j].cogs)
		if !pi.Equal(pj) {
			return pi.GreaterThan(pj)
		}
		return rows[i].revenue.GreaterThan(rows[j].revenue)
	})

	ranking := make([]dto.SKURankingDTO, 0, len(rows))
	var cumulative decimal.Decimal
	for i, r := range rows {
		profit := r.revenue.Sub(r.cogs)
		revenuePct := percent(r.revenue, totalRevenue)
		cumulative = cumulative.Add(revenuePct)
		// El SKU que cruza el umbral no entra, salvo que sea el primero.
		isPareto := cumulative.LessThanOrEqual(pareto80) || i == 0

		ranking = append(ranking, dto.SKURankingDTO{
			Rank:             i + 1,
			ProductID:        r.productID,
			SKU:              r.sku,
			ProductName:      r.name,
			UnitsSold:        r.units,
			GrossRevenue:     r.revenue.Round(2),
			TotalCOGS:        r.cogs.Round(2),
			GrossProfit:      profit.Round(2),
			MarginPct:        percent(profit, r.revenue),
			RevenuePct:       revenuePct,
			CumulativeRevPct: cumulative.Round(2),
			IsTopPareto:      isPareto,
		})
	}
	return ranking
}

func percent(part, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred).Round(2)
}

// parsePeriod convierte las fechas YYYY-MM-DD en un rango inclusivo; vacías toman el mes en curso.
func parsePeriod(now time.Time, startStr, endStr string) (start, end time.Time, err error) {
	loc := now.Location()
	if endStr == "" {
		end = now
	} else {
		end, err = time.ParseInLocation("2006-01-02", endStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, domain.Validationf("end_date inválido: %s", endStr)
		}
		end = end.Add(24*time.Hour - time.Nanosecond) // inclusive hasta el final del día
	}

	if startStr == "" {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	} else {
		start, err = time.ParseInLocation("2006-01-02", startStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, domain.Validationf("start_date inválido: %s", startStr)
		}
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, domain.Validationf("start_date no puede ser posterior a end_date")
	}
	return start, end, nil
}
