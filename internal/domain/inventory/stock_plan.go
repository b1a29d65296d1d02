package inventory

import (
	"time"

	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
)

// StockPlan acumula variaciones de stock por producto y las aplica en dos fases:
// Validate revisa todas las líneas antes de que Apply toque cualquier producto.
// Así una operación multi-línea es todo o nada aunque no exista un gestor de transacciones.
type StockPlan struct {
	index  map[string]*entity.Product
	order  []string
	deltas map[string]int
}

// NewStockPlan construye el plan sobre la colección de productos cargada en memoria.
func NewStockPlan(products []*entity.Product) *StockPlan {
	index := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	return &StockPlan{index: index, deltas: make(map[string]int)}
}

// Product busca un producto del plan por ID (nil si no existe).
func (p *StockPlan) Product(id string) *entity.Product {
	return p.index[id]
}

// Add registra una variación (positiva o negativa). Líneas repetidas del mismo producto se suman.
func (p *StockPlan) Add(productID string, delta int) error {
	if _, ok := p.index[productID]; !ok {
		return domain.NotFoundf("producto %s", productID)
	}
	if _, seen := p.deltas[productID]; !seen {
		p.order = append(p.order, productID)
	}
	p.deltas[productID] += delta
	return nil
}

// Validate falla con *domain.InsufficientStockError en el primer producto que quedaría negativo.
func (p *StockPlan) Validate() error {
	for _, id := range p.order {
		product := p.index[id]
		delta := p.deltas[id]
		if product.Stock+delta < 0 {
			return &domain.InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Required:    -delta,
				Available:   product.Stock,
			}
		}
	}
	return nil
}

// Apply muta el stock de cada producto. Debe llamarse sólo tras un Validate exitoso.
func (p *StockPlan) Apply(now time.Time) []*entity.Product {
	touched := make([]*entity.Product, 0, len(p.order))
	for _, id := range p.order {
		product := p.index[id]
		product.Stock += p.deltas[id]
		product.UpdatedAt = now
		touched = append(touched, product)
	}
	return touched
}

// Commit valida y, si todo cuadra, aplica.
func (p *StockPlan) Commit(now time.Time) ([]*entity.Product, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p.Apply(now), nil
}
