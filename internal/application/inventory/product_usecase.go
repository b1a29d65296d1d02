// Package inventory contiene los casos de uso del catálogo de productos y su existencia.
package inventory

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/uow"
	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
	domaininv "github.com/jhoicas/erp-core/internal/domain/inventory"
)

// ProductUseCase alta, edición, ajustes de stock y listado de productos.
type ProductUseCase struct {
	tx  *uow.TxRunner
	log zerolog.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(tx *uow.TxRunner, log zerolog.Logger) *ProductUseCase {
	return &ProductUseCase{tx: tx, log: log}
}

// Create crea un producto. El SKU debe ser único; status por defecto Active y type Finished Good.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	name := strings.TrimSpace(in.Name)
	sku := strings.TrimSpace(in.SKU)
	if name == "" {
		return nil, domain.Validationf("el nombre del producto es obligatorio")
	}
	if sku == "" {
		return nil, domain.Validationf("el SKU es obligatorio")
	}
	if in.Price.IsNegative() || in.Cost.IsNegative() {
		return nil, domain.Validationf("precio y costo no pueden ser negativos")
	}
	if in.Stock < 0 {
		return nil, domain.Validationf("el stock inicial no puede ser negativo")
	}
	status := entity.ProductStatusActive
	if in.Status != "" {
		status = entity.ProductStatus(in.Status)
		if !status.Valid() {
			return nil, domain.Validationf("status inválido: %s", in.Status)
		}
	}
	ptype := entity.ProductTypeFinishedGood
	if in.Type != "" {
		ptype = entity.ProductType(in.Type)
		if !ptype.Valid() {
			return nil, domain.Validationf("type inválido: %s", in.Type)
		}
	}

	var created *entity.Product
	err := uc.tx.Run(ctx, func(tx *uow.Tx) error {
		products, err := tx.Products()
		if err != nil {
			return err
		}
		for _, p := range products {
			if strings.EqualFold(p.SKU, sku) {
				return domain.Validationf("el SKU '%s' ya existe", sku)
			}
		}
		created = &entity.Product{
			ID:        tx.NewID(uow.PrefixProduct),
			SKU:       sku,
			Name:      name,
			Category:  strings.TrimSpace(in.Category),
			Price:     in.Price,
			Cost:      in.Cost,
			Stock:     in.Stock,
			Status:    status,
			Type:      ptype,
			CreatedAt: tx.Now(),
			UpdatedAt: tx.Now(),
		}
		return tx.PutProducts(append(products, created))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", created.ID).Str("sku", created.SKU).Msg("producto creado")
	return created, nil
}

// Update aplica los campos presentes en el patch. SKU y stock no se modifican por esta vía.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	var updated *entity.Product
	err := uc.tx.Run(ctx, func(tx *uow.Tx) error {
		products, err := tx.Products()
		if err != nil {
			return err
		}
		p := findProduct(products, id)
		if p == nil {
			return domain.NotFoundf("producto %s", id)
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return domain.Validationf("el nombre del producto es obligatorio")
			}
			p.Name = name
		}
		if in.Category != nil {
			p.Category = strings.TrimSpace(*in.Category)
		}
		if in.Price != nil {
			if in.Price.IsNegative() {
				return domain.Validationf("el precio no puede ser negativo")
			}
			p.Price = *in.Price
		}
		if in.Cost != nil {
			if in.Cost.IsNegative() {
				return domain.Validationf("el costo no puede ser negativo")
			}
			p.Cost = *in.Cost
		}
		if in.Status != nil {
			s := entity.ProductStatus(*in.Status)
			if !s.Valid() {
				return domain.Validationf("status inválido: %s", *in.Status)
			}
			p.Status = s
		}
		if in.Type != nil {
			t := entity.ProductType(*in.Type)
			if !t.Valid() {
				return domain.Validationf("type inválido: %s", *in.Type)
			}
			p.Type = t
		}
		p.UpdatedAt = tx.Now()
		updated = p
		return tx.PutProducts(products)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", updated.ID).Msg("producto actualizado")
	return updated, nil
}

// AdjustStock suma delta (positivo o negativo) al stock. Falla con stock insuficiente si quedaría negativo.
func (uc *ProductUseCase) AdjustStock(ctx context.Context, id string, delta int) (*entity.Product, error) {
	var adjusted *entity.Product
	err := uc.tx.Run(ctx, func(tx *uow.Tx) error {
		products, err := tx.Products()
		if err != nil {
			return err
		}
		plan := domaininv.NewStockPlan(products)
		if err := plan.Add(id, delta); err != nil {
			return err
		}
		if _, err := plan.Commit(tx.Now()); err != nil {
			return err
		}
		adjusted = plan.Product(id)
		return tx.PutProducts(products)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", id).Int("delta", delta).Int("stock", adjusted.Stock).Msg("stock ajustado")
	return adjusted, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var found *entity.Product
	err := uc.tx.View(ctx, func(tx *uow.Tx) error {
		products, err := tx.Products()
		if err != nil {
			return err
		}
		found = findProduct(products, id)
		if found == nil {
			return domain.NotFoundf("producto %s", id)
		}
		return nil
	})
	return found, err
}

// List devuelve los productos; Search filtra sin distinguir mayúsculas por nombre, SKU o categoría.
func (uc *ProductUseCase) List(ctx context.Context, filter dto.ProductFilter) ([]*entity.Product, error) {
	term := strings.ToLower(strings.TrimSpace(filter.Search))
	var out []*entity.Product
	err := uc.tx.View(ctx, func(tx *uow.Tx) error {
		products, err := tx.Products()
		if err != nil {
			return err
		}
		out = make([]*entity.Product, 0, len(products))
		for _, p := range products {
			if term == "" || matchesSearch(p, term) {
				out = append(out, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func matchesSearch(p *entity.Product, term string) bool {
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.SKU), term) ||
		strings.Contains(strings.ToLower(p.Category), term)
}

func findProduct(products []*entity.Product, id string) *entity.Product {
	for _, p := range products {
		if p.ID == id {
			return p
		}
	}
	return nil
}
