// Package partner gestiona el directorio de clientes y proveedores.
package partner

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/uow"
	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
)

// PartnerUseCase alta y listado de socios comerciales.
type PartnerUseCase struct {
	tx  *uow.TxRunner
	log zerolog.Logger
}

// NewPartnerUseCase construye el caso de uso.
func NewPartnerUseCase(tx *uow.TxRunner, log zerolog.Logger) *PartnerUseCase {
	return &PartnerUseCase{tx: tx, log: log}
}

// Create registra un cliente o proveedor. Los datos de contacto son opcionales.
func (uc *PartnerUseCase) Create(ctx context.Context, in dto.CreatePartnerRequest) (*entity.Partner, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validationf("el nombre es obligatorio")
	}
	ptype := entity.PartnerType(in.Type)
	if !ptype.Valid() {
		return nil, domain.Validationf("type debe ser Customer o Supplier")
	}

	var created *entity.Partner
	err := uc.tx.Run(ctx, func(tx *uow.Tx) error {
		partners, err := tx.Partners()
		if err != nil {
			return err
		}
		created = &entity.Partner{
			ID:        tx.NewID(uow.PrefixPartner),
			Name:      name,
			Type:      ptype,
			Email:     strings.TrimSpace(in.Email),
			Phone:     strings.TrimSpace(in.Phone),
			Address:   strings.TrimSpace(in.Address),
			CreatedAt: tx.Now(),
		}
		return tx.PutPartners(append(partners, created))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("partner_id", created.ID).Str("type", string(created.Type)).Msg("socio registrado")
	return created, nil
}

// List devuelve los socios; filter.Type restringe a clientes o proveedores.
func (uc *PartnerUseCase) List(ctx context.Context, filter dto.PartnerFilter) ([]*entity.Partner, error) {
	var out []*entity.Partner
	err := uc.tx.View(ctx, func(tx *uow.Tx) error {
		partners, err := tx.Partners()
		if err != nil {
			return err
		}
		out = make([]*entity.Partner, 0, len(partners))
		for _, p := range partners {
			if filter.Type == "" || string(p.Type) == filter.Type {
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
