package entity

import "time"

// PartnerType distingue clientes de proveedores.
type PartnerType string

const (
	PartnerTypeCustomer PartnerType = "Customer"
	PartnerTypeSupplier PartnerType = "Supplier"
)

func (t PartnerType) Valid() bool {
	return t == PartnerTypeCustomer || t == PartnerTypeSupplier
}

// Partner representa un cliente o proveedor. Inmutable después de creado.
type Partner struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Type      PartnerType `json:"type"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Address   string      `json:"address"`
	CreatedAt time.Time   `json:"createdAt"`
}
