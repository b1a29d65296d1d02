package entity

import "time"

// BOMComponent materia prima y cantidad requerida por unidad producida.
type BOMComponent struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// BOM receta (lista de materiales) de un producto terminado.
type BOM struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	ProductID  string         `json:"productId"` // producto terminado
	Components []BOMComponent `json:"components"`
}

// ProductionStatus Planned -> Completed, en un solo sentido.
type ProductionStatus string

const (
	ProductionStatusPlanned   ProductionStatus = "Planned"
	ProductionStatusCompleted ProductionStatus = "Completed"
)

// ProductionOrder autoriza fabricar Quantity unidades según un BOM.
type ProductionOrder struct {
	ID          string           `json:"id"`
	BOMID       string           `json:"bomId"`
	Quantity    int              `json:"quantity"`
	Status      ProductionStatus `json:"status"`
	Date        time.Time        `json:"date"`
	CompletedAt *time.Time       `json:"completedAt,omitempty"`
}
