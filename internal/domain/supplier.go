package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Supplier struct {
	ID           int64           `json:"id_proveedor,omitempty"`
	Name         string          `json:"nombre_proveedor"`
	TaxID        string          `json:"nit"`
	Phone        string          `json:"telefono"`
	Email        string          `json:"email"`
	Address      string          `json:"direccion"`
	City         string          `json:"ciudad"`
	Country      string          `json:"pais"`
	Value        decimal.Decimal `json:"valor"`
	Active       bool            `json:"activo"`
	RegisteredAt *time.Time      `json:"fecha_registro,omitempty"`
}
