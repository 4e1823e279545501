package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a confirmed sale as submitted to, and listed by, the backend.
type Sale struct {
	ID          int64           `json:"id_venta,omitempty"`
	Date        time.Time       `json:"fecha_venta,omitempty"`
	UserID      int64           `json:"id_usuario"`
	CashierName string          `json:"nombre_cajero"`
	Total       decimal.Decimal `json:"total"`
	Tendered    decimal.Decimal `json:"efectivo"`
	Change      decimal.Decimal `json:"cambio"`
	Lines       []SaleLine      `json:"productos"`
}

// UnmarshalJSON accepts the sale date as either fecha_venta (per-cashier
// feed) or fecha (general sales feed).
func (s *Sale) UnmarshalJSON(data []byte) error {
	type plain Sale
	var aux struct {
		plain
		Fecha time.Time `json:"fecha"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = Sale(aux.plain)
	if s.Date.IsZero() {
		s.Date = aux.Fecha
	}
	return nil
}

type SaleLine struct {
	ID          int64           `json:"id_salida,omitempty"`
	ProductID   int64           `json:"id_producto"`
	Code        string          `json:"codigo_barras,omitempty"`
	ProductName string          `json:"nombre_producto,omitempty"`
	Quantity    int             `json:"cantidad"`
	UnitPrice   decimal.Decimal `json:"precio_unitario"`
	Total       decimal.Decimal `json:"total"`
	// Subtotal is what per-cashier listings report instead of Total.
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Amount is the line total as reported by whichever feed produced the line.
func (l SaleLine) Amount() decimal.Decimal {
	if !l.Total.IsZero() {
		return l.Total
	}
	return l.Subtotal
}

// SaleDetail is a flattened sale line as reported by the sales detail feed.
type SaleDetail struct {
	SaleID      int64  `json:"id_venta"`
	ProductID   int64  `json:"id_producto"`
	ProductName string `json:"nombre_producto"`
	Quantity    int    `json:"cantidad"`
}
