package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockEntry records goods received for a product.
type StockEntry struct {
	ID        int64           `json:"id_entrada,omitempty"`
	ProductID int64           `json:"id_producto"`
	Quantity  int             `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
	UserID    *int64          `json:"id_usuario,omitempty"`
	UserName  string          `json:"nombre_usuario,omitempty"`
	Date      time.Time       `json:"fecha,omitempty"`
}

type MovementType string

const (
	MovementIn  MovementType = "ENTRADA"
	MovementOut MovementType = "SALIDA"
)

type MovementOrigin string

const (
	OriginEntry      MovementOrigin = "ENTRADA"
	OriginSale       MovementOrigin = "SALIDA"
	OriginAdjustment MovementOrigin = "AJUSTE_INVENTARIO"
)

// Movement is one row of the stock history kept by the backend.
type Movement struct {
	ID             int64          `json:"id_movimiento"`
	ProductID      int64          `json:"id_producto"`
	ProductName    string         `json:"nombre_producto"`
	Date           time.Time      `json:"fecha"`
	Type           MovementType   `json:"tipo_movimiento"`
	Quantity       int            `json:"cantidad"`
	ResultingStock int            `json:"stock_resultante"`
	Origin         MovementOrigin `json:"origen_movimiento"`
	UserID         int64          `json:"id_usuario"`
	UserName       string         `json:"nombre_usuario"`
}

// MovementPurge asks the backend to drop old movements, either everything
// older than KeepMonths or an explicit date range.
type MovementPurge struct {
	KeepMonths int    `json:"mesesConservar"`
	From       string `json:"fechaInicio,omitempty"`
	To         string `json:"fechaFin,omitempty"`
}
