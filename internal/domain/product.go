package domain

import "github.com/shopspring/decimal"

// Product is the backend catalog record. Scan codes are unique per catalog.
type Product struct {
	ID            int64           `json:"id_producto"`
	Code          string          `json:"codigo_barras"`
	Name          string          `json:"nombre_producto"`
	CategoryID    int64           `json:"id_categoria"`
	CategoryName  string          `json:"nombre_categoria,omitempty"`
	PurchasePrice decimal.Decimal `json:"precio_compra"`
	SalePrice     decimal.Decimal `json:"precio_venta"`
	Stock         int             `json:"stock_actual"`
	StockMin      int             `json:"stock_minimo,omitempty"`
	StockMax      int             `json:"stock_maximo,omitempty"`
	SupplierID    *int64          `json:"id_proveedor,omitempty"`
	Reference     string          `json:"referencia,omitempty"`
	Notes         string          `json:"notas,omitempty"`
	CreatedBy     *int64          `json:"creado_por,omitempty"`
	CreatorName   string          `json:"nombre_creador,omitempty"`
}
