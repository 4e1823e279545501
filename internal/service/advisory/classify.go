package advisory

import (
	"fmt"
	"slices"
	"time"

	"sowin-pos/internal/domain"
)

type Kind string

const (
	KindOutOfStock Kind = "out_of_stock"
	KindLowStock   Kind = "low_stock"
	KindReplenish  Kind = "replenish"
)

// DefaultMinimum applies to products without a configured stock minimum.
const DefaultMinimum = 5

var kindOrder = []Kind{KindOutOfStock, KindLowStock, KindReplenish}

type Notification struct {
	ID          string     `json:"id"`
	Kind        Kind       `json:"kind"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	ProductID   int64      `json:"productId"`
	ProductName string     `json:"productName"`
	Stock       int        `json:"stock"`
	Minimum     int        `json:"minimum"`
	Maximum     int        `json:"maximum,omitempty"`
	Suggested   int        `json:"suggested,omitempty"`
	Read        bool       `json:"read"`
	ReadAt      *time.Time `json:"readAt,omitempty"`

	product domain.Product
}

func minimumOf(p domain.Product) int {
	if p.StockMin <= 0 {
		return DefaultMinimum
	}
	return p.StockMin
}

// Classify returns the single notification a product deserves, if any.
// Rules are checked in priority order and the first match wins.
func Classify(p domain.Product) (Notification, bool) {
	minimum := minimumOf(p)
	n := Notification{
		ProductID:   p.ID,
		ProductName: p.Name,
		Stock:       p.Stock,
		Minimum:     minimum,
		Maximum:     p.StockMax,
		product:     p,
	}
	switch {
	case p.Stock <= 0:
		n.Kind = KindOutOfStock
		n.Title = "Out of stock"
		n.Message = fmt.Sprintf("%q - Stock: %d", p.Name, p.Stock)
	case p.Stock < minimum:
		n.Kind = KindLowStock
		n.Title = "Low stock"
		n.Message = fmt.Sprintf("%q - Stock: %d (Minimum: %d)", p.Name, p.Stock, minimum)
	case p.StockMax > 0 && p.Stock < p.StockMax:
		n.Kind = KindReplenish
		n.Title = "Replenish"
		n.Suggested = p.StockMax - p.Stock
		n.Message = fmt.Sprintf("%q - Stock: %d (Maximum: %d) - Replenish: %d", p.Name, p.Stock, p.StockMax, n.Suggested)
	default:
		return Notification{}, false
	}
	n.ID = fmt.Sprintf("%s-%d", n.Kind, p.ID)
	return n, true
}

// Build classifies a catalog snapshot. Out-of-stock notifications come
// first, then low stock, then replenish; catalog order is kept inside each
// group.
func Build(products []domain.Product) []Notification {
	out := make([]Notification, 0)
	for _, p := range products {
		if n, ok := Classify(p); ok {
			out = append(out, n)
		}
	}
	slices.SortStableFunc(out, func(a, b Notification) int {
		return slices.Index(kindOrder, a.Kind) - slices.Index(kindOrder, b.Kind)
	})
	return out
}
