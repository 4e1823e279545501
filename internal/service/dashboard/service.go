package dashboard

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"sowin-pos/internal/domain"
)

type productLister interface {
	List(ctx context.Context) ([]domain.Product, error)
}

type saleLister interface {
	List(ctx context.Context) ([]domain.Sale, error)
	ListDetails(ctx context.Context) ([]domain.SaleDetail, error)
}

type entryLister interface {
	List(ctx context.Context) ([]domain.StockEntry, error)
}

const (
	recentProducts   = 5
	recentSales      = 3
	recentEntries    = 2
	noSalesLabel     = "Sin ventas"
	activitySale     = "venta"
	activityEntry    = "inventario"
	dayKeyFormat     = "2006-01-02"
	shortLabelFormat = "2/1"
)

var weekdayLabels = [...]string{"Dom", "Lun", "Mar", "Mié", "Jue", "Vie", "Sáb"}

type Service struct {
	products productLister
	sales    saleLister
	entries  entryLister
	now      func() time.Time
	loc      *time.Location
}

func New(products productLister, sales saleLister, entries entryLister) *Service {
	return &Service{products: products, sales: sales, entries: entries, now: time.Now, loc: time.Local}
}

type Summary struct {
	Products        int              `json:"products"`
	StockUnits      int              `json:"stockUnits"`
	LowStock        int              `json:"lowStock"`
	Recent          []domain.Product `json:"recent"`
	SalesTotal      decimal.Decimal  `json:"salesTotal"`
	SalesCount      int              `json:"salesCount"`
	TopProduct      string           `json:"topProduct"`
	TopProductUnits int              `json:"topProductUnits"`
}

// Summary loads the catalog, the sales and the sale lines concurrently and
// aggregates them.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	var (
		products []domain.Product
		sales    []domain.Sale
		details  []domain.SaleDetail
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.products.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		sales, err = s.sales.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		details, err = s.sales.ListDetails(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	out := Summary{Products: len(products), SalesCount: len(sales), SalesTotal: decimal.Zero}
	for _, p := range products {
		out.StockUnits += p.Stock
		if p.Stock <= p.StockMin {
			out.LowStock++
		}
	}
	recent := slices.Clone(products)
	slices.SortStableFunc(recent, func(a, b domain.Product) int { return cmp.Compare(b.ID, a.ID) })
	out.Recent = recent[:min(recentProducts, len(recent))]

	for _, sl := range sales {
		out.SalesTotal = out.SalesTotal.Add(sl.Total)
	}
	out.TopProduct, out.TopProductUnits = topSeller(details)
	return out, nil
}

// topSeller returns the product with the most units sold. Ties keep the
// product seen first.
func topSeller(details []domain.SaleDetail) (string, int) {
	type tally struct {
		name  string
		units int
	}
	var order []int64
	byProduct := make(map[int64]*tally)
	for _, d := range details {
		t, ok := byProduct[d.ProductID]
		if !ok {
			name := d.ProductName
			if name == "" {
				name = "Producto"
			}
			t = &tally{name: name}
			byProduct[d.ProductID] = t
			order = append(order, d.ProductID)
		}
		t.units += d.Quantity
	}
	name, best := noSalesLabel, 0
	for _, id := range order {
		if t := byProduct[id]; t.units > best {
			name, best = t.name, t.units
		}
	}
	return name, best
}

type DayTotal struct {
	Day   string          `json:"day"`
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

// SalesByDay totals sales per local day over the last days days, today
// included. Days without sales are reported with a zero total.
func (s *Service) SalesByDay(ctx context.Context, days int) ([]DayTotal, error) {
	if days != 7 && days != 30 && days != 90 {
		return nil, fmt.Errorf("%w: period must be 7, 30 or 90 days", domain.ErrValidation)
	}
	sales, err := s.sales.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	out := make([]DayTotal, days)
	index := make(map[string]int, days)
	for i := range days {
		d := today.AddDate(0, 0, i-days+1)
		label := d.Format(shortLabelFormat)
		if days == 7 {
			label = weekdayLabels[d.Weekday()]
		}
		out[i] = DayTotal{Day: d.Format(dayKeyFormat), Label: label, Total: decimal.Zero}
		index[out[i].Day] = i
	}
	for _, sl := range sales {
		if i, ok := index[sl.Date.In(s.loc).Format(dayKeyFormat)]; ok {
			out[i].Total = out[i].Total.Add(sl.Total)
		}
	}
	return out, nil
}

type Activity struct {
	ID   string    `json:"id"`
	Kind string    `json:"kind"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// RecentActivity lists the latest sales followed by the latest stock entries.
func (s *Service) RecentActivity(ctx context.Context) ([]Activity, error) {
	var (
		sales   []domain.Sale
		entries []domain.StockEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		sales, err = s.sales.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		entries, err = s.entries.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Activity, 0, recentSales+recentEntries)
	for i, sl := range sales[:min(recentSales, len(sales))] {
		out = append(out, Activity{
			ID:   fmt.Sprintf("venta-%d", idOr(sl.ID, i)),
			Kind: activitySale,
			Text: fmt.Sprintf("Venta registrada - Q%s", sl.Total.StringFixed(2)),
			At:   sl.Date,
		})
	}
	for i, e := range entries[:min(recentEntries, len(entries))] {
		out = append(out, Activity{
			ID:   fmt.Sprintf("entrada-%d", idOr(e.ID, i)),
			Kind: activityEntry,
			Text: fmt.Sprintf("Entrada de producto - %d unidades", e.Quantity),
			At:   e.Date,
		})
	}
	return out, nil
}

func idOr(id int64, i int) int64 {
	if id != 0 {
		return id
	}
	return int64(i)
}
