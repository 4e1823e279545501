package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"sowin-pos/internal/domain"
)

type stubProducts struct {
	items []domain.Product
	err   error
}

func (s *stubProducts) List(context.Context) ([]domain.Product, error) { return s.items, s.err }

type stubSales struct {
	sales   []domain.Sale
	details []domain.SaleDetail
}

func (s *stubSales) List(context.Context) ([]domain.Sale, error)              { return s.sales, nil }
func (s *stubSales) ListDetails(context.Context) ([]domain.SaleDetail, error) { return s.details, nil }

type stubEntries struct {
	items []domain.StockEntry
}

func (s *stubEntries) List(context.Context) ([]domain.StockEntry, error) { return s.items, nil }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSummary(t *testing.T) {
	products := &stubProducts{}
	for i := int64(1); i <= 7; i++ {
		products.items = append(products.items, domain.Product{ID: i, Stock: int(i), StockMin: 3})
	}
	sales := &stubSales{
		sales: []domain.Sale{{Total: dec("10.50")}, {Total: dec("4.50")}},
		details: []domain.SaleDetail{
			{ProductID: 1, ProductName: "Agua", Quantity: 2},
			{ProductID: 2, ProductName: "Pan", Quantity: 3},
			{ProductID: 1, ProductName: "Agua", Quantity: 2},
		},
	}
	svc := New(products, sales, &stubEntries{})

	got, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if got.Products != 7 || got.StockUnits != 28 || got.LowStock != 3 {
		t.Fatalf("unexpected stock figures %+v", got)
	}
	if len(got.Recent) != 5 || got.Recent[0].ID != 7 || got.Recent[4].ID != 3 {
		t.Fatalf("unexpected recent products %+v", got.Recent)
	}
	if got.SalesCount != 2 || !got.SalesTotal.Equal(dec("15")) {
		t.Fatalf("unexpected sales figures %+v", got)
	}
	if got.TopProduct != "Agua" || got.TopProductUnits != 4 {
		t.Fatalf("unexpected top seller %s/%d", got.TopProduct, got.TopProductUnits)
	}
}

func TestSummaryWithoutSales(t *testing.T) {
	svc := New(&stubProducts{}, &stubSales{}, &stubEntries{})
	got, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if got.TopProduct != "Sin ventas" || got.TopProductUnits != 0 || len(got.Recent) != 0 {
		t.Fatalf("unexpected empty summary %+v", got)
	}
}

func TestSummaryPropagatesErrors(t *testing.T) {
	svc := New(&stubProducts{err: domain.ErrConnection}, &stubSales{}, &stubEntries{})
	if _, err := svc.Summary(context.Background()); !errors.Is(err, domain.ErrConnection) {
		t.Fatalf("expected connection error, got %v", err)
	}
}

func TestSalesByDayZeroFills(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) // Monday
	sales := &stubSales{sales: []domain.Sale{
		{Date: now.Add(-time.Hour), Total: dec("5")},
		{Date: now.Add(-2 * time.Hour), Total: dec("2.5")},
		{Date: now.AddDate(0, 0, -6), Total: dec("1")},
		{Date: now.AddDate(0, 0, -7), Total: dec("100")},
	}}
	svc := New(&stubProducts{}, sales, &stubEntries{})
	svc.now = func() time.Time { return now }
	svc.loc = time.UTC

	got, err := svc.SalesByDay(context.Background(), 7)
	if err != nil {
		t.Fatalf("SalesByDay: %v", err)
	}
	if len(got) != 7 {
		t.Fatalf("expected 7 days, got %d", len(got))
	}
	if got[6].Day != "2025-03-10" || got[6].Label != "Lun" || !got[6].Total.Equal(dec("7.5")) {
		t.Fatalf("unexpected today %+v", got[6])
	}
	if got[0].Day != "2025-03-04" || !got[0].Total.Equal(dec("1")) {
		t.Fatalf("unexpected first day %+v", got[0])
	}
	if !got[3].Total.IsZero() {
		t.Fatalf("expected zero-filled day, got %+v", got[3])
	}

	month, _ := svc.SalesByDay(context.Background(), 30)
	if len(month) != 30 || month[29].Label != "10/3" {
		t.Fatalf("unexpected 30 day series tail %+v", month[len(month)-1])
	}
	if _, err := svc.SalesByDay(context.Background(), 14); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSalesByDayFromBackendFeed(t *testing.T) {
	var feed []domain.Sale
	body := `[
		{"id_venta":2,"fecha":"2026-10-18T15:00:00Z","total":"10.00","id_usuario":1,"nombre_cajero":"ana"},
		{"id_venta":1,"fecha":"2026-10-16T08:00:00.000Z","total":"2.50","id_usuario":1,"nombre_cajero":"ana"}
	]`
	if err := json.Unmarshal([]byte(body), &feed); err != nil {
		t.Fatalf("decode feed: %v", err)
	}
	svc := New(&stubProducts{}, &stubSales{sales: feed}, &stubEntries{})
	svc.now = func() time.Time { return time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC) }
	svc.loc = time.UTC

	got, err := svc.SalesByDay(context.Background(), 7)
	if err != nil {
		t.Fatalf("SalesByDay: %v", err)
	}
	if got[6].Day != "2026-10-18" || !got[6].Total.Equal(dec("10")) {
		t.Fatalf("unexpected today %+v", got[6])
	}
	if got[4].Day != "2026-10-16" || !got[4].Total.Equal(dec("2.5")) {
		t.Fatalf("unexpected 2026-10-16 %+v", got[4])
	}

	activity, err := svc.RecentActivity(context.Background())
	if err != nil {
		t.Fatalf("RecentActivity: %v", err)
	}
	if activity[0].At.Year() != 2026 {
		t.Fatalf("expected sale timestamp from the feed, got %s", activity[0].At)
	}
}

func TestRecentActivity(t *testing.T) {
	sales := &stubSales{sales: []domain.Sale{{ID: 9, Total: dec("3")}, {ID: 8}, {ID: 7}, {ID: 6}}}
	entries := &stubEntries{items: []domain.StockEntry{{ID: 4, Quantity: 12}, {ID: 3}, {ID: 2}}}
	svc := New(&stubProducts{}, sales, entries)

	got, err := svc.RecentActivity(context.Background())
	if err != nil {
		t.Fatalf("RecentActivity: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 activities, got %d", len(got))
	}
	if got[0].ID != "venta-9" || got[0].Text != "Venta registrada - Q3.00" {
		t.Fatalf("unexpected first activity %+v", got[0])
	}
	if got[3].ID != "entrada-4" || got[3].Text != "Entrada de producto - 12 unidades" || got[3].Kind != "inventario" {
		t.Fatalf("unexpected entry activity %+v", got[3])
	}
}
