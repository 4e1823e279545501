package catalog

import (
	"context"
	"errors"
	"iter"
	"slices"
	"testing"

	"sowin-pos/internal/domain"
	"sowin-pos/internal/service/sale"
)

type stubRepo struct {
	products  []domain.Product
	listErr   error
	listCalls int
	lastCode  string
}

func (s *stubRepo) List(_ context.Context) ([]domain.Product, error) {
	s.listCalls++
	return s.products, s.listErr
}

func (s *stubRepo) GetByCode(_ context.Context, code string) (*domain.Product, error) {
	s.lastCode = code
	for _, p := range s.products {
		if p.Code == code {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

type fixedReservations map[int64]int

func (f fixedReservations) Quantity(id int64) int { return f[id] }

func sampleCatalog() []domain.Product {
	return []domain.Product{
		{ID: 1, Code: "A1", Name: "Coca Cola 400ml", CategoryID: 1, Stock: 10},
		{ID: 2, Code: "B2", Name: "Papas Margarita", CategoryID: 2, Stock: 4},
		{ID: 3, Code: "COLA-3", Name: "Agua", CategoryID: 1, Stock: 7},
	}
}

func names(seq iter.Seq[domain.Product]) []string {
	var out []string
	for p := range seq {
		out = append(out, p.Name)
	}
	return out
}

func TestFindByCodeTrimsInput(t *testing.T) {
	repo := &stubRepo{products: sampleCatalog()}
	svc := New(repo)

	p, err := svc.FindByCode(context.Background(), "  B2 ")
	if err != nil {
		t.Fatalf("FindByCode: %v", err)
	}
	if p.ID != 2 || repo.lastCode != "B2" {
		t.Fatalf("unexpected product %+v code %q", p, repo.lastCode)
	}
}

func TestFindByCodeBlankIsNotFound(t *testing.T) {
	repo := &stubRepo{products: sampleCatalog()}
	_, err := New(repo).FindByCode(context.Background(), "   ")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if repo.lastCode != "" {
		t.Fatal("repository should not be called for blank code")
	}
}

func TestSearchMatchesNameAndCodeIgnoringCase(t *testing.T) {
	svc := New(&stubRepo{products: sampleCatalog()})
	seq, err := svc.Search(context.Background(), "cola", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	got := names(seq)
	if !slices.Equal(got, []string{"Coca Cola 400ml", "Agua"}) {
		t.Fatalf("unexpected matches %v", got)
	}
}

func TestSearchFiltersByCategory(t *testing.T) {
	svc := New(&stubRepo{products: sampleCatalog()})
	seq, err := svc.Search(context.Background(), "", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := names(seq); !slices.Equal(got, []string{"Papas Margarita"}) {
		t.Fatalf("unexpected matches %v", got)
	}
}

func TestSearchIsRestartable(t *testing.T) {
	repo := &stubRepo{products: sampleCatalog()}
	seq, err := New(repo).Search(context.Background(), "a", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	first := names(seq)
	second := names(seq)
	if !slices.Equal(first, second) || len(first) != 3 {
		t.Fatalf("expected identical passes, got %v and %v", first, second)
	}
	if repo.listCalls != 1 {
		t.Fatalf("expected one fetch, got %d", repo.listCalls)
	}
}

func TestSearchStopsEarly(t *testing.T) {
	seq, _ := New(&stubRepo{products: sampleCatalog()}).Search(context.Background(), "", 0)
	count := 0
	for range seq {
		count++
		break
	}
	if count != 1 {
		t.Fatalf("expected early stop, got %d", count)
	}
}

func TestSearchPropagatesBackendError(t *testing.T) {
	svc := New(&stubRepo{listErr: domain.ErrConnection})
	if _, err := svc.Search(context.Background(), "x", 0); !errors.Is(err, domain.ErrConnection) {
		t.Fatalf("expected connection error, got %v", err)
	}
}

func TestAvailableStockSubtractsReservations(t *testing.T) {
	p := domain.Product{ID: 1, Stock: 10}
	if got := AvailableStock(p, fixedReservations{1: 4}); got != 6 {
		t.Fatalf("expected 6, got %d", got)
	}
	if got := AvailableStock(p, nil); got != 10 {
		t.Fatalf("expected 10 without reservations, got %d", got)
	}
}

func TestAvailableStockWithSaleSession(t *testing.T) {
	p := domain.Product{ID: 1, Code: "A1", Name: "Agua", Stock: 10}

	var none *sale.Session
	if got := AvailableStock(p, none); got != 10 {
		t.Fatalf("expected 10 for a nil session, got %d", got)
	}

	sess := sale.NewSession()
	if err := sess.Add(p, 3); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := AvailableStock(p, sess); got != 7 {
		t.Fatalf("expected 7 with 3 held, got %d", got)
	}
}
