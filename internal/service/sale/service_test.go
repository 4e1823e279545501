package sale

import (
	"context"
	"errors"
	"sync"
	"testing"

	"sowin-pos/internal/domain"
)

type stubCatalog struct {
	products map[string]domain.Product
	err      error
}

func (s *stubCatalog) FindByCode(_ context.Context, code string) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.products[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

type stubSaleRepo struct {
	created   []domain.Sale
	createErr error
}

func (s *stubSaleRepo) Create(_ context.Context, in domain.Sale) (*domain.Sale, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	in.ID = int64(len(s.created) + 1)
	s.created = append(s.created, in)
	return &in, nil
}

func (s *stubSaleRepo) List(_ context.Context) ([]domain.Sale, error) { return s.created, nil }

func (s *stubSaleRepo) ListByCashier(_ context.Context, userID int64) ([]domain.Sale, error) {
	var out []domain.Sale
	for _, sl := range s.created {
		if sl.UserID == userID {
			out = append(out, sl)
		}
	}
	return out, nil
}

type countingPublisher struct {
	calls int
}

func (c *countingPublisher) Publish(context.Context) error {
	c.calls++
	return nil
}

func newTestService() (*Service, *stubSaleRepo, *countingPublisher) {
	catalog := &stubCatalog{products: map[string]domain.Product{
		"A1": product(1, "A1", "5.00", 10),
		"B2": product(2, "B2", "2.50", 10),
	}}
	repo := &stubSaleRepo{}
	pub := &countingPublisher{}
	return New(catalog, repo, pub, nil), repo, pub
}

var cashier = Cashier{UserID: 7, Name: "ana"}

func TestResolveAndAddConfirmFlow(t *testing.T) {
	svc, repo, pub := newTestService()
	ctx := context.Background()
	sess := NewSession()

	if _, err := svc.ResolveAndAdd(ctx, sess, "A1", 2); err != nil {
		t.Fatalf("ResolveAndAdd: %v", err)
	}
	if _, err := svc.ResolveAndAdd(ctx, sess, "A1", 3); err != nil {
		t.Fatalf("ResolveAndAdd: %v", err)
	}
	if !sess.Total().Equal(dec("25")) {
		t.Fatalf("expected total 25, got %s", sess.Total())
	}
	_ = sess.SetTendered(dec("30"))
	sale, err := svc.Confirm(ctx, sess, cashier)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if !sess.Empty() || !sess.Tendered().IsZero() {
		t.Fatalf("expected session cleared, got %+v", sess.View())
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one submitted sale, got %d", len(repo.created))
	}
	got := repo.created[0]
	if got.UserID != 7 || got.CashierName != "ana" || !got.Change.Equal(dec("5")) || !got.Total.Equal(dec("25")) {
		t.Fatalf("unexpected sale %+v", got)
	}
	if len(got.Lines) != 1 || got.Lines[0].Quantity != 5 {
		t.Fatalf("unexpected lines %+v", got.Lines)
	}
	if sale.ID != 1 || pub.calls != 1 {
		t.Fatalf("expected sale id 1 and one stock event, got id=%d events=%d", sale.ID, pub.calls)
	}
}

func TestResolveAndAddUnknownCode(t *testing.T) {
	svc, _, _ := newTestService()
	sess := NewSession()
	if _, err := svc.ResolveAndAdd(context.Background(), sess, "ZZ", 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if !sess.Empty() {
		t.Fatal("session should be unchanged")
	}
}

func TestResolveAndAddDefaultsQuantity(t *testing.T) {
	svc, _, _ := newTestService()
	sess := NewSession()
	if _, err := svc.ResolveAndAdd(context.Background(), sess, "B2", 0); err != nil {
		t.Fatalf("ResolveAndAdd: %v", err)
	}
	if sess.Quantity(2) != 1 {
		t.Fatalf("expected default quantity 1, got %d", sess.Quantity(2))
	}
	if _, err := svc.ResolveAndAdd(context.Background(), sess, "B2", -2); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity, got %v", err)
	}
}

func TestResolveAndAddRejectedWhileEditing(t *testing.T) {
	svc, _, _ := newTestService()
	sess := NewSession()
	_ = sess.BeginEdit()
	if _, err := svc.ResolveAndAdd(context.Background(), sess, "A1", 1); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
}

func TestConfirmRequiresPayment(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	sess := NewSession()

	if _, err := svc.Confirm(ctx, sess, cashier); !errors.Is(err, domain.ErrInsufficientPayment) {
		t.Fatalf("empty sale: expected insufficient payment, got %v", err)
	}
	_, _ = svc.ResolveAndAdd(ctx, sess, "A1", 2)
	_ = sess.SetTendered(dec("9.99"))
	if _, err := svc.Confirm(ctx, sess, cashier); !errors.Is(err, domain.ErrInsufficientPayment) {
		t.Fatalf("short payment: expected insufficient payment, got %v", err)
	}
	if len(repo.created) != 0 || sess.Empty() {
		t.Fatal("nothing should be submitted and the session kept")
	}
}

func TestConfirmExactPayment(t *testing.T) {
	svc, _, _ := newTestService()
	sess := NewSession()
	_, _ = svc.ResolveAndAdd(context.Background(), sess, "A1", 2)
	_ = sess.SetTendered(dec("10"))
	sale, err := svc.Confirm(context.Background(), sess, cashier)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if !sale.Change.IsZero() {
		t.Fatalf("expected zero change, got %s", sale.Change)
	}
}

func TestConfirmKeepsSessionOnBackendRejection(t *testing.T) {
	svc, repo, pub := newTestService()
	repo.createErr = domain.ErrConnection
	sess := NewSession()
	_, _ = svc.ResolveAndAdd(context.Background(), sess, "A1", 1)
	_ = sess.SetTendered(dec("5"))

	if _, err := svc.Confirm(context.Background(), sess, cashier); !errors.Is(err, domain.ErrConnection) {
		t.Fatalf("expected connection error, got %v", err)
	}
	if sess.Quantity(1) != 1 || !sess.Tendered().Equal(dec("5")) {
		t.Fatalf("session should be intact, got %+v", sess.View())
	}
	if pub.calls != 0 {
		t.Fatal("no stock event expected on failure")
	}
}

func TestConfirmRejectedWhileEditing(t *testing.T) {
	svc, repo, _ := newTestService()
	sess := NewSession()
	_, _ = svc.ResolveAndAdd(context.Background(), sess, "A1", 1)
	_ = sess.SetTendered(dec("5"))
	_ = sess.BeginEdit()
	if _, err := svc.Confirm(context.Background(), sess, cashier); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatal("sale must not be submitted while editing")
	}
}

func TestRegistrySerializesPerCashier(t *testing.T) {
	reg := NewRegistry()
	p := product(1, "A1", "1", 1000)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = reg.With(7, func(s *Session) error { return s.Add(p, 2) })
		}()
	}
	wg.Wait()

	var qty int
	_ = reg.With(7, func(s *Session) error {
		qty = s.Quantity(1)
		return nil
	})
	if qty != 100 {
		t.Fatalf("expected 100 units, got %d", qty)
	}
	if !reg.Pending(7) || reg.Pending(8) {
		t.Fatal("unexpected pending state")
	}
	reg.Drop(7)
	if reg.Pending(7) {
		t.Fatal("expected no pending sale after drop")
	}
}
