package sale

import (
	"errors"
	"slices"
	"testing"

	"github.com/shopspring/decimal"

	"sowin-pos/internal/domain"
)

func product(id int64, code string, price string, stock int) domain.Product {
	return domain.Product{
		ID:        id,
		Code:      code,
		Name:      "product " + code,
		SalePrice: decimal.RequireFromString(price),
		Stock:     stock,
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSessionAccumulatesRepeatedAdds(t *testing.T) {
	s := NewSession()
	a1 := product(1, "A1", "5.00", 10)

	if err := s.Add(a1, 2); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !s.Total().Equal(dec("10")) {
		t.Fatalf("expected total 10.00, got %s", s.Total())
	}
	if err := s.Add(a1, 3); err != nil {
		t.Fatalf("Add: %v", err)
	}
	lines := s.Lines()
	if len(lines) != 1 || lines[0].Quantity != 5 || !lines[0].Total.Equal(dec("25")) {
		t.Fatalf("unexpected lines %+v", lines)
	}
	if err := s.SetTendered(dec("30.00")); err != nil {
		t.Fatalf("SetTendered: %v", err)
	}
	if !s.Change().Equal(dec("5")) {
		t.Fatalf("expected change 5.00, got %s", s.Change())
	}
}

func TestSessionRejectsAddBeyondStock(t *testing.T) {
	s := NewSession()
	b2 := product(2, "B2", "1.50", 10)

	if err := s.Add(b2, 8); err != nil {
		t.Fatalf("Add: %v", err)
	}
	err := s.Add(b2, 5)
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if s.Quantity(2) != 8 {
		t.Fatalf("expected quantity to remain 8, got %d", s.Quantity(2))
	}
}

func TestSessionQuantityIsSumWhileWithinStock(t *testing.T) {
	s := NewSession()
	p := product(1, "A1", "2.00", 7)
	want := 0
	for _, q := range []int{1, 2, 3, 4, 1} {
		err := s.Add(p, q)
		if want+q > p.Stock {
			if !errors.Is(err, domain.ErrInsufficientStock) {
				t.Fatalf("adding %d over %d: expected insufficient stock, got %v", q, want, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Add(%d): %v", q, err)
		}
		want += q
		if got := s.Quantity(1); got != want {
			t.Fatalf("expected quantity %d, got %d", want, got)
		}
	}
	if want != 7 {
		t.Fatalf("expected to end at full stock, got %d", want)
	}
}

func TestSessionKeepsInsertionOrder(t *testing.T) {
	s := NewSession()
	_ = s.Add(product(3, "C", "1", 5), 1)
	_ = s.Add(product(1, "A", "1", 5), 1)
	_ = s.Add(product(2, "B", "1", 5), 1)
	_ = s.Add(product(3, "C", "1", 5), 1)

	var ids []int64
	for _, l := range s.Lines() {
		ids = append(ids, l.ProductID)
	}
	if !slices.Equal(ids, []int64{3, 1, 2}) {
		t.Fatalf("unexpected order %v", ids)
	}
}

func TestSessionKeepsUnitPriceSnapshot(t *testing.T) {
	s := NewSession()
	p := product(1, "A1", "5.00", 10)
	_ = s.Add(p, 1)
	p.SalePrice = dec("9.00")
	_ = s.Add(p, 1)
	if !s.Total().Equal(dec("10")) {
		t.Fatalf("expected price captured at first add, total %s", s.Total())
	}
}

func TestSessionRemoveIsIdempotent(t *testing.T) {
	s := NewSession()
	_ = s.Add(product(1, "A1", "5", 10), 2)
	s.Remove(1)
	s.Remove(1)
	s.Remove(42)
	if !s.Empty() {
		t.Fatalf("expected empty session, got %+v", s.Lines())
	}
}

func TestSessionCancelEditRestoresLines(t *testing.T) {
	s := NewSession()
	_ = s.Add(product(1, "A1", "5.00", 10), 2)
	_ = s.Add(product(2, "B2", "1.25", 10), 4)
	before := s.Lines()

	if err := s.BeginEdit(); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	_ = s.SetQuantity(1, 9)
	_ = s.SetQuantity(2, 0)
	s.Remove(1)
	if err := s.CancelEdit(); err != nil {
		t.Fatalf("CancelEdit: %v", err)
	}
	if s.Editing() {
		t.Fatal("expected normal state after cancel")
	}
	after := s.Lines()
	if len(after) != len(before) {
		t.Fatalf("expected %d lines, got %d", len(before), len(after))
	}
	for i := range before {
		b, a := before[i], after[i]
		if a.ProductID != b.ProductID || a.Quantity != b.Quantity || !a.Total.Equal(b.Total) {
			t.Fatalf("line %d: expected %+v, got %+v", i, b, a)
		}
	}
}

func TestSessionCommitEditRejectsNonPositive(t *testing.T) {
	s := NewSession()
	_ = s.Add(product(1, "A1", "5.00", 10), 2)
	_ = s.BeginEdit()
	if err := s.SetQuantity(1, 0); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if err := s.CommitEdit(); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity, got %v", err)
	}
	if !s.Editing() {
		t.Fatal("expected to remain editing after failed commit")
	}
	// the buffer survives the failed commit
	if err := s.CancelEdit(); err != nil {
		t.Fatalf("CancelEdit: %v", err)
	}
	if s.Quantity(1) != 2 {
		t.Fatalf("expected quantity restored to 2, got %d", s.Quantity(1))
	}
}

func TestSessionCommitEditKeepsChanges(t *testing.T) {
	s := NewSession()
	_ = s.Add(product(1, "A1", "5.00", 10), 2)
	_ = s.BeginEdit()
	_ = s.SetQuantity(1, 4)
	if err := s.CommitEdit(); err != nil {
		t.Fatalf("CommitEdit: %v", err)
	}
	if s.Editing() || s.Quantity(1) != 4 || !s.Total().Equal(dec("20")) {
		t.Fatalf("unexpected state editing=%v qty=%d total=%s", s.Editing(), s.Quantity(1), s.Total())
	}
}

func TestSessionSetQuantityChecksStockSnapshot(t *testing.T) {
	s := NewSession()
	_ = s.Add(product(1, "A1", "5.00", 6), 1)
	_ = s.BeginEdit()
	if err := s.SetQuantity(1, 7); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if err := s.SetQuantity(99, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSessionStateTransitions(t *testing.T) {
	s := NewSession()
	if err := s.SetQuantity(1, 1); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("SetQuantity outside edit: expected invalid state, got %v", err)
	}
	if err := s.CommitEdit(); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("CommitEdit outside edit: expected invalid state, got %v", err)
	}
	if err := s.CancelEdit(); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("CancelEdit outside edit: expected invalid state, got %v", err)
	}
	_ = s.BeginEdit()
	if err := s.BeginEdit(); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("nested BeginEdit: expected invalid state, got %v", err)
	}
	if err := s.Add(product(1, "A1", "1", 5), 1); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("Add while editing: expected invalid state, got %v", err)
	}
}

func TestSessionChangeTracksEveryMutation(t *testing.T) {
	s := NewSession()
	_ = s.SetTendered(dec("50"))
	check := func(step string) {
		t.Helper()
		want := s.Tendered().Sub(s.Total())
		if !s.Change().Equal(want) {
			t.Fatalf("%s: change %s, want %s", step, s.Change(), want)
		}
	}
	check("empty")
	_ = s.Add(product(1, "A1", "3.10", 10), 3)
	check("add")
	_ = s.Add(product(2, "B2", "0.45", 10), 2)
	check("second add")
	_ = s.BeginEdit()
	_ = s.SetQuantity(1, 1)
	check("edit")
	_ = s.CancelEdit()
	check("cancel")
	s.Remove(2)
	check("remove")
	_ = s.SetTendered(dec("1"))
	check("tender")
}

func TestSessionRejectsNegativeTendered(t *testing.T) {
	s := NewSession()
	if err := s.SetTendered(dec("-1")); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !s.Tendered().IsZero() {
		t.Fatalf("tendered should be unchanged, got %s", s.Tendered())
	}
}

func TestSessionRejectsNonPositiveAdd(t *testing.T) {
	s := NewSession()
	if err := s.Add(product(1, "A1", "1", 5), 0); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity, got %v", err)
	}
}

func TestSessionClearResetsEverything(t *testing.T) {
	s := NewSession()
	id := s.ID()
	_ = s.Add(product(1, "A1", "5.00", 10), 2)
	_ = s.SetTendered(dec("20"))
	_ = s.BeginEdit()

	s.Clear()
	if !s.Empty() || !s.Tendered().IsZero() || s.Editing() {
		t.Fatalf("unexpected state after clear: %+v", s.View())
	}
	if s.ID() == id {
		t.Fatal("expected a new session id after clear")
	}
}
