package sale

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sowin-pos/internal/domain"
)

type line struct {
	productID int64
	code      string
	name      string
	quantity  int
	unitPrice decimal.Decimal
	// stock as reported by the catalog on the latest add
	stock int
}

func (l line) total() decimal.Decimal {
	return l.unitPrice.Mul(decimal.NewFromInt(int64(l.quantity)))
}

// editBuffer is the copy of the lines taken by BeginEdit. A session with a
// nil buffer is in the normal state.
type editBuffer struct {
	lines []line
}

// Session is one cashier's sale in progress. It is not safe for concurrent
// use; Registry serializes access per cashier.
type Session struct {
	id       string
	lines    []line
	tendered decimal.Decimal
	edit     *editBuffer
}

func NewSession() *Session {
	return &Session{id: uuid.NewString()}
}

// View is the JSON representation of a session.
type View struct {
	ID       string            `json:"id"`
	Editing  bool              `json:"editing"`
	Lines    []domain.SaleLine `json:"lines"`
	Total    decimal.Decimal   `json:"total"`
	Tendered decimal.Decimal   `json:"tendered"`
	Change   decimal.Decimal   `json:"change"`
}

func (s *Session) ID() string    { return s.id }
func (s *Session) Editing() bool { return s.edit != nil }
func (s *Session) Empty() bool   { return len(s.lines) == 0 }

func (s *Session) View() View {
	return View{
		ID:       s.id,
		Editing:  s.Editing(),
		Lines:    s.Lines(),
		Total:    s.Total(),
		Tendered: s.tendered,
		Change:   s.Change(),
	}
}

// Lines returns the line items in insertion order.
func (s *Session) Lines() []domain.SaleLine {
	out := make([]domain.SaleLine, 0, len(s.lines))
	for _, l := range s.lines {
		out = append(out, domain.SaleLine{
			ProductID:   l.productID,
			Code:        l.code,
			ProductName: l.name,
			Quantity:    l.quantity,
			UnitPrice:   l.unitPrice,
			Total:       l.total(),
			Subtotal:    l.total(),
		})
	}
	return out
}

// Quantity is the number of units of productID held by the session. A nil
// session holds nothing.
func (s *Session) Quantity(productID int64) int {
	if s == nil {
		return 0
	}
	if i := s.index(productID); i >= 0 {
		return s.lines[i].quantity
	}
	return 0
}

func (s *Session) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.total())
	}
	return total
}

func (s *Session) Tendered() decimal.Decimal { return s.tendered }

// Change is always derived from the tendered amount and the current total.
func (s *Session) Change() decimal.Decimal {
	return s.tendered.Sub(s.Total())
}

// Add merges qty units of p into the session. The unit price is captured on
// the first add and kept for the life of the line.
func (s *Session) Add(p domain.Product, qty int) error {
	if s.edit != nil {
		return fmt.Errorf("%w: finish editing before adding products", domain.ErrInvalidState)
	}
	if qty <= 0 {
		return domain.ErrInvalidQuantity
	}
	i := s.index(p.ID)
	held := 0
	if i >= 0 {
		held = s.lines[i].quantity
	}
	if held+qty > p.Stock {
		return fmt.Errorf("%w: %s requested %d, available %d", domain.ErrInsufficientStock, p.Name, held+qty, p.Stock)
	}
	if i >= 0 {
		s.lines[i].quantity += qty
		s.lines[i].stock = p.Stock
		return nil
	}
	s.lines = append(s.lines, line{
		productID: p.ID,
		code:      p.Code,
		name:      p.Name,
		quantity:  qty,
		unitPrice: p.SalePrice,
		stock:     p.Stock,
	})
	return nil
}

// Remove drops the line for productID. Removing an absent line is a no-op.
func (s *Session) Remove(productID int64) {
	if i := s.index(productID); i >= 0 {
		s.lines = slices.Delete(s.lines, i, i+1)
	}
}

func (s *Session) BeginEdit() error {
	if s.edit != nil {
		return fmt.Errorf("%w: already editing", domain.ErrInvalidState)
	}
	s.edit = &editBuffer{lines: slices.Clone(s.lines)}
	return nil
}

// SetQuantity overwrites a line quantity while editing. Non-positive values
// are accepted here and rejected by CommitEdit.
func (s *Session) SetQuantity(productID int64, qty int) error {
	if s.edit == nil {
		return fmt.Errorf("%w: quantities can only change while editing", domain.ErrInvalidState)
	}
	i := s.index(productID)
	if i < 0 {
		return domain.ErrNotFound
	}
	if qty > s.lines[i].stock {
		return fmt.Errorf("%w: %s requested %d, available %d", domain.ErrInsufficientStock, s.lines[i].name, qty, s.lines[i].stock)
	}
	s.lines[i].quantity = qty
	return nil
}

func (s *Session) CommitEdit() error {
	if s.edit == nil {
		return fmt.Errorf("%w: not editing", domain.ErrInvalidState)
	}
	for _, l := range s.lines {
		if l.quantity <= 0 {
			return fmt.Errorf("%w: %s has quantity %d", domain.ErrInvalidQuantity, l.name, l.quantity)
		}
	}
	s.edit = nil
	return nil
}

func (s *Session) CancelEdit() error {
	if s.edit == nil {
		return fmt.Errorf("%w: not editing", domain.ErrInvalidState)
	}
	s.lines = s.edit.lines
	s.edit = nil
	return nil
}

func (s *Session) SetTendered(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: tendered amount cannot be negative", domain.ErrValidation)
	}
	s.tendered = amount
	return nil
}

// Clear empties the session in any state and starts a new sale id.
func (s *Session) Clear() {
	s.lines = nil
	s.tendered = decimal.Zero
	s.edit = nil
	s.id = uuid.NewString()
}

func (s *Session) index(productID int64) int {
	return slices.IndexFunc(s.lines, func(l line) bool { return l.productID == productID })
}
