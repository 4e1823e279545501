package advisory

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"sowin-pos/internal/domain"
)

// Board holds the live notification list. Read notifications stay visible
// for the grace period and are then purged; a purged notification is not
// raised again until its condition clears.
type Board struct {
	mu        sync.Mutex
	items     []Notification
	dismissed map[string]struct{}
	grace     time.Duration
	now       func() time.Time
}

func NewBoard(grace time.Duration, now func() time.Time) *Board {
	if now == nil {
		now = time.Now
	}
	return &Board{dismissed: make(map[string]struct{}), grace: grace, now: now}
}

// Refresh replaces the list with a fresh classification of products,
// carrying over the read state of notifications that are still raised.
func (b *Board) Refresh(products []domain.Product) {
	fresh := Build(products)

	b.mu.Lock()
	defer b.mu.Unlock()

	prev := make(map[string]Notification, len(b.items))
	for _, n := range b.items {
		prev[n.ID] = n
	}
	raised := make(map[string]struct{}, len(fresh))
	items := make([]Notification, 0, len(fresh))
	for _, n := range fresh {
		raised[n.ID] = struct{}{}
		if _, gone := b.dismissed[n.ID]; gone {
			continue
		}
		if old, ok := prev[n.ID]; ok && old.Read {
			n.Read = true
			n.ReadAt = old.ReadAt
		}
		items = append(items, n)
	}
	for id := range b.dismissed {
		if _, ok := raised[id]; !ok {
			delete(b.dismissed, id)
		}
	}
	b.items = items
	b.purgeLocked()
}

// List returns the current notifications. Read ones past their grace period
// are purged first.
func (b *Board) List() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.purgeLocked()
	return append([]Notification(nil), b.items...)
}

func (b *Board) Unread() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.purgeLocked()
	out := make([]Notification, 0)
	for _, n := range b.items {
		if !n.Read {
			out = append(out, n)
		}
	}
	return out
}

func (b *Board) MarkRead(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		if b.items[i].ID == id {
			b.markLocked(i)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (b *Board) MarkAllRead() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		b.markLocked(i)
	}
}

// Purge drops read notifications whose grace period has elapsed and returns
// how many were dropped.
func (b *Board) Purge() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.purgeLocked()
}

func (b *Board) markLocked(i int) {
	if b.items[i].Read {
		return
	}
	at := b.now()
	b.items[i].Read = true
	b.items[i].ReadAt = &at
}

func (b *Board) purgeLocked() int {
	now := b.now()
	kept := b.items[:0]
	purged := 0
	for _, n := range b.items {
		if n.Read && n.ReadAt != nil && !now.Before(n.ReadAt.Add(b.grace)) {
			b.dismissed[n.ID] = struct{}{}
			purged++
			continue
		}
		kept = append(kept, n)
	}
	b.items = kept
	return purged
}

// RestockDraft pre-fills a stock entry for a product raised by the board.
type RestockDraft struct {
	ProductID   int64           `json:"id_producto"`
	ProductName string          `json:"nombre_producto"`
	Code        string          `json:"codigo_barras"`
	Stock       int             `json:"stock_actual"`
	Minimum     int             `json:"stock_minimo"`
	Maximum     int             `json:"stock_maximo"`
	Quantity    int             `json:"cantidad_sugerida"`
	UnitPrice   decimal.Decimal `json:"precio_unitario"`
}

// DraftFor suggests topping the product up to its maximum, or a single unit
// when no positive gap exists.
func DraftFor(p domain.Product) RestockDraft {
	qty := p.StockMax - p.Stock
	if qty <= 0 {
		qty = 1
	}
	return RestockDraft{
		ProductID:   p.ID,
		ProductName: p.Name,
		Code:        p.Code,
		Stock:       p.Stock,
		Minimum:     p.StockMin,
		Maximum:     p.StockMax,
		Quantity:    qty,
		UnitPrice:   p.PurchasePrice,
	}
}

// Draft marks the notification read and returns a restock draft for its
// product.
func (b *Board) Draft(id string) (RestockDraft, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		if b.items[i].ID == id {
			b.markLocked(i)
			return DraftFor(b.items[i].product), nil
		}
	}
	return RestockDraft{}, fmt.Errorf("%w: notification %s", domain.ErrNotFound, id)
}
