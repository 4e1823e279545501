package sale

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"sowin-pos/internal/domain"
)

type productFinder interface {
	FindByCode(ctx context.Context, code string) (*domain.Product, error)
}

type saleRepo interface {
	Create(ctx context.Context, s domain.Sale) (*domain.Sale, error)
	List(ctx context.Context) ([]domain.Sale, error)
	ListByCashier(ctx context.Context, userID int64) ([]domain.Sale, error)
}

type publisher interface {
	Publish(ctx context.Context) error
}

// Cashier identifies who rings up a sale.
type Cashier struct {
	UserID int64
	Name   string
}

type Service struct {
	catalog productFinder
	repo    saleRepo
	events  publisher
	logger  *log.Logger
	now     func() time.Time
}

func New(catalog productFinder, repo saleRepo, events publisher, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{catalog: catalog, repo: repo, events: events, logger: logger, now: time.Now}
}

// ResolveAndAdd looks up code and adds qty units of the product to sess. A
// zero qty means one unit.
func (s *Service) ResolveAndAdd(ctx context.Context, sess *Session, code string, qty int) (*domain.Product, error) {
	if sess.Editing() {
		return nil, fmt.Errorf("%w: finish editing before adding products", domain.ErrInvalidState)
	}
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	p, err := s.catalog.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := sess.Add(*p, qty); err != nil {
		return nil, err
	}
	return p, nil
}

// Confirm submits sess to the backend and clears it once accepted. On any
// failure sess is left untouched.
func (s *Service) Confirm(ctx context.Context, sess *Session, cashier Cashier) (*domain.Sale, error) {
	if sess.Editing() {
		return nil, fmt.Errorf("%w: finish editing before confirming", domain.ErrInvalidState)
	}
	if sess.Empty() {
		return nil, fmt.Errorf("%w: sale has no products", domain.ErrInsufficientPayment)
	}
	total := sess.Total()
	if sess.Tendered().LessThan(total) {
		return nil, fmt.Errorf("%w: tendered %s, total %s", domain.ErrInsufficientPayment, sess.Tendered().StringFixed(2), total.StringFixed(2))
	}

	created, err := s.repo.Create(ctx, domain.Sale{
		Date:        s.now(),
		UserID:      cashier.UserID,
		CashierName: cashier.Name,
		Total:       total,
		Tendered:    sess.Tendered(),
		Change:      sess.Change(),
		Lines:       sess.Lines(),
	})
	if err != nil {
		s.logger.Printf("sale service: confirm session=%s error=%v", sess.ID(), err)
		return nil, err
	}
	s.logger.Printf("sale service: confirmed session=%s sale=%d total=%s", sess.ID(), created.ID, total.StringFixed(2))
	sess.Clear()

	if s.events != nil {
		if err := s.events.Publish(ctx); err != nil {
			s.logger.Printf("sale service: publish stock change error=%v", err)
		}
	}
	return created, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Sale, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByCashier(ctx context.Context, userID int64) ([]domain.Sale, error) {
	return s.repo.ListByCashier(ctx, userID)
}
