package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sowin-pos/internal/domain"
)

// Printer turns a rendered document into a printable artifact and returns
// where it was written.
type Printer interface {
	Print(ctx context.Context, name string, html []byte) (string, error)
}

type saleLister interface {
	ListByCashier(ctx context.Context, userID int64) ([]domain.Sale, error)
}

type pendingChecker interface {
	Pending(userID int64) bool
}

// Document is a rendered ticket or report.
type Document struct {
	Name        string `json:"name"`
	HTML        string `json:"html"`
	PrintedPath string `json:"printedPath,omitempty"`
}

type ticketData struct {
	Business  domain.BusinessProfile
	Sale      domain.Sale
	PrintedAt time.Time
}

// Closing summarizes a cashier's sales at register close.
type Closing struct {
	ID          string                 `json:"id"`
	Number      string                 `json:"number"`
	Business    domain.BusinessProfile `json:"business"`
	Cashier     string                 `json:"cashier"`
	GeneratedAt time.Time              `json:"generatedAt"`
	Count       int                    `json:"count"`
	Income      decimal.Decimal        `json:"income"`
	Sales       []domain.Sale          `json:"sales"`
}

// ReportNumber formats the human facing closing number.
func ReportNumber(at time.Time) string {
	return at.Local().Format("20060102-150405")
}

func NewClosing(biz domain.BusinessProfile, cashier string, sales []domain.Sale, at time.Time) Closing {
	income := decimal.Zero
	for _, s := range sales {
		income = income.Add(s.Total)
	}
	return Closing{
		ID:          uuid.NewString(),
		Number:      ReportNumber(at),
		Business:    withDefaults(biz),
		Cashier:     cashier,
		GeneratedAt: at,
		Count:       len(sales),
		Income:      income,
		Sales:       sales,
	}
}

func RenderTicket(w io.Writer, biz domain.BusinessProfile, sale domain.Sale, at time.Time) error {
	if len(sale.Lines) == 0 {
		return fmt.Errorf("%w: ticket needs at least one product", domain.ErrValidation)
	}
	return ticketTmpl.Execute(w, ticketData{Business: withDefaults(biz), Sale: sale, PrintedAt: at})
}

func RenderClosing(w io.Writer, c Closing) error {
	return closingTmpl.Execute(w, c)
}

func withDefaults(biz domain.BusinessProfile) domain.BusinessProfile {
	if biz.Name == "" {
		biz.Name = domain.DefaultBusinessName
	}
	return biz
}

type Service struct {
	sales   saleLister
	pending pendingChecker
	printer Printer
	logger  *log.Logger
	now     func() time.Time
}

// New builds the report service. printer may be nil, in which case
// documents are rendered but not printed.
func New(sales saleLister, pending pendingChecker, printer Printer, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{sales: sales, pending: pending, printer: printer, logger: logger, now: time.Now}
}

// Ticket renders the ticket for a sale.
func (s *Service) Ticket(ctx context.Context, biz domain.BusinessProfile, sale domain.Sale) (*Document, error) {
	var buf bytes.Buffer
	if err := RenderTicket(&buf, biz, sale, s.now()); err != nil {
		return nil, err
	}
	name := fmt.Sprintf("ticket-%s", ReportNumber(s.now()))
	if sale.ID != 0 {
		name = fmt.Sprintf("ticket-%d", sale.ID)
	}
	return s.finish(ctx, name, buf.Bytes())
}

// Close builds the closing report for a cashier. It is refused while the
// cashier still has a sale in progress.
func (s *Service) Close(ctx context.Context, biz domain.BusinessProfile, userID int64, cashier string) (*Closing, *Document, error) {
	if s.pending != nil && s.pending.Pending(userID) {
		return nil, nil, fmt.Errorf("%w: finish or clear the current sale before closing", domain.ErrInvalidState)
	}
	sales, err := s.sales.ListByCashier(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	closing := NewClosing(biz, cashier, sales, s.now())

	var buf bytes.Buffer
	if err := RenderClosing(&buf, closing); err != nil {
		return nil, nil, err
	}
	doc, err := s.finish(ctx, "cierre-"+closing.Number, buf.Bytes())
	if err != nil {
		return nil, nil, err
	}
	s.logger.Printf("report: closing number=%s cashier=%s sales=%d income=%s", closing.Number, cashier, closing.Count, closing.Income.StringFixed(2))
	return &closing, doc, nil
}

func (s *Service) finish(ctx context.Context, name string, html []byte) (*Document, error) {
	doc := &Document{Name: name, HTML: string(html)}
	if s.printer == nil {
		return doc, nil
	}
	path, err := s.printer.Print(ctx, name, html)
	if err != nil {
		s.logger.Printf("report: print name=%s error=%v", name, err)
		return nil, err
	}
	doc.PrintedPath = path
	return doc, nil
}
