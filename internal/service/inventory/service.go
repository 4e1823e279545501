package inventory

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"sowin-pos/internal/domain"
	categoryrepo "sowin-pos/internal/repository/category"
	entryrepo "sowin-pos/internal/repository/entry"
	movementrepo "sowin-pos/internal/repository/movement"
	productrepo "sowin-pos/internal/repository/product"
	supplierrepo "sowin-pos/internal/repository/supplier"
)

type publisher interface {
	Publish(ctx context.Context) error
}

type Repos struct {
	Products   productrepo.Repository
	Categories categoryrepo.Repository
	Suppliers  supplierrepo.Repository
	Entries    entryrepo.Repository
	Movements  movementrepo.Repository
}

type Service struct {
	repos  Repos
	events publisher
	logger *log.Logger
	loc    *time.Location
}

func New(repos Repos, events publisher, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repos: repos, events: events, logger: logger, loc: time.Local}
}

func (s *Service) stockChanged(ctx context.Context) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx); err != nil {
		s.logger.Printf("inventory: publish stock change error=%v", err)
	}
}

func missing(fields ...string) error {
	return fmt.Errorf("%w: missing %s", domain.ErrValidation, strings.Join(fields, ", "))
}

func validateProduct(p domain.Product) error {
	var fields []string
	if strings.TrimSpace(p.Name) == "" {
		fields = append(fields, "nombre_producto")
	}
	if p.CategoryID == 0 {
		fields = append(fields, "id_categoria")
	}
	if !p.PurchasePrice.IsPositive() {
		fields = append(fields, "precio_compra")
	}
	if !p.SalePrice.IsPositive() {
		fields = append(fields, "precio_venta")
	}
	if len(fields) > 0 {
		return missing(fields...)
	}
	return nil
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repos.Products.List(ctx)
}

// CreateProduct registers a product on behalf of creator, who may be nil.
func (s *Service) CreateProduct(ctx context.Context, p domain.Product, creator *domain.User) (*domain.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Code = strings.TrimSpace(p.Code)
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if creator != nil {
		id := creator.ID
		p.CreatedBy = &id
		p.CreatorName = creator.Username
	}
	created, err := s.repos.Products.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.stockChanged(ctx)
	return created, nil
}

func (s *Service) UpdateProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.ID == 0 {
		return nil, missing("id_producto")
	}
	p.Name = strings.TrimSpace(p.Name)
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	updated, err := s.repos.Products.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	s.stockChanged(ctx)
	return updated, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.repos.Products.Delete(ctx, id); err != nil {
		return err
	}
	s.stockChanged(ctx)
	return nil
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repos.Categories.List(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, missing("nombre_categoria")
	}
	return s.repos.Categories.Create(ctx, name)
}

func (s *Service) UpdateCategory(ctx context.Context, c domain.Category) (*domain.Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, missing("nombre_categoria")
	}
	return s.repos.Categories.Update(ctx, c)
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	return s.repos.Categories.Delete(ctx, id)
}

func (s *Service) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	return s.repos.Suppliers.List(ctx)
}

func (s *Service) CreateSupplier(ctx context.Context, sup domain.Supplier) (*domain.Supplier, error) {
	sup.Name = strings.TrimSpace(sup.Name)
	if sup.Name == "" {
		return nil, missing("nombre_proveedor")
	}
	return s.repos.Suppliers.Create(ctx, sup)
}

func (s *Service) UpdateSupplier(ctx context.Context, sup domain.Supplier) (*domain.Supplier, error) {
	sup.Name = strings.TrimSpace(sup.Name)
	if sup.Name == "" {
		return nil, missing("nombre_proveedor")
	}
	return s.repos.Suppliers.Update(ctx, sup)
}

func (s *Service) DeleteSupplier(ctx context.Context, id int64) error {
	return s.repos.Suppliers.Delete(ctx, id)
}

func (s *Service) ListEntries(ctx context.Context) ([]domain.StockEntry, error) {
	return s.repos.Entries.List(ctx)
}

// RecordEntry registers received stock and signals the stock change.
func (s *Service) RecordEntry(ctx context.Context, e domain.StockEntry, by *domain.User) error {
	var fields []string
	if e.ProductID == 0 {
		fields = append(fields, "id_producto")
	}
	if e.Quantity <= 0 {
		fields = append(fields, "cantidad")
	}
	if !e.UnitPrice.IsPositive() {
		fields = append(fields, "precio_unitario")
	}
	if len(fields) > 0 {
		return missing(fields...)
	}
	if by != nil {
		id := by.ID
		e.UserID = &id
	}
	if err := s.repos.Entries.Create(ctx, e); err != nil {
		return err
	}
	s.logger.Printf("inventory: entry product=%d quantity=%d", e.ProductID, e.Quantity)
	s.stockChanged(ctx)
	return nil
}

// DateRange selects whole local days. Zero bounds are open.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (s *Service) day(t time.Time) time.Time {
	t = t.In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}

func (s *Service) contains(r DateRange, t time.Time) bool {
	d := s.day(t)
	if !r.From.IsZero() && d.Before(s.day(r.From)) {
		return false
	}
	if !r.To.IsZero() && d.After(s.day(r.To)) {
		return false
	}
	return true
}

func (s *Service) checkRange(r DateRange) error {
	if !r.From.IsZero() && !r.To.IsZero() && s.day(r.From).After(s.day(r.To)) {
		return fmt.Errorf("%w: start date is after end date", domain.ErrValidation)
	}
	return nil
}

// ListMovements returns movements whose local date falls inside r, both
// ends included.
func (s *Service) ListMovements(ctx context.Context, r DateRange) ([]domain.Movement, error) {
	if err := s.checkRange(r); err != nil {
		return nil, err
	}
	all, err := s.repos.Movements.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Movement, 0, len(all))
	for _, m := range all {
		if s.contains(r, m.Date) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Service) DeleteMovement(ctx context.Context, id int64) error {
	return s.repos.Movements.Delete(ctx, id)
}

type RangeDeleteResult struct {
	Deleted int `json:"deleted"`
	Failed  int `json:"failed"`
}

// DeleteMovementRange deletes every movement in r one at a time. A failed
// delete is counted and does not stop the rest.
func (s *Service) DeleteMovementRange(ctx context.Context, r DateRange) (RangeDeleteResult, error) {
	if r.From.IsZero() || r.To.IsZero() {
		return RangeDeleteResult{}, missing("fechaInicio", "fechaFin")
	}
	movements, err := s.ListMovements(ctx, r)
	if err != nil {
		return RangeDeleteResult{}, err
	}
	if len(movements) == 0 {
		return RangeDeleteResult{}, fmt.Errorf("%w: no movements in range", domain.ErrNotFound)
	}
	var res RangeDeleteResult
	for _, m := range movements {
		if err := s.repos.Movements.Delete(ctx, m.ID); err != nil {
			s.logger.Printf("inventory: delete movement id=%d error=%v", m.ID, err)
			res.Failed++
			continue
		}
		res.Deleted++
	}
	s.logger.Printf("inventory: range delete deleted=%d failed=%d", res.Deleted, res.Failed)
	return res, nil
}

// PurgeMovements asks the backend to drop history older than KeepMonths, or
// inside the given dates when both are set.
func (s *Service) PurgeMovements(ctx context.Context, in domain.MovementPurge) (int, error) {
	if in.KeepMonths < 0 {
		return 0, fmt.Errorf("%w: months to keep cannot be negative", domain.ErrValidation)
	}
	n, err := s.repos.Movements.Purge(ctx, in)
	if err != nil {
		return 0, err
	}
	s.logger.Printf("inventory: purged movements count=%d keep_months=%d", n, in.KeepMonths)
	return n, nil
}
