package catalog

import (
	"context"
	"iter"
	"strings"

	"sowin-pos/internal/domain"
)

type productRepo interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByCode(ctx context.Context, code string) (*domain.Product, error)
}

// Reservations reports how many units of a product are already held by a
// sale in progress.
type Reservations interface {
	Quantity(productID int64) int
}

type Service struct {
	repo productRepo
}

func New(repo productRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

// FindByCode resolves an exact scan code.
func (s *Service) FindByCode(ctx context.Context, code string) (*domain.Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetByCode(ctx, code)
}

// Search fetches one catalog snapshot and returns a sequence over the
// products whose name or code contains text, ignoring case. A categoryID of
// zero disables the category filter. The sequence may be ranged over any
// number of times.
func (s *Service) Search(ctx context.Context, text string, categoryID int64) (iter.Seq[domain.Product], error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(text))
	return func(yield func(domain.Product) bool) {
		for _, p := range products {
			if categoryID != 0 && p.CategoryID != categoryID {
				continue
			}
			if needle != "" &&
				!strings.Contains(strings.ToLower(p.Name), needle) &&
				!strings.Contains(strings.ToLower(p.Code), needle) {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}, nil
}

// AvailableStock is the stock left for new reservations once the units held
// by held are subtracted. held may be nil; a non-nil held must tolerate a nil
// receiver, as *sale.Session does.
func AvailableStock(p domain.Product, held Reservations) int {
	if held == nil {
		return p.Stock
	}
	return p.Stock - held.Quantity(p.ID)
}
