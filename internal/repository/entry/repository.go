package entry

import (
	"context"

	"sowin-pos/internal/backend"
	"sowin-pos/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.StockEntry, error)
	Create(ctx context.Context, e domain.StockEntry) error
}

type restRepo struct {
	api backend.Requester
}

func NewREST(api backend.Requester) Repository {
	return &restRepo{api: api}
}

func (r *restRepo) List(ctx context.Context) ([]domain.StockEntry, error) {
	var out []domain.StockEntry
	if err := r.api.Get(ctx, "/api/entradas", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *restRepo) Create(ctx context.Context, e domain.StockEntry) error {
	return r.api.Post(ctx, "/api/entradas", e, nil)
}
