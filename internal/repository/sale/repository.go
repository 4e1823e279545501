package sale

import (
	"context"
	"fmt"

	"sowin-pos/internal/backend"
	"sowin-pos/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, s domain.Sale) (*domain.Sale, error)
	List(ctx context.Context) ([]domain.Sale, error)
	ListByCashier(ctx context.Context, userID int64) ([]domain.Sale, error)
	ListDetails(ctx context.Context) ([]domain.SaleDetail, error)
}

type restRepo struct {
	api backend.Requester
}

func NewREST(api backend.Requester) Repository {
	return &restRepo{api: api}
}

func (r *restRepo) Create(ctx context.Context, s domain.Sale) (*domain.Sale, error) {
	var out struct {
		ID int64 `json:"id_venta"`
	}
	if err := r.api.Post(ctx, "/api/ventas", s, &out); err != nil {
		return nil, err
	}
	created := s
	created.ID = out.ID
	return &created, nil
}

func (r *restRepo) List(ctx context.Context) ([]domain.Sale, error) {
	var out []domain.Sale
	if err := r.api.Get(ctx, "/api/ventas", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *restRepo) ListByCashier(ctx context.Context, userID int64) ([]domain.Sale, error) {
	var out []domain.Sale
	if err := r.api.Get(ctx, fmt.Sprintf("/api/ventas/cajero/%d", userID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *restRepo) ListDetails(ctx context.Context) ([]domain.SaleDetail, error) {
	var out []domain.SaleDetail
	if err := r.api.Get(ctx, "/api/salidas/detalle-salidas", &out); err != nil {
		return nil, err
	}
	return out, nil
}
