package supplier

import (
	"context"
	"fmt"

	"sowin-pos/internal/backend"
	"sowin-pos/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Supplier, error)
	Create(ctx context.Context, s domain.Supplier) (*domain.Supplier, error)
	Update(ctx context.Context, s domain.Supplier) (*domain.Supplier, error)
	Delete(ctx context.Context, id int64) error
}

type restRepo struct {
	api backend.Requester
}

func NewREST(api backend.Requester) Repository {
	return &restRepo{api: api}
}

func (r *restRepo) List(ctx context.Context) ([]domain.Supplier, error) {
	var out []domain.Supplier
	if err := r.api.Get(ctx, "/api/proveedores", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *restRepo) Create(ctx context.Context, s domain.Supplier) (*domain.Supplier, error) {
	var out domain.Supplier
	if err := r.api.Post(ctx, "/api/proveedores", s, &out); err != nil {
		return nil, err
	}
	if out.ID == 0 {
		out = s
	}
	return &out, nil
}

func (r *restRepo) Update(ctx context.Context, s domain.Supplier) (*domain.Supplier, error) {
	var out domain.Supplier
	if err := r.api.Put(ctx, fmt.Sprintf("/api/proveedores/%d", s.ID), s, &out); err != nil {
		return nil, err
	}
	if out.ID == 0 {
		out = s
	}
	return &out, nil
}

func (r *restRepo) Delete(ctx context.Context, id int64) error {
	return r.api.Delete(ctx, fmt.Sprintf("/api/proveedores/%d", id))
}
