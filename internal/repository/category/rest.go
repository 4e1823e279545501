package category

import (
	"context"
	"fmt"

	"sowin-pos/internal/backend"
	"sowin-pos/internal/domain"
)

type restRepo struct {
	api backend.Requester
}

func NewREST(api backend.Requester) Repository {
	return &restRepo{api: api}
}

type categoryPayload struct {
	Name string `json:"nombre_categoria"`
}

func (r *restRepo) List(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	if err := r.api.Get(ctx, "/api/categorias", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *restRepo) Create(ctx context.Context, name string) (*domain.Category, error) {
	var out domain.Category
	if err := r.api.Post(ctx, "/api/categorias", categoryPayload{Name: name}, &out); err != nil {
		return nil, err
	}
	if out.Name == "" {
		out.Name = name
	}
	return &out, nil
}

func (r *restRepo) Update(ctx context.Context, c domain.Category) (*domain.Category, error) {
	var out domain.Category
	if err := r.api.Put(ctx, fmt.Sprintf("/api/categorias/%d", c.ID), categoryPayload{Name: c.Name}, &out); err != nil {
		return nil, err
	}
	if out.ID == 0 {
		out = c
	}
	return &out, nil
}

func (r *restRepo) Delete(ctx context.Context, id int64) error {
	return r.api.Delete(ctx, fmt.Sprintf("/api/categorias/%d", id))
}
