package product

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"

	"sowin-pos/internal/backend"
	"sowin-pos/internal/domain"
)

type restRepo struct {
	api    backend.Requester
	logger *log.Logger
}

func NewREST(api backend.Requester, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &restRepo{api: api, logger: logger}
}

type lookupResponse struct {
	Found   bool            `json:"encontrado"`
	Product *domain.Product `json:"producto"`
}

func (r *restRepo) List(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := r.api.Get(ctx, "/api/productos", &out); err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	r.logger.Printf("product repo: list count=%d", len(out))
	return out, nil
}

func (r *restRepo) GetByCode(ctx context.Context, code string) (*domain.Product, error) {
	var resp lookupResponse
	if err := r.api.Get(ctx, "/api/productos/buscar/"+url.PathEscape(code), &resp); err != nil {
		return nil, err
	}
	if !resp.Found || resp.Product == nil {
		r.logger.Printf("product repo: code=%s not found", code)
		return nil, domain.ErrNotFound
	}
	return resp.Product, nil
}

func (r *restRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	var out domain.Product
	if err := r.api.Post(ctx, "/api/productos", p, &out); err != nil {
		r.logger.Printf("product repo: create code=%s error=%v", p.Code, err)
		return nil, err
	}
	if out.ID == 0 {
		out = p
	}
	r.logger.Printf("product repo: created code=%s id=%d", out.Code, out.ID)
	return &out, nil
}

func (r *restRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	var out domain.Product
	if err := r.api.Put(ctx, fmt.Sprintf("/api/productos/%d", p.ID), p, &out); err != nil {
		r.logger.Printf("product repo: update id=%d error=%v", p.ID, err)
		return nil, err
	}
	if out.ID == 0 {
		out = p
	}
	return &out, nil
}

func (r *restRepo) Delete(ctx context.Context, id int64) error {
	return r.api.Delete(ctx, fmt.Sprintf("/api/productos/%d", id))
}
