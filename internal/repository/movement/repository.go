package movement

import (
	"context"
	"fmt"

	"sowin-pos/internal/backend"
	"sowin-pos/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Movement, error)
	Delete(ctx context.Context, id int64) error
	// Purge returns how many movements the backend removed.
	Purge(ctx context.Context, in domain.MovementPurge) (int, error)
}

type restRepo struct {
	api backend.Requester
}

func NewREST(api backend.Requester) Repository {
	return &restRepo{api: api}
}

func (r *restRepo) List(ctx context.Context) ([]domain.Movement, error) {
	var out []domain.Movement
	if err := r.api.Get(ctx, "/api/movimientos", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *restRepo) Delete(ctx context.Context, id int64) error {
	return r.api.Delete(ctx, fmt.Sprintf("/api/movimientos/%d", id))
}

func (r *restRepo) Purge(ctx context.Context, in domain.MovementPurge) (int, error) {
	var out struct {
		Deleted int `json:"eliminados"`
	}
	if err := r.api.Post(ctx, "/api/productos/eliminar-movimientos", in, &out); err != nil {
		return 0, err
	}
	return out.Deleted, nil
}
