package user

import (
	"context"
	"fmt"

	"sowin-pos/internal/backend"
	"sowin-pos/internal/domain"
)

type Repository interface {
	Login(ctx context.Context, username, password string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Register(ctx context.Context, u domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error

	ListRoles(ctx context.Context) ([]domain.Role, error)
	CreateRole(ctx context.Context, name string) (*domain.Role, error)
	DeleteRole(ctx context.Context, id int64) error
}

type restRepo struct {
	api backend.Requester
}

func NewREST(api backend.Requester) Repository {
	return &restRepo{api: api}
}

type credentials struct {
	Username string `json:"nombre_usuario"`
	Password string `json:"contrasena"`
}

func (r *restRepo) Login(ctx context.Context, username, password string) (*domain.User, error) {
	var out domain.User
	if err := r.api.Post(ctx, "/api/login/login", credentials{Username: username, Password: password}, &out); err != nil {
		return nil, err
	}
	out.Password = ""
	return &out, nil
}

func (r *restRepo) List(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := r.api.Get(ctx, "/api/login", &out); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Password = ""
	}
	return out, nil
}

func (r *restRepo) Register(ctx context.Context, u domain.User) (*domain.User, error) {
	payload := struct {
		Username string `json:"nombre_usuario"`
		Password string `json:"contrasena"`
		RoleID   int64  `json:"id_rol"`
	}{u.Username, u.Password, u.RoleID}

	var out domain.User
	if err := r.api.Post(ctx, "/api/login/register", payload, &out); err != nil {
		return nil, err
	}
	if out.Username == "" {
		out.Username = u.Username
		out.RoleID = u.RoleID
	}
	out.Password = ""
	return &out, nil
}

func (r *restRepo) Delete(ctx context.Context, id int64) error {
	return r.api.Delete(ctx, fmt.Sprintf("/api/login/%d", id))
}

func (r *restRepo) ListRoles(ctx context.Context) ([]domain.Role, error) {
	var out []domain.Role
	if err := r.api.Get(ctx, "/api/login/roles", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *restRepo) CreateRole(ctx context.Context, name string) (*domain.Role, error) {
	var out domain.Role
	if err := r.api.Post(ctx, "/api/login/roles", map[string]string{"nombre_rol": name}, &out); err != nil {
		return nil, err
	}
	if out.Name == "" {
		out.Name = name
	}
	return &out, nil
}

func (r *restRepo) DeleteRole(ctx context.Context, id int64) error {
	return r.api.Delete(ctx, fmt.Sprintf("/api/login/roles/%d", id))
}
