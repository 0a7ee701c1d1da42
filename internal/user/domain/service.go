package domain

import (
	"context"
	"errors"

	"github.com/openfaktura/backend/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*User, error)
	List(ctx context.Context, page pagination.Pagination) (*pagination.Page[*User], error)
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*User, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Role      string  `json:"role"`
	TenantID  *string `json:"tenantId"`
	IsActive  *bool   `json:"isActive"`
}

type UpdateRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	Role      *string `json:"role"`
	TenantID  *string `json:"tenantId"`
	IsActive  *bool   `json:"isActive"`
}

var (
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrInvalidPassword = errors.New("invalid_password")
	ErrInvalidRole     = errors.New("invalid_role")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("user_not_found")
)
