package domain

import (
	"context"
	"errors"

	"github.com/openfaktura/backend/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Tenant, error)
	List(ctx context.Context, page pagination.Pagination) (*pagination.Page[*Tenant], error)
	GetByID(ctx context.Context, id string) (*Tenant, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Tenant, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

type UpdateRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("tenant_not_found")
	ErrInUse       = errors.New("tenant_in_use")
)
