// Package repository provides a generic gorm-backed store shared by the
// simple CRUD domains.
package repository

import (
	"context"

	"github.com/openfaktura/backend/pkg/db/option"
	"gorm.io/gorm"
)

type Repository[T any] interface {
	WithTrx(tx *gorm.DB) Repository[T]
	Find(ctx context.Context, query *T, opts ...option.QueryOption) ([]*T, error)
	FindOne(ctx context.Context, query *T, opts ...option.QueryOption) (*T, error)
	FindByID(ctx context.Context, id any, opts ...option.QueryOption) (*T, error)
	Create(ctx context.Context, resource *T) error
	Save(ctx context.Context, resource *T) error
	Delete(ctx context.Context, id any) (int64, error)
	Count(ctx context.Context, query *T) (int64, error)
}
