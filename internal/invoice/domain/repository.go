package domain

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openfaktura/backend/pkg/db/pagination"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB, companyID *uuid.UUID, page pagination.Pagination) ([]*Invoice, int64, error)
}
