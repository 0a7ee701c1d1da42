package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openfaktura/backend/internal/invoice/domain"
	"github.com/openfaktura/backend/pkg/db/pagination"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Create(invoice).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).
		Preload("Issuer").
		Preload("Recipient").
		Preload("Items").
		Preload("Items.Article").
		First(&invoice, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, companyID *uuid.UUID, page pagination.Pagination) ([]*domain.Invoice, int64, error) {
	stmt := db.WithContext(ctx).Model(&domain.Invoice{})
	if companyID != nil {
		stmt = stmt.Where("issuer_id = ? OR recipient_id = ?", *companyID, *companyID)
	}
	// Session so the statement can serve both the count and the page query.
	stmt = stmt.Session(&gorm.Session{})

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*domain.Invoice
	err := stmt.
		Preload("Issuer").
		Preload("Recipient").
		Preload("Items").
		Preload("Items.Article").
		Order("issue_date desc").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
