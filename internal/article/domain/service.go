package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/openfaktura/backend/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Article, error)
	List(ctx context.Context, page pagination.Pagination) (*pagination.Page[*Article], error)
	GetByID(ctx context.Context, id string) (*Article, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Article, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Code      string          `json:"code"`
	VatCode   *int            `json:"vatCode"`
	BasePrice decimal.Decimal `json:"basePrice"`
}

type UpdateRequest struct {
	Name      *string          `json:"name"`
	Unit      *string          `json:"unit"`
	Code      *string          `json:"code"`
	VatCode   *int             `json:"vatCode"`
	BasePrice *decimal.Decimal `json:"basePrice"`
}

var (
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidVatCode = errors.New("invalid_vat_code")
	ErrInvalidPrice   = errors.New("invalid_base_price")
	ErrInvalidID      = errors.New("invalid_id")
	ErrNotFound       = errors.New("article_not_found")
)
