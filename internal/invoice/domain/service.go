package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/openfaktura/backend/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Invoice, error)
	GetByID(ctx context.Context, id string) (*Invoice, error)
	List(ctx context.Context, page pagination.Pagination) (*pagination.Page[*Invoice], error)
	ListByCompany(ctx context.Context, companyID string, page pagination.Pagination) (*pagination.Page[*Invoice], error)
	GeneratePDF(ctx context.Context, id string) ([]byte, error)
}

type CreateRequest struct {
	IssuerID    string        `json:"issuerId"`
	RecipientID string        `json:"recipientId"`
	Items       []LineRequest `json:"items"`
	IssueDate   *string       `json:"issueDate"`
}

type LineRequest struct {
	ArticleID int64            `json:"articleId"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
}

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrNoItems          = errors.New("invalid_items")
	ErrInvalidQuantity  = errors.New("invalid_quantity")
	ErrInvalidIssueDate = errors.New("invalid_issue_date")
	ErrCompanyNotFound  = errors.New("issuer_or_recipient_not_found")
	ErrNotFound         = errors.New("invoice_not_found")
	ErrRenderTimeout    = errors.New("pdf_render_timeout")
)

// ArticleNotFoundError names the missing article so callers see which line
// aborted the invoice.
type ArticleNotFoundError struct {
	ArticleID int64
}

func (e *ArticleNotFoundError) Error() string {
	return fmt.Sprintf("Article with ID %d not found", e.ArticleID)
}
