package domain

import (
	"context"
	"errors"

	"github.com/openfaktura/backend/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Company, error)
	List(ctx context.Context, page pagination.Pagination) (*pagination.Page[*Company], error)
	GetByID(ctx context.Context, id string) (*Company, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Company, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	BusinessName               string  `json:"businessName"`
	TradeName                  *string `json:"tradeName"`
	BusinessType               string  `json:"businessType"`
	UniqueIdentificationNumber string  `json:"uniqueIdentificationNumber"`
	BusinessNumber             *string `json:"businessNumber"`
	FiscalNumber               *string `json:"fiscalNumber"`
	VatNumber                  *string `json:"vatNumber"`
	RegistrationDate           string  `json:"registrationDate"`
	Municipality               string  `json:"municipality"`
	Address                    string  `json:"address"`
	PhoneNumber                string  `json:"phoneNumber"`
	Email                      string  `json:"email"`
	BankAccount                *string `json:"bankAccount"`
	Logo                       *string `json:"logo"`
}

type UpdateRequest struct {
	BusinessName               *string `json:"businessName"`
	TradeName                  *string `json:"tradeName"`
	BusinessType               *string `json:"businessType"`
	UniqueIdentificationNumber *string `json:"uniqueIdentificationNumber"`
	BusinessNumber             *string `json:"businessNumber"`
	FiscalNumber               *string `json:"fiscalNumber"`
	VatNumber                  *string `json:"vatNumber"`
	RegistrationDate           *string `json:"registrationDate"`
	Municipality               *string `json:"municipality"`
	Address                    *string `json:"address"`
	PhoneNumber                *string `json:"phoneNumber"`
	Email                      *string `json:"email"`
	BankAccount                *string `json:"bankAccount"`
	Logo                       *string `json:"logo"`
}

var (
	ErrInvalidBusinessName     = errors.New("invalid_business_name")
	ErrInvalidBusinessType     = errors.New("invalid_business_type")
	ErrInvalidIdentification   = errors.New("invalid_unique_identification_number")
	ErrInvalidRegistrationDate = errors.New("invalid_registration_date")
	ErrInvalidID               = errors.New("invalid_id")
	ErrNotFound                = errors.New("company_not_found")
)
