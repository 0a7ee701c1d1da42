package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	BusinessTypeSoleProprietorship = "Sole Proprietorship"
	BusinessTypePartnership        = "Partnership"
	BusinessTypeLLC                = "Limited Liability Company"
	BusinessTypeCorporation        = "Corporation"
)

// ValidBusinessType reports whether the value is a known legal form.
func ValidBusinessType(value string) bool {
	switch value {
	case BusinessTypeSoleProprietorship, BusinessTypePartnership,
		BusinessTypeLLC, BusinessTypeCorporation:
		return true
	default:
		return false
	}
}

type Company struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	BusinessName string    `json:"businessName" gorm:"type:text;not null"`
	TradeName    *string   `json:"tradeName,omitempty" gorm:"type:text"`
	BusinessType string    `json:"businessType" gorm:"type:text;not null"`

	UniqueIdentificationNumber string  `json:"uniqueIdentificationNumber" gorm:"type:text;not null;uniqueIndex:ux_companies_unique_identification_number"`
	BusinessNumber             *string `json:"businessNumber,omitempty" gorm:"type:text;uniqueIndex:ux_companies_business_number"`
	FiscalNumber               *string `json:"fiscalNumber,omitempty" gorm:"type:text;uniqueIndex:ux_companies_fiscal_number"`
	VatNumber                  *string `json:"vatNumber,omitempty" gorm:"type:text;uniqueIndex:ux_companies_vat_number"`

	RegistrationDate time.Time `json:"registrationDate" gorm:"type:date;not null"`
	Municipality     string    `json:"municipality" gorm:"type:text"`
	Address          string    `json:"address" gorm:"type:text"`
	PhoneNumber      string    `json:"phoneNumber" gorm:"type:text"`
	Email            string    `json:"email" gorm:"type:text"`
	BankAccount      *string   `json:"bankAccount,omitempty" gorm:"type:text"`
	Logo             *string   `json:"logo,omitempty" gorm:"type:text"`

	TenantID  *uuid.UUID `json:"tenantId,omitempty" gorm:"type:uuid;index"`
	CreatedAt time.Time  `json:"createdAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time  `json:"updatedAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Company) TableName() string { return "companies" }
