package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VatCodes are the VAT percentages an article may carry.
var VatCodes = []int{0, 8, 18}

// ValidVatCode reports whether the given percentage is an allowed VAT code.
func ValidVatCode(code int) bool {
	for _, v := range VatCodes {
		if v == code {
			return true
		}
	}
	return false
}

type Article struct {
	ID        int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string          `json:"name" gorm:"type:text;not null"`
	Unit      string          `json:"unit" gorm:"type:text;not null"`
	Code      string          `json:"code" gorm:"type:text;not null"`
	VatCode   int             `json:"vatCode" gorm:"type:smallint;not null;default:0"`
	BasePrice decimal.Decimal `json:"basePrice" gorm:"type:numeric(10,2);not null;default:0"`
	TenantID  *uuid.UUID      `json:"tenantId,omitempty" gorm:"type:uuid;index"`
	CreatedAt time.Time       `json:"createdAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time       `json:"updatedAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Article) TableName() string { return "articles" }
