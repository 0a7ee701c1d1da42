package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	articledomain "github.com/openfaktura/backend/internal/article/domain"
	companydomain "github.com/openfaktura/backend/internal/company/domain"
)

// Invoice is a fully computed bill issued by one company to another.
// TotalAmount and TotalVat always equal the sums over Items; they are
// recomputed whenever items change and never stored out of sync.
type Invoice struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	InvoiceNumber string    `json:"invoiceNumber" gorm:"type:text;not null;uniqueIndex:ux_invoices_invoice_number"`
	IssueDate     time.Time `json:"issueDate" gorm:"type:date;not null;index"`
	DueDate       time.Time `json:"dueDate" gorm:"type:date;not null"`

	IssuerID    uuid.UUID              `json:"issuerId" gorm:"type:uuid;not null;index"`
	Issuer      *companydomain.Company `json:"issuer,omitempty" gorm:"foreignKey:IssuerID"`
	RecipientID uuid.UUID              `json:"recipientId" gorm:"type:uuid;not null;index"`
	Recipient   *companydomain.Company `json:"recipient,omitempty" gorm:"foreignKey:RecipientID"`

	Items []InvoiceItem `json:"items" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`

	TotalAmount decimal.Decimal `json:"totalAmount" gorm:"type:numeric(10,2);not null;default:0"`
	TotalVat    decimal.Decimal `json:"totalVat" gorm:"type:numeric(10,2);not null;default:0"`

	CreatedAt time.Time `json:"createdAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Invoice) TableName() string { return "invoices" }

// InvoiceItem is one line of an invoice. ArticleID is nulled when the
// referenced article is deleted; the stored prices keep the line intact.
type InvoiceItem struct {
	ID        int64                  `json:"id" gorm:"primaryKey;autoIncrement"`
	InvoiceID int64                  `json:"invoiceId" gorm:"not null;index"`
	ArticleID *int64                 `json:"articleId,omitempty" gorm:"index"`
	Article   *articledomain.Article `json:"article,omitempty" gorm:"foreignKey:ArticleID;constraint:OnDelete:SET NULL"`

	Quantity   decimal.Decimal `json:"quantity" gorm:"type:numeric(10,2);not null"`
	UnitPrice  decimal.Decimal `json:"unitPrice" gorm:"type:numeric(10,2);not null"`
	TotalPrice decimal.Decimal `json:"totalPrice" gorm:"type:numeric(10,2);not null"`
	VatAmount  decimal.Decimal `json:"vatAmount" gorm:"type:numeric(10,2);not null;default:0"`

	CreatedAt time.Time `json:"createdAt" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (InvoiceItem) TableName() string { return "invoice_items" }
