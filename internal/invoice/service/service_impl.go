package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	articledomain "github.com/openfaktura/backend/internal/article/domain"
	"github.com/openfaktura/backend/internal/clock"
	companydomain "github.com/openfaktura/backend/internal/company/domain"
	"github.com/openfaktura/backend/internal/config"
	"github.com/openfaktura/backend/internal/invoice/domain"
	"github.com/openfaktura/backend/internal/observability/metrics"
	"github.com/openfaktura/backend/internal/providers/pdf"
	"github.com/openfaktura/backend/pkg/db/pagination"
)

const dateOnlyLayout = "2006-01-02"

var oneHundred = decimal.NewFromInt(100)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Cfg     config.Config
	Repo    domain.Repository
	GenID   *snowflake.Node
	Clock   clock.Clock
	PDF     pdf.Provider
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	cfg     config.Config
	repo    domain.Repository
	genID   *snowflake.Node
	clock   clock.Clock
	pdf     pdf.Provider
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("invoice.service"),
		cfg:     p.Cfg,
		repo:    p.Repo,
		genID:   p.GenID,
		clock:   p.Clock,
		pdf:     p.PDF,
		metrics: p.Metrics,
	}
}

// Create materializes a fully computed invoice. All reads and writes run in
// one transaction: a missing article on any line rolls back everything, so
// no partial invoice or orphaned item is ever persisted.
func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Invoice, error) {
	issuerID, err := uuid.Parse(strings.TrimSpace(req.IssuerID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	recipientID, err := uuid.Parse(strings.TrimSpace(req.RecipientID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	if len(req.Items) == 0 {
		return nil, domain.ErrNoItems
	}

	issueDate, err := s.resolveIssueDate(req.IssueDate)
	if err != nil {
		return nil, domain.ErrInvalidIssueDate
	}
	dueDate := issueDate.AddDate(0, 0, 30)

	var (
		invoice  *domain.Invoice
		issuer   companydomain.Company
		receiver companydomain.Company
		articles []*articledomain.Article
	)

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findCompany(tx, issuerID, &issuer); err != nil {
			return err
		}
		if err := findCompany(tx, recipientID, &receiver); err != nil {
			return err
		}

		items := make([]domain.InvoiceItem, 0, len(req.Items))
		totalAmount := decimal.Zero
		totalVat := decimal.Zero

		for _, line := range req.Items {
			if line.Quantity.IsNegative() {
				return domain.ErrInvalidQuantity
			}

			article := &articledomain.Article{}
			err := tx.First(article, "id = ?", line.ArticleID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &domain.ArticleNotFoundError{ArticleID: line.ArticleID}
			}
			if err != nil {
				return err
			}

			unitPrice := article.BasePrice
			if line.UnitPrice != nil && line.UnitPrice.IsPositive() {
				unitPrice = *line.UnitPrice
			}

			totalPrice := line.Quantity.Mul(unitPrice).Round(2)
			vatAmount := totalPrice.
				Mul(decimal.NewFromInt(int64(article.VatCode))).
				Div(oneHundred).
				Round(2)

			articleID := article.ID
			items = append(items, domain.InvoiceItem{
				ArticleID:  &articleID,
				Quantity:   line.Quantity,
				UnitPrice:  unitPrice.Round(2),
				TotalPrice: totalPrice,
				VatAmount:  vatAmount,
			})
			articles = append(articles, article)

			totalAmount = totalAmount.Add(totalPrice)
			totalVat = totalVat.Add(vatAmount)
		}

		invoice = &domain.Invoice{
			InvoiceNumber: "INV-" + s.genID.Generate().String(),
			IssueDate:     issueDate,
			DueDate:       dueDate,
			IssuerID:      issuerID,
			RecipientID:   recipientID,
			Items:         items,
			TotalAmount:   totalAmount,
			TotalVat:      totalVat,
		}
		return s.repo.Create(ctx, tx, invoice)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Hydrate the response from rows already read inside the transaction.
	invoice.Issuer = &issuer
	invoice.Recipient = &receiver
	for i := range invoice.Items {
		invoice.Items[i].Article = articles[i]
	}

	if s.metrics != nil {
		s.metrics.RecordInvoiceCreated(ctx, len(invoice.Items))
	}
	s.log.Info("invoice created",
		zap.Int64("invoice_id", invoice.ID),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.Int("lines", len(invoice.Items)),
		zap.String("total_amount", invoice.TotalAmount.StringFixed(2)),
	)
	return invoice, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	invoiceID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	invoice, err := s.repo.FindByID(ctx, s.db, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	return invoice, nil
}

func (s *Service) List(ctx context.Context, page pagination.Pagination) (*pagination.Page[*domain.Invoice], error) {
	page = page.Normalize()

	items, total, err := s.repo.List(ctx, s.db, nil, page)
	if err != nil {
		return nil, err
	}

	result := pagination.NewPage(items, total, page)
	return &result, nil
}

func (s *Service) ListByCompany(ctx context.Context, companyID string, page pagination.Pagination) (*pagination.Page[*domain.Invoice], error) {
	parsed, err := uuid.Parse(strings.TrimSpace(companyID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	page = page.Normalize()

	items, total, err := s.repo.List(ctx, s.db, &parsed, page)
	if err != nil {
		return nil, err
	}

	result := pagination.NewPage(items, total, page)
	return &result, nil
}

// GeneratePDF loads the invoice and renders it under the configured render
// timeout. The invoice lookup happens first so a missing id fails with
// not-found before any rendering work starts.
func (s *Service) GeneratePDF(ctx context.Context, id string) ([]byte, error) {
	invoice, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	renderCtx, cancel := context.WithTimeout(ctx, s.cfg.PDFRenderTimeout)
	defer cancel()

	type renderResult struct {
		doc []byte
		err error
	}
	results := make(chan renderResult, 1)
	go func() {
		doc, err := s.pdf.RenderInvoice(renderCtx, assembleInvoiceData(invoice))
		results <- renderResult{doc: doc, err: err}
	}()

	select {
	case <-renderCtx.Done():
		s.log.Warn("invoice rendering cut off",
			zap.Int64("invoice_id", invoice.ID),
			zap.Duration("timeout", s.cfg.PDFRenderTimeout),
		)
		return nil, domain.ErrRenderTimeout
	case res := <-results:
		if res.err != nil {
			return nil, res.err
		}
		if s.metrics != nil {
			s.metrics.RecordInvoiceRendered(ctx)
		}
		return res.doc, nil
	}
}

func (s *Service) resolveIssueDate(value *string) (time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return s.clock.Now().Truncate(24 * time.Hour), nil
	}
	trimmed := strings.TrimSpace(*value)
	if parsed, err := time.Parse(dateOnlyLayout, trimmed); err == nil {
		return parsed, nil
	}
	return time.Parse(time.RFC3339, trimmed)
}

func findCompany(tx *gorm.DB, id uuid.UUID, dst *companydomain.Company) error {
	err := tx.First(dst, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrCompanyNotFound
	}
	return err
}

func assembleInvoiceData(invoice *domain.Invoice) pdf.InvoiceData {
	data := pdf.InvoiceData{
		InvoiceNumber: invoice.InvoiceNumber,
		IssueDate:     invoice.IssueDate.Format(dateOnlyLayout),
		DueDate:       invoice.DueDate.Format(dateOnlyLayout),
		Issuer:        partyFromCompany(invoice.Issuer),
		Recipient:     partyFromCompany(invoice.Recipient),
		Subtotal:      invoice.TotalAmount.Sub(invoice.TotalVat).StringFixed(2),
		Vat:           invoice.TotalVat.StringFixed(2),
		Total:         invoice.TotalAmount.StringFixed(2),
	}

	for _, item := range invoice.Items {
		description := "(article removed)"
		if item.Article != nil {
			description = item.Article.Name
		}
		data.Lines = append(data.Lines, pdf.Line{
			Description: description,
			Quantity:    item.Quantity.StringFixed(2),
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Total:       item.TotalPrice.StringFixed(2),
		})
	}
	return data
}

func partyFromCompany(company *companydomain.Company) pdf.Party {
	if company == nil {
		return pdf.Party{}
	}
	return pdf.Party{
		BusinessName:               company.BusinessName,
		TradeName:                  deref(company.TradeName),
		BusinessType:               company.BusinessType,
		UniqueIdentificationNumber: company.UniqueIdentificationNumber,
		BusinessNumber:             deref(company.BusinessNumber),
		FiscalNumber:               deref(company.FiscalNumber),
		VatNumber:                  deref(company.VatNumber),
		RegistrationDate:           company.RegistrationDate.Format(dateOnlyLayout),
		Address:                    company.Address,
		Municipality:               company.Municipality,
		PhoneNumber:                company.PhoneNumber,
		Email:                      company.Email,
		BankAccount:                deref(company.BankAccount),
	}
}

func parseID(id string) (int64, error) {
	parsed, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil || parsed <= 0 {
		return 0, domain.ErrInvalidID
	}
	return parsed, nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
