package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	articledomain "github.com/openfaktura/backend/internal/article/domain"
	"github.com/openfaktura/backend/internal/clock"
	companydomain "github.com/openfaktura/backend/internal/company/domain"
	"github.com/openfaktura/backend/internal/config"
	"github.com/openfaktura/backend/internal/invoice/domain"
	"github.com/openfaktura/backend/internal/invoice/repository"
	"github.com/openfaktura/backend/internal/providers/pdf"
	"github.com/openfaktura/backend/pkg/db/pagination"
)

type stubRenderer struct {
	delay time.Duration
	out   []byte
	err   error
}

func (r *stubRenderer) RenderInvoice(ctx context.Context, data pdf.InvoiceData) ([]byte, error) {
	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return r.out, r.err
}

func openTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&companydomain.Company{},
		&articledomain.Article{},
		&domain.Invoice{},
		&domain.InvoiceItem{},
	))
	return db
}

func newTestService(t *testing.T, db *gorm.DB, renderer pdf.Provider, now time.Time) domain.Service {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	if renderer == nil {
		renderer = &stubRenderer{out: []byte("%PDF-stub")}
	}

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		Cfg:   config.Config{PDFRenderTimeout: 2 * time.Second},
		Repo:  repository.Provide(),
		GenID: node,
		Clock: clock.NewFakeClock(now),
		PDF:   renderer,
	})
}

func seedCompany(t *testing.T, db *gorm.DB, name, uin string) *companydomain.Company {
	t.Helper()
	company := &companydomain.Company{
		ID:                         uuid.New(),
		BusinessName:               name,
		BusinessType:               companydomain.BusinessTypeLLC,
		UniqueIdentificationNumber: uin,
		RegistrationDate:           time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC),
		Municipality:               "Pristina",
		Address:                    "Main Street 1",
	}
	require.NoError(t, db.Create(company).Error)
	return company
}

func seedArticle(t *testing.T, db *gorm.DB, name string, basePrice string, vatCode int) *articledomain.Article {
	t.Helper()
	article := &articledomain.Article{
		Name:      name,
		Unit:      "pcs",
		Code:      "A-" + name,
		VatCode:   vatCode,
		BasePrice: decimal.RequireFromString(basePrice),
	}
	require.NoError(t, db.Create(article).Error)
	return article
}

func TestCreateInvoice_TotalsFromArticleVatCode(t *testing.T) {
	db := openTestDB(t, "invoice_totals")
	issuer := seedCompany(t, db, "Acme", "1000001")
	recipient := seedCompany(t, db, "Globex", "1000002")
	article := seedArticle(t, db, "Consulting", "100.00", 18)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, db, nil, now)

	invoice, err := svc.Create(context.Background(), domain.CreateRequest{
		IssuerID:    issuer.ID.String(),
		RecipientID: recipient.ID.String(),
		Items: []domain.LineRequest{
			{ArticleID: article.ID, Quantity: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "200.00", invoice.TotalAmount.StringFixed(2))
	assert.Equal(t, "36.00", invoice.TotalVat.StringFixed(2))
	require.Len(t, invoice.Items, 1)
	assert.Equal(t, "200.00", invoice.Items[0].TotalPrice.StringFixed(2))
	assert.Equal(t, "36.00", invoice.Items[0].VatAmount.StringFixed(2))
	assert.Equal(t, "100.00", invoice.Items[0].UnitPrice.StringFixed(2))

	// Aggregates must match the item sums exactly.
	sumPrice := decimal.Zero
	sumVat := decimal.Zero
	for _, item := range invoice.Items {
		sumPrice = sumPrice.Add(item.TotalPrice)
		sumVat = sumVat.Add(item.VatAmount)
	}
	assert.True(t, invoice.TotalAmount.Equal(sumPrice))
	assert.True(t, invoice.TotalVat.Equal(sumVat))

	assert.Contains(t, invoice.InvoiceNumber, "INV-")
	require.NotNil(t, invoice.Issuer)
	require.NotNil(t, invoice.Recipient)
	require.NotNil(t, invoice.Items[0].Article)
	assert.Equal(t, article.ID, invoice.Items[0].Article.ID)
}

func TestCreateInvoice_UnitPriceOverride(t *testing.T) {
	db := openTestDB(t, "invoice_override")
	issuer := seedCompany(t, db, "Acme", "2000001")
	recipient := seedCompany(t, db, "Globex", "2000002")
	article := seedArticle(t, db, "Support", "100.00", 8)

	svc := newTestService(t, db, nil, time.Now())

	override := decimal.RequireFromString("75.50")
	invoice, err := svc.Create(context.Background(), domain.CreateRequest{
		IssuerID:    issuer.ID.String(),
		RecipientID: recipient.ID.String(),
		Items: []domain.LineRequest{
			{ArticleID: article.ID, Quantity: decimal.NewFromInt(1), UnitPrice: &override},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "75.50", invoice.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "75.50", invoice.TotalAmount.StringFixed(2))
	assert.Equal(t, "6.04", invoice.TotalVat.StringFixed(2))
}

func TestCreateInvoice_DueDateIs30DaysAfterIssueDate(t *testing.T) {
	db := openTestDB(t, "invoice_duedate")
	issuer := seedCompany(t, db, "Acme", "3000001")
	recipient := seedCompany(t, db, "Globex", "3000002")
	article := seedArticle(t, db, "Goods", "10.00", 0)

	svc := newTestService(t, db, nil, time.Now())

	issueDate := "2025-01-15"
	invoice, err := svc.Create(context.Background(), domain.CreateRequest{
		IssuerID:    issuer.ID.String(),
		RecipientID: recipient.ID.String(),
		IssueDate:   &issueDate,
		Items: []domain.LineRequest{
			{ArticleID: article.ID, Quantity: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-01-15", invoice.IssueDate.Format("2006-01-02"))
	assert.Equal(t, "2025-02-14", invoice.DueDate.Format("2006-01-02"))
}

func TestCreateInvoice_MissingArticleRollsBackEverything(t *testing.T) {
	db := openTestDB(t, "invoice_rollback")
	issuer := seedCompany(t, db, "Acme", "4000001")
	recipient := seedCompany(t, db, "Globex", "4000002")
	article := seedArticle(t, db, "Goods", "10.00", 18)

	svc := newTestService(t, db, nil, time.Now())

	_, err := svc.Create(context.Background(), domain.CreateRequest{
		IssuerID:    issuer.ID.String(),
		RecipientID: recipient.ID.String(),
		Items: []domain.LineRequest{
			{ArticleID: article.ID, Quantity: decimal.NewFromInt(1)},
			{ArticleID: 99999, Quantity: decimal.NewFromInt(3)},
		},
	})

	var missing *domain.ArticleNotFoundError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, int64(99999), missing.ArticleID)

	var invoices, items int64
	require.NoError(t, db.Model(&domain.Invoice{}).Count(&invoices).Error)
	require.NoError(t, db.Model(&domain.InvoiceItem{}).Count(&items).Error)
	assert.Zero(t, invoices)
	assert.Zero(t, items)
}

func TestCreateInvoice_MissingIssuerFailsBeforeItems(t *testing.T) {
	db := openTestDB(t, "invoice_noissuer")
	recipient := seedCompany(t, db, "Globex", "5000001")
	article := seedArticle(t, db, "Goods", "10.00", 18)

	svc := newTestService(t, db, nil, time.Now())

	_, err := svc.Create(context.Background(), domain.CreateRequest{
		IssuerID:    uuid.NewString(),
		RecipientID: recipient.ID.String(),
		Items: []domain.LineRequest{
			{ArticleID: article.ID, Quantity: decimal.NewFromInt(1)},
		},
	})
	require.ErrorIs(t, err, domain.ErrCompanyNotFound)

	var items int64
	require.NoError(t, db.Model(&domain.InvoiceItem{}).Count(&items).Error)
	assert.Zero(t, items)
}

func TestListByCompany_MatchesIssuerOrRecipient(t *testing.T) {
	db := openTestDB(t, "invoice_listbycompany")
	a := seedCompany(t, db, "Acme", "6000001")
	b := seedCompany(t, db, "Globex", "6000002")
	c := seedCompany(t, db, "Initech", "6000003")
	article := seedArticle(t, db, "Goods", "10.00", 0)

	svc := newTestService(t, db, nil, time.Now())

	create := func(issuer, recipient uuid.UUID, issueDate string) {
		t.Helper()
		_, err := svc.Create(context.Background(), domain.CreateRequest{
			IssuerID:    issuer.String(),
			RecipientID: recipient.String(),
			IssueDate:   &issueDate,
			Items: []domain.LineRequest{
				{ArticleID: article.ID, Quantity: decimal.NewFromInt(1)},
			},
		})
		require.NoError(t, err)
	}

	create(a.ID, b.ID, "2025-01-10")
	create(b.ID, a.ID, "2025-02-10")
	create(b.ID, c.ID, "2025-03-10")

	page, err := svc.ListByCompany(context.Background(), a.ID.String(), pagination.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(2), page.Meta.Total)

	// Ordered by issue date, newest first.
	assert.True(t, page.Items[0].IssueDate.After(page.Items[1].IssueDate))
}

func TestGeneratePDF(t *testing.T) {
	db := openTestDB(t, "invoice_pdf")
	issuer := seedCompany(t, db, "Acme", "7000001")
	recipient := seedCompany(t, db, "Globex", "7000002")
	article := seedArticle(t, db, "Goods", "10.00", 18)

	svc := newTestService(t, db, nil, time.Now())

	invoice, err := svc.Create(context.Background(), domain.CreateRequest{
		IssuerID:    issuer.ID.String(),
		RecipientID: recipient.ID.String(),
		Items: []domain.LineRequest{
			{ArticleID: article.ID, Quantity: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)

	doc, err := svc.GeneratePDF(context.Background(), fmt.Sprintf("%d", invoice.ID))
	require.NoError(t, err)
	assert.NotEmpty(t, doc)

	_, err = svc.GeneratePDF(context.Background(), "99999")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGeneratePDF_Timeout(t *testing.T) {
	db := openTestDB(t, "invoice_pdf_timeout")
	issuer := seedCompany(t, db, "Acme", "8000001")
	recipient := seedCompany(t, db, "Globex", "8000002")
	article := seedArticle(t, db, "Goods", "10.00", 0)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		Cfg:   config.Config{PDFRenderTimeout: 20 * time.Millisecond},
		Repo:  repository.Provide(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Now()),
		PDF:   &stubRenderer{delay: time.Second, out: []byte("late")},
	})

	invoice, err := svc.Create(context.Background(), domain.CreateRequest{
		IssuerID:    issuer.ID.String(),
		RecipientID: recipient.ID.String(),
		Items: []domain.LineRequest{
			{ArticleID: article.ID, Quantity: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)

	_, err = svc.GeneratePDF(context.Background(), fmt.Sprintf("%d", invoice.ID))
	require.ErrorIs(t, err, domain.ErrRenderTimeout)
}
