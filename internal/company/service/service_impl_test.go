package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/openfaktura/backend/internal/company/domain"
	pkgdb "github.com/openfaktura/backend/pkg/db"
	"github.com/openfaktura/backend/pkg/db/pagination"
	"github.com/openfaktura/backend/pkg/repository"
	"github.com/openfaktura/backend/pkg/tenantctx"
)

func newTestService(t *testing.T, name string) (domain.Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Company{}))

	svc := New(Params{
		Log:   zap.NewNop(),
		Store: repository.ProvideStore[domain.Company](db),
	})
	return svc, db
}

func createRequest(name, uin string) domain.CreateRequest {
	return domain.CreateRequest{
		BusinessName:               name,
		BusinessType:               domain.BusinessTypeLLC,
		UniqueIdentificationNumber: uin,
		RegistrationDate:           "2020-03-01",
		Municipality:               "Pristina",
		Address:                    "Main Street 1",
	}
}

func TestCreateCompany_DuplicateIdentificationNumber(t *testing.T) {
	svc, _ := newTestService(t, "company_dup_uin")

	_, err := svc.Create(context.Background(), createRequest("Acme", "810001"))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), createRequest("Globex", "810001"))

	var conflict *pkgdb.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "uniqueIdentificationNumber", conflict.Field)
	assert.Equal(t, "A company with this Unique Identification Number already exists", conflict.Message)
}

func TestCreateCompany_DuplicateVatNumber(t *testing.T) {
	svc, _ := newTestService(t, "company_dup_vat")

	vat := "VAT-1"
	first := createRequest("Acme", "820001")
	first.VatNumber = &vat
	_, err := svc.Create(context.Background(), first)
	require.NoError(t, err)

	second := createRequest("Globex", "820002")
	second.VatNumber = &vat
	_, err = svc.Create(context.Background(), second)

	var conflict *pkgdb.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "vatNumber", conflict.Field)
	assert.Equal(t, "A company with this VAT Number already exists", conflict.Message)
}

func TestCreateCompany_InvalidBusinessType(t *testing.T) {
	svc, _ := newTestService(t, "company_badtype")

	req := createRequest("Acme", "830001")
	req.BusinessType = "Kiosk"
	_, err := svc.Create(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrInvalidBusinessType)
}

func TestCreateCompany_StampsTenantFromContext(t *testing.T) {
	svc, _ := newTestService(t, "company_tenant")

	tenantID := uuid.New()
	ctx := tenantctx.WithTenantID(context.Background(), tenantID)

	company, err := svc.Create(ctx, createRequest("Acme", "840001"))
	require.NoError(t, err)
	require.NotNil(t, company.TenantID)
	assert.Equal(t, tenantID, *company.TenantID)
}

func TestUpdateCompany_NotFound(t *testing.T) {
	svc, _ := newTestService(t, "company_update_missing")

	name := "Renamed"
	_, err := svc.Update(context.Background(), uuid.NewString(), domain.UpdateRequest{BusinessName: &name})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteCompany_NonexistentFails(t *testing.T) {
	svc, _ := newTestService(t, "company_delete_missing")

	company, err := svc.Create(context.Background(), createRequest("Acme", "850001"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), company.ID.String()))

	// Double delete must error the second time.
	err = svc.Delete(context.Background(), company.ID.String())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListCompanies_Pagination(t *testing.T) {
	svc, _ := newTestService(t, "company_pagination")

	for i := 0; i < 25; i++ {
		_, err := svc.Create(context.Background(),
			createRequest(fmt.Sprintf("Company %02d", i), fmt.Sprintf("86%04d", i)))
		require.NoError(t, err)
	}

	page, err := svc.List(context.Background(), pagination.Pagination{Page: 2, Limit: 10})
	require.NoError(t, err)

	assert.Len(t, page.Items, 10)
	assert.Equal(t, int64(25), page.Meta.Total)
	assert.Equal(t, int64(3), page.Meta.LastPage)
	assert.Equal(t, 2, page.Meta.Page)

	// Ordered by business name ascending.
	assert.Equal(t, "Company 10", page.Items[0].BusinessName)
}
