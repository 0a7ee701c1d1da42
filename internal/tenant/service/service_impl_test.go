package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	companydomain "github.com/openfaktura/backend/internal/company/domain"
	"github.com/openfaktura/backend/internal/tenant/domain"
	pkgdb "github.com/openfaktura/backend/pkg/db"
	"github.com/openfaktura/backend/pkg/repository"
)

func newTestService(t *testing.T, name string) (domain.Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Tenant{}, &companydomain.Company{}))

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		Store: repository.ProvideStore[domain.Tenant](db),
	})
	return svc, db
}

func TestCreateTenant_SlugFromName(t *testing.T) {
	svc, _ := newTestService(t, "tenant_slug")

	tenant, err := svc.Create(context.Background(), domain.CreateRequest{
		Name: "ACME West Balkans",
	})
	require.NoError(t, err)
	assert.Equal(t, "acme-west-balkans", tenant.Slug)
	assert.True(t, tenant.IsActive)
}

func TestCreateTenant_DuplicateSlugConflicts(t *testing.T) {
	svc, _ := newTestService(t, "tenant_dup_slug")

	_, err := svc.Create(context.Background(), domain.CreateRequest{Name: "Acme"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), domain.CreateRequest{Name: "Other", Slug: "Acme"})

	var conflict *pkgdb.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "slug", conflict.Field)
}

func TestDeleteTenant_BlockedWhileCompaniesReferenceIt(t *testing.T) {
	svc, db := newTestService(t, "tenant_inuse")

	tenant, err := svc.Create(context.Background(), domain.CreateRequest{Name: "Acme"})
	require.NoError(t, err)

	company := &companydomain.Company{
		ID:                         uuid.New(),
		BusinessName:               "Acme doo",
		BusinessType:               companydomain.BusinessTypeLLC,
		UniqueIdentificationNumber: "900001",
		RegistrationDate:           time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		TenantID:                   &tenant.ID,
	}
	require.NoError(t, db.Create(company).Error)

	err = svc.Delete(context.Background(), tenant.ID.String())
	require.ErrorIs(t, err, domain.ErrInUse)

	// Once the company is gone the tenant can be removed.
	require.NoError(t, db.Delete(company).Error)
	require.NoError(t, svc.Delete(context.Background(), tenant.ID.String()))

	err = svc.Delete(context.Background(), tenant.ID.String())
	require.ErrorIs(t, err, domain.ErrNotFound)
}
