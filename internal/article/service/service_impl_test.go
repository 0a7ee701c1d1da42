package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/openfaktura/backend/internal/article/domain"
	"github.com/openfaktura/backend/pkg/db/pagination"
	"github.com/openfaktura/backend/pkg/repository"
)

func newTestService(t *testing.T, name string) domain.Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Article{}))

	return New(Params{
		Log:   zap.NewNop(),
		Store: repository.ProvideStore[domain.Article](db),
	})
}

func TestCreateArticle_DefaultsAndRounding(t *testing.T) {
	svc := newTestService(t, "article_create")

	article, err := svc.Create(context.Background(), domain.CreateRequest{
		Name:      "Consulting hour",
		Unit:      "h",
		Code:      "CONS-1",
		BasePrice: decimal.RequireFromString("99.999"),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, article.VatCode)
	assert.Equal(t, "100.00", article.BasePrice.StringFixed(2))
	assert.NotZero(t, article.ID)
}

func TestCreateArticle_RejectsUnknownVatCode(t *testing.T) {
	svc := newTestService(t, "article_vatcode")

	vat := 12
	_, err := svc.Create(context.Background(), domain.CreateRequest{
		Name:      "Goods",
		Unit:      "pcs",
		Code:      "G-1",
		VatCode:   &vat,
		BasePrice: decimal.NewFromInt(10),
	})
	require.ErrorIs(t, err, domain.ErrInvalidVatCode)

	for _, valid := range []int{0, 8, 18} {
		code := valid
		_, err := svc.Create(context.Background(), domain.CreateRequest{
			Name:      fmt.Sprintf("Goods %d", valid),
			Unit:      "pcs",
			Code:      fmt.Sprintf("G-%d", valid),
			VatCode:   &code,
			BasePrice: decimal.NewFromInt(10),
		})
		require.NoError(t, err)
	}
}

func TestDeleteArticle_NonexistentFails(t *testing.T) {
	svc := newTestService(t, "article_delete")

	article, err := svc.Create(context.Background(), domain.CreateRequest{
		Name:      "Goods",
		Unit:      "pcs",
		Code:      "G-1",
		BasePrice: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	id := fmt.Sprintf("%d", article.ID)
	require.NoError(t, svc.Delete(context.Background(), id))
	require.ErrorIs(t, svc.Delete(context.Background(), id), domain.ErrNotFound)
}

func TestListArticles_OrderedByName(t *testing.T) {
	svc := newTestService(t, "article_list")

	for _, name := range []string{"Zinc", "Apples", "Milk"} {
		_, err := svc.Create(context.Background(), domain.CreateRequest{
			Name:      name,
			Unit:      "pcs",
			Code:      "C-" + name,
			BasePrice: decimal.NewFromInt(5),
		})
		require.NoError(t, err)
	}

	page, err := svc.List(context.Background(), pagination.Pagination{})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "Apples", page.Items[0].Name)
	assert.Equal(t, "Zinc", page.Items[2].Name)
	assert.Equal(t, pagination.DefaultLimit, page.Meta.Limit)
}
