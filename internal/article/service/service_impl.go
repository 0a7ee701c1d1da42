package service

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/openfaktura/backend/internal/article/domain"
	"github.com/openfaktura/backend/pkg/db/option"
	"github.com/openfaktura/backend/pkg/db/pagination"
	"github.com/openfaktura/backend/pkg/repository"
	"github.com/openfaktura/backend/pkg/tenantctx"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	Store repository.Repository[domain.Article]
}

type Service struct {
	log   *zap.Logger
	store repository.Repository[domain.Article]
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("article.service"),
		store: p.Store,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Article, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	vatCode := 0
	if req.VatCode != nil {
		vatCode = *req.VatCode
	}
	if !domain.ValidVatCode(vatCode) {
		return nil, domain.ErrInvalidVatCode
	}

	if req.BasePrice.IsNegative() {
		return nil, domain.ErrInvalidPrice
	}

	article := &domain.Article{
		Name:      name,
		Unit:      strings.TrimSpace(req.Unit),
		Code:      strings.TrimSpace(req.Code),
		VatCode:   vatCode,
		BasePrice: req.BasePrice.Round(2),
	}
	if tenantID, ok := tenantctx.TenantID(ctx); ok {
		article.TenantID = &tenantID
	}

	if err := s.store.Create(ctx, article); err != nil {
		return nil, err
	}

	s.log.Info("article created",
		zap.Int64("article_id", article.ID),
		zap.String("name", article.Name),
	)
	return article, nil
}

func (s *Service) List(ctx context.Context, page pagination.Pagination) (*pagination.Page[*domain.Article], error) {
	page = page.Normalize()

	total, err := s.store.Count(ctx, &domain.Article{})
	if err != nil {
		return nil, err
	}

	items, err := s.store.Find(ctx, &domain.Article{},
		option.WithOrder("name asc"),
		option.ApplyPagination(page),
	)
	if err != nil {
		return nil, err
	}

	result := pagination.NewPage(items, total, page)
	return &result, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	articleID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	article, err := s.store.FindByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, domain.ErrNotFound
	}
	return article, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (*domain.Article, error) {
	article, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		article.Name = name
	}
	if req.Unit != nil {
		article.Unit = strings.TrimSpace(*req.Unit)
	}
	if req.Code != nil {
		article.Code = strings.TrimSpace(*req.Code)
	}
	if req.VatCode != nil {
		if !domain.ValidVatCode(*req.VatCode) {
			return nil, domain.ErrInvalidVatCode
		}
		article.VatCode = *req.VatCode
	}
	if req.BasePrice != nil {
		if req.BasePrice.IsNegative() {
			return nil, domain.ErrInvalidPrice
		}
		article.BasePrice = req.BasePrice.Round(2)
	}

	if err := s.store.Save(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	articleID, err := parseID(id)
	if err != nil {
		return err
	}

	affected, err := s.store.Delete(ctx, articleID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	s.log.Info("article deleted", zap.Int64("article_id", articleID))
	return nil
}

func parseID(id string) (int64, error) {
	parsed, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil || parsed <= 0 {
		return 0, domain.ErrInvalidID
	}
	return parsed, nil
}
