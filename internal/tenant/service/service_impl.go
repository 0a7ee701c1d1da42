package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	companydomain "github.com/openfaktura/backend/internal/company/domain"
	"github.com/openfaktura/backend/internal/tenant/domain"
	"github.com/openfaktura/backend/pkg/db"
	"github.com/openfaktura/backend/pkg/db/option"
	"github.com/openfaktura/backend/pkg/db/pagination"
	"github.com/openfaktura/backend/pkg/repository"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Store repository.Repository[domain.Tenant]
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	store repository.Repository[domain.Tenant]
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("tenant.service"),
		store: p.Store,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Tenant, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	slugValue := strings.TrimSpace(req.Slug)
	if slugValue == "" {
		slugValue = name
	}
	slugValue = slug.Make(slugValue)

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	tenant := &domain.Tenant{
		ID:          uuid.New(),
		Name:        name,
		Slug:        slugValue,
		Description: trimPtr(req.Description),
		IsActive:    active,
	}

	if err := s.store.Create(ctx, tenant); err != nil {
		return nil, translateConflict(err)
	}

	s.log.Info("tenant created",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("slug", tenant.Slug),
	)
	return tenant, nil
}

func (s *Service) List(ctx context.Context, page pagination.Pagination) (*pagination.Page[*domain.Tenant], error) {
	page = page.Normalize()

	total, err := s.store.Count(ctx, &domain.Tenant{})
	if err != nil {
		return nil, err
	}

	items, err := s.store.Find(ctx, &domain.Tenant{},
		option.WithOrder("name asc"),
		option.ApplyPagination(page),
	)
	if err != nil {
		return nil, err
	}

	result := pagination.NewPage(items, total, page)
	return &result, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	tenantID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	tenant, err := s.store.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	return tenant, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (*domain.Tenant, error) {
	tenant, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		tenant.Name = name
	}
	if req.Slug != nil {
		tenant.Slug = slug.Make(strings.TrimSpace(*req.Slug))
	}
	if req.Description != nil {
		tenant.Description = trimPtr(req.Description)
	}
	if req.IsActive != nil {
		tenant.IsActive = *req.IsActive
	}

	if err := s.store.Save(ctx, tenant); err != nil {
		return nil, translateConflict(err)
	}
	return tenant, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	tenantID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	// Refuse to delete while companies still reference the tenant.
	var companies int64
	if err := s.db.WithContext(ctx).
		Model(&companydomain.Company{}).
		Where("tenant_id = ?", tenantID).
		Count(&companies).Error; err != nil {
		return err
	}
	if companies > 0 {
		return domain.ErrInUse
	}

	affected, err := s.store.Delete(ctx, tenantID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	s.log.Info("tenant deleted", zap.String("tenant_id", tenantID.String()))
	return nil
}

func translateConflict(err error) error {
	if err == nil {
		return nil
	}
	if db.IsDuplicateKeyErr(err) {
		return db.NewConflictError("slug", "A tenant with this slug already exists")
	}
	return err
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
