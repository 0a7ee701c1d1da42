package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/openfaktura/backend/internal/user/domain"
	"github.com/openfaktura/backend/pkg/db"
	"github.com/openfaktura/backend/pkg/db/option"
	"github.com/openfaktura/backend/pkg/db/pagination"
	"github.com/openfaktura/backend/pkg/repository"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	Store repository.Repository[domain.User]
}

type Service struct {
	log   *zap.Logger
	store repository.Repository[domain.User]
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("user.service"),
		store: p.Store,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, domain.ErrInvalidPassword
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	tenantID, err := parseOptionalUUID(req.TenantID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	user := &domain.User{
		ID:        uuid.New(),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     email,
		Password:  string(hash),
		Role:      role,
		TenantID:  tenantID,
		IsActive:  active,
	}

	if err := s.store.Create(ctx, user); err != nil {
		return nil, translateConflict(err)
	}

	s.log.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role),
	)
	return user, nil
}

func (s *Service) List(ctx context.Context, page pagination.Pagination) (*pagination.Page[*domain.User], error) {
	page = page.Normalize()

	total, err := s.store.Count(ctx, &domain.User{})
	if err != nil {
		return nil, err
	}

	items, err := s.store.Find(ctx, &domain.User{},
		option.WithOrder("email asc"),
		option.ApplyPagination(page),
	)
	if err != nil {
		return nil, err
	}

	result := pagination.NewPage(items, total, page)
	return &result, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.User, error) {
	userID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (*domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" || !strings.Contains(email, "@") {
			return nil, domain.ErrInvalidEmail
		}
		user.Email = email
	}
	if req.Password != nil {
		if strings.TrimSpace(*req.Password) == "" {
			return nil, domain.ErrInvalidPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}
	if req.Role != nil {
		if !domain.ValidRole(*req.Role) {
			return nil, domain.ErrInvalidRole
		}
		user.Role = *req.Role
	}
	if req.TenantID != nil {
		tenantID, err := parseOptionalUUID(req.TenantID)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		user.TenantID = tenantID
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.store.Save(ctx, user); err != nil {
		return nil, translateConflict(err)
	}
	return user, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	userID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	affected, err := s.store.Delete(ctx, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func translateConflict(err error) error {
	if err == nil {
		return nil
	}
	if db.IsDuplicateKeyErr(err) {
		return db.NewConflictError("email", "A user with this email already exists")
	}
	return err
}

func parseOptionalUUID(value *string) (*uuid.UUID, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(strings.TrimSpace(*value))
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
