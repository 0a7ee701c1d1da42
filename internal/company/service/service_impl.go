package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/openfaktura/backend/internal/company/domain"
	"github.com/openfaktura/backend/internal/observability/metrics"
	"github.com/openfaktura/backend/pkg/db"
	"github.com/openfaktura/backend/pkg/db/option"
	"github.com/openfaktura/backend/pkg/db/pagination"
	"github.com/openfaktura/backend/pkg/repository"
	"github.com/openfaktura/backend/pkg/tenantctx"
)

const dateOnlyLayout = "2006-01-02"

type Params struct {
	fx.In

	Log     *zap.Logger
	Store   repository.Repository[domain.Company]
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	store   repository.Repository[domain.Company]
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		log:     p.Log.Named("company.service"),
		store:   p.Store,
		metrics: p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Company, error) {
	businessName := strings.TrimSpace(req.BusinessName)
	if businessName == "" {
		return nil, domain.ErrInvalidBusinessName
	}

	businessType := strings.TrimSpace(req.BusinessType)
	if businessType == "" {
		businessType = domain.BusinessTypeSoleProprietorship
	}
	if !domain.ValidBusinessType(businessType) {
		return nil, domain.ErrInvalidBusinessType
	}

	uin := strings.TrimSpace(req.UniqueIdentificationNumber)
	if uin == "" {
		return nil, domain.ErrInvalidIdentification
	}

	registrationDate, err := parseDate(req.RegistrationDate)
	if err != nil {
		return nil, domain.ErrInvalidRegistrationDate
	}

	company := &domain.Company{
		ID:                         uuid.New(),
		BusinessName:               businessName,
		TradeName:                  trimPtr(req.TradeName),
		BusinessType:               businessType,
		UniqueIdentificationNumber: uin,
		BusinessNumber:             trimPtr(req.BusinessNumber),
		FiscalNumber:               trimPtr(req.FiscalNumber),
		VatNumber:                  trimPtr(req.VatNumber),
		RegistrationDate:           registrationDate,
		Municipality:               strings.TrimSpace(req.Municipality),
		Address:                    strings.TrimSpace(req.Address),
		PhoneNumber:                strings.TrimSpace(req.PhoneNumber),
		Email:                      strings.TrimSpace(req.Email),
		BankAccount:                trimPtr(req.BankAccount),
		Logo:                       trimPtr(req.Logo),
	}
	if tenantID, ok := tenantctx.TenantID(ctx); ok {
		company.TenantID = &tenantID
	}

	if err := s.store.Create(ctx, company); err != nil {
		return nil, s.translateConflict(ctx, err)
	}

	s.log.Info("company created",
		zap.String("company_id", company.ID.String()),
		zap.String("business_name", company.BusinessName),
	)
	return company, nil
}

func (s *Service) List(ctx context.Context, page pagination.Pagination) (*pagination.Page[*domain.Company], error) {
	page = page.Normalize()

	total, err := s.store.Count(ctx, &domain.Company{})
	if err != nil {
		return nil, err
	}

	items, err := s.store.Find(ctx, &domain.Company{},
		option.WithOrder("business_name asc"),
		option.ApplyPagination(page),
	)
	if err != nil {
		return nil, err
	}

	result := pagination.NewPage(items, total, page)
	return &result, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	companyID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	company, err := s.store.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return company, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (*domain.Company, error) {
	company, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.BusinessName != nil {
		businessName := strings.TrimSpace(*req.BusinessName)
		if businessName == "" {
			return nil, domain.ErrInvalidBusinessName
		}
		company.BusinessName = businessName
	}
	if req.TradeName != nil {
		company.TradeName = trimPtr(req.TradeName)
	}
	if req.BusinessType != nil {
		if !domain.ValidBusinessType(*req.BusinessType) {
			return nil, domain.ErrInvalidBusinessType
		}
		company.BusinessType = *req.BusinessType
	}
	if req.UniqueIdentificationNumber != nil {
		uin := strings.TrimSpace(*req.UniqueIdentificationNumber)
		if uin == "" {
			return nil, domain.ErrInvalidIdentification
		}
		company.UniqueIdentificationNumber = uin
	}
	if req.BusinessNumber != nil {
		company.BusinessNumber = trimPtr(req.BusinessNumber)
	}
	if req.FiscalNumber != nil {
		company.FiscalNumber = trimPtr(req.FiscalNumber)
	}
	if req.VatNumber != nil {
		company.VatNumber = trimPtr(req.VatNumber)
	}
	if req.RegistrationDate != nil {
		registrationDate, err := parseDate(*req.RegistrationDate)
		if err != nil {
			return nil, domain.ErrInvalidRegistrationDate
		}
		company.RegistrationDate = registrationDate
	}
	if req.Municipality != nil {
		company.Municipality = strings.TrimSpace(*req.Municipality)
	}
	if req.Address != nil {
		company.Address = strings.TrimSpace(*req.Address)
	}
	if req.PhoneNumber != nil {
		company.PhoneNumber = strings.TrimSpace(*req.PhoneNumber)
	}
	if req.Email != nil {
		company.Email = strings.TrimSpace(*req.Email)
	}
	if req.BankAccount != nil {
		company.BankAccount = trimPtr(req.BankAccount)
	}
	if req.Logo != nil {
		company.Logo = trimPtr(req.Logo)
	}

	if err := s.store.Save(ctx, company); err != nil {
		return nil, s.translateConflict(ctx, err)
	}
	return company, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	companyID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	affected, err := s.store.Delete(ctx, companyID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	s.log.Info("company deleted", zap.String("company_id", companyID.String()))
	return nil
}

// translateConflict turns a unique-constraint violation into a ConflictError
// naming the offending identification field. Violations of constraints this
// service does not recognize propagate unchanged.
func (s *Service) translateConflict(ctx context.Context, err error) error {
	if err == nil || !db.IsDuplicateKeyErr(err) {
		return err
	}

	constraint := db.DuplicateKeyConstraint(err)
	field, message := conflictDetail(constraint)
	if field == "" {
		return err
	}

	if s.metrics != nil {
		s.metrics.RecordUniqueConflict(ctx, "company", field)
	}
	return db.NewConflictError(field, message)
}

func conflictDetail(constraint string) (string, string) {
	switch {
	case strings.Contains(constraint, "unique_identification_number"):
		return "uniqueIdentificationNumber", "A company with this Unique Identification Number already exists"
	case strings.Contains(constraint, "business_number"):
		return "businessNumber", "A company with this Business Number already exists"
	case strings.Contains(constraint, "fiscal_number"):
		return "fiscalNumber", "A company with this Fiscal Number already exists"
	case strings.Contains(constraint, "vat_number"):
		return "vatNumber", "A company with this VAT Number already exists"
	default:
		return "", ""
	}
}

func parseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if parsed, err := time.Parse(dateOnlyLayout, trimmed); err == nil {
		return parsed, nil
	}
	return time.Parse(time.RFC3339, trimmed)
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
