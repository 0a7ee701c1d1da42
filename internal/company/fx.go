package company

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/openfaktura/backend/internal/company/domain"
	"github.com/openfaktura/backend/internal/company/service"
	"github.com/openfaktura/backend/pkg/repository"
)

var Module = fx.Module("company.service",
	fx.Provide(func(db *gorm.DB) repository.Repository[domain.Company] {
		return repository.ProvideStore[domain.Company](db)
	}),
	fx.Provide(service.New),
)
