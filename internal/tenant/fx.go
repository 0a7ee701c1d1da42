package tenant

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/openfaktura/backend/internal/tenant/domain"
	"github.com/openfaktura/backend/internal/tenant/service"
	"github.com/openfaktura/backend/pkg/repository"
)

var Module = fx.Module("tenant.service",
	fx.Provide(func(db *gorm.DB) repository.Repository[domain.Tenant] {
		return repository.ProvideStore[domain.Tenant](db)
	}),
	fx.Provide(service.New),
)
