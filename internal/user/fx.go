package user

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/openfaktura/backend/internal/user/domain"
	"github.com/openfaktura/backend/internal/user/service"
	"github.com/openfaktura/backend/pkg/repository"
)

var Module = fx.Module("user.service",
	fx.Provide(func(db *gorm.DB) repository.Repository[domain.User] {
		return repository.ProvideStore[domain.User](db)
	}),
	fx.Provide(service.New),
)
