package article

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/openfaktura/backend/internal/article/domain"
	"github.com/openfaktura/backend/internal/article/service"
	"github.com/openfaktura/backend/pkg/repository"
)

var Module = fx.Module("article.service",
	fx.Provide(func(db *gorm.DB) repository.Repository[domain.Article] {
		return repository.ProvideStore[domain.Article](db)
	}),
	fx.Provide(service.New),
)
