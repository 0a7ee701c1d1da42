package invoice

import (
	"go.uber.org/fx"

	"github.com/openfaktura/backend/internal/invoice/repository"
	"github.com/openfaktura/backend/internal/invoice/service"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
