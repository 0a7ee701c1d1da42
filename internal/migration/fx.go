package migration

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	articledomain "github.com/openfaktura/backend/internal/article/domain"
	companydomain "github.com/openfaktura/backend/internal/company/domain"
	"github.com/openfaktura/backend/internal/config"
	invoicedomain "github.com/openfaktura/backend/internal/invoice/domain"
	tenantdomain "github.com/openfaktura/backend/internal/tenant/domain"
	userdomain "github.com/openfaktura/backend/internal/user/domain"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return fmt.Errorf("obtain sql.DB: %w", err)
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
			log.Info("database migrations applied")
			return nil
		}

		// Non-postgres dialects are used for local development and tests,
		// where the schema is derived from the models directly.
		if err := conn.AutoMigrate(
			&tenantdomain.Tenant{},
			&userdomain.User{},
			&companydomain.Company{},
			&articledomain.Article{},
			&invoicedomain.Invoice{},
			&invoicedomain.InvoiceItem{},
		); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		log.Info("database schema synchronized", zap.String("dialect", cfg.DBType))
		return nil
	}),
)
