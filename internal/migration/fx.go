package migration

import (
	"strings"

	"github.com/smallbiznis/sentra/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
		if !cfg.MigrateOnStart {
			return nil
		}
		// The embedded migrations are written for postgres. Other dialects
		// (sqlite in tests) migrate through gorm instead.
		if !strings.EqualFold(cfg.DBType, "postgres") {
			log.Named("migrations").Info("skipping embedded migrations",
				zap.String("database_type", cfg.DBType),
			)
			return nil
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
