package migrate

import (
	"context"

	"github.com/dcontreras/mueblesrent-backend/pkg/config"
	"github.com/dcontreras/mueblesrent-backend/pkg/db"
	"github.com/dcontreras/mueblesrent-backend/pkg/logger"
)

// MaybeRunDev applies pending migrations on boot when the auto-migrate flag
// is set. Only intended for dev environments; production uses cmd/migrate.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if cfg == nil || client == nil {
		return nil
	}
	if !cfg.FeatureFlags.AutoMigrate || !cfg.App.IsDev() {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return err
	}

	if logg != nil {
		logg.Info(ctx, "running dev auto-migration")
	}
	return Run(ctx, sqlDB, DefaultDir, "up")
}
