package sweeper_fx

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"hostpanel/internal/services"
	"hostpanel/pkg/pairing"
)

var Module = fx.Options(
	fx.Provide(provideSweeperService),
	fx.Invoke(registerSweeper),
)

func provideSweeperService(db *gorm.DB, pairingClient pairing.Client, logger *zap.Logger) services.SweeperServiceInterface {
	return services.NewSweeperService(db, pairingClient, logger)
}

// Expire check every 5 minutes, purge daily at 03:00.
func registerSweeper(lc fx.Lifecycle, sweeper services.SweeperServiceInterface, logger *zap.Logger) error {
	c := cron.New()

	_, err := c.AddFunc("*/5 * * * *", func() {
		if _, err := sweeper.ExpireDueServers(context.Background()); err != nil {
			logger.Error("expire sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	_, err = c.AddFunc("0 3 * * *", func() {
		if _, err := sweeper.PurgeStaleServers(context.Background()); err != nil {
			logger.Error("purge sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			c.Start()
			logger.Info("sweeper cron jobs started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			<-c.Stop().Done()
			return nil
		},
	})

	return nil
}
