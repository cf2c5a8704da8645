package admin_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"hostpanel/internal/repositories"
	"hostpanel/internal/services"
)

var Module = fx.Provide(
	provideAdminService)

func provideAdminService(
	db *gorm.DB,
	accountRepo repositories.AccountRepository,
	serverRepo repositories.ServerRepository,
	referralRepo repositories.ReferralRepository,
	logger *zap.Logger,
) services.AdminServiceInterface {
	return services.NewAdminService(db, accountRepo, serverRepo, referralRepo, logger)
}
