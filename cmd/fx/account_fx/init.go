package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"hostpanel/internal/repositories"
	"hostpanel/internal/services"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo, provideReferralRepo, services.DefaultBonusConfig)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideReferralRepo(db *gorm.DB) repositories.ReferralRepository {
	return repositories.NewReferralRepository(db)
}

func provideAccountService(
	db *gorm.DB,
	accountRepo repositories.AccountRepository,
	referralRepo repositories.ReferralRepository,
	bonus services.BonusConfig,
	logger *zap.Logger,
) services.AccountServiceInterface {
	return services.NewAccountService(db, accountRepo, referralRepo, bonus, logger)
}
