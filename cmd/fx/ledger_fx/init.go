package ledger_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"hostpanel/internal/repositories"
	"hostpanel/internal/services"
)

var Module = fx.Provide(
	provideLedgerService, provideTransactionRepo)

func provideTransactionRepo(db *gorm.DB) repositories.TransactionRepository {
	return repositories.NewTransactionRepository(db)
}

func provideLedgerService(db *gorm.DB, txnRepo repositories.TransactionRepository, logger *zap.Logger) services.LedgerServiceInterface {
	return services.NewLedgerService(db, txnRepo, logger)
}
