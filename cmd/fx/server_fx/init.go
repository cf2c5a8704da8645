package server_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"hostpanel/internal/repositories"
	"hostpanel/internal/services"
	"hostpanel/pkg/pairing"
	"hostpanel/pkg/plans"
)

var Module = fx.Provide(
	provideServerService, provideServerRepo, plans.Default)

func provideServerRepo(db *gorm.DB) repositories.ServerRepository {
	return repositories.NewServerRepository(db)
}

func provideServerService(
	db *gorm.DB,
	serverRepo repositories.ServerRepository,
	catalog plans.Catalog,
	pairingClient pairing.Client,
	logger *zap.Logger,
) services.ServerServiceInterface {
	return services.NewServerService(db, serverRepo, catalog, pairingClient, logger)
}
