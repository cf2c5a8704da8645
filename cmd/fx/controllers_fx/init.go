package controllers_fx

import (
	"go.uber.org/fx"
	"hostpanel/internal/api/controllers"
)

var Module = fx.Provide(
	controllers.NewAccountController,
	controllers.NewServerController,
	controllers.NewAdminController,
	controllers.NewSessionController,
)
