package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"hostpanel/cmd/fx/account_fx"
	"hostpanel/cmd/fx/admin_fx"
	"hostpanel/cmd/fx/controllers_fx"
	"hostpanel/cmd/fx/db_fx"
	"hostpanel/cmd/fx/ledger_fx"
	"hostpanel/cmd/fx/logger_fx"
	"hostpanel/cmd/fx/pairing_fx"
	"hostpanel/cmd/fx/server_fx"
	"hostpanel/cmd/fx/sweeper_fx"
	"hostpanel/internal/api/controllers"
	"hostpanel/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	app := fx.New(
		logger_fx.Module,
		db_fx.Module,
		pairing_fx.Module,
		ledger_fx.Module,
		account_fx.Module,
		server_fx.Module,
		admin_fx.Module,
		sweeper_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),

		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "3000"
				}
				logger.Info("starting HTTP server", zap.String("port", port))
				if err := engine.Run(":" + port); err != nil {
					logger.Fatal("failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	serverController *controllers.ServerController,
	adminController *controllers.AdminController,
	sessionController *controllers.SessionController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, accountController, serverController, adminController, sessionController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	serverController *controllers.ServerController,
	adminController *controllers.AdminController,
	sessionController *controllers.SessionController) {

	auth := r.Group("/api/auth")
	auth.POST("/signup", accountController.Signup)
	auth.POST("/login", accountController.Login)
	auth.POST("/logout", accountController.Logout)
	auth.GET("/me", middleware.JWTAuthMiddleware(), accountController.Me)
	auth.GET("/transactions", middleware.JWTAuthMiddleware(), accountController.Transactions)

	// 5 pairing attempts per 15 minutes per account
	pairingLimiter := middleware.RateLimitMiddleware(rate.Limit(5.0/(15*60)), 5)

	servers := r.Group("/api/servers", middleware.JWTAuthMiddleware())
	servers.POST("/create", serverController.Create)
	servers.GET("/my-servers", serverController.ListMine)
	servers.GET("/plans/list", serverController.Plans)
	servers.GET("/:serverId", serverController.Get)
	servers.POST("/:serverId/pair", pairingLimiter, serverController.Pair)
	servers.POST("/:serverId/stop", serverController.Stop)

	admin := r.Group("/api/admin", middleware.JWTAuthMiddleware(), middleware.RoleMiddleware("admin"))
	admin.GET("/users", adminController.ListUsers)
	admin.POST("/users/:userId/coins", adminController.AdjustCoins)
	admin.GET("/servers", adminController.ListServers)
	admin.POST("/servers/:serverId/expire", adminController.ForceExpire)
	admin.DELETE("/servers/:serverId", adminController.DeleteServer)
	admin.GET("/stats", adminController.Stats)

	external := r.Group("/api/external", middleware.JWTAuthMiddleware())
	external.GET("/pair/:phoneNumber", pairingLimiter, sessionController.Pair)
	external.POST("/stop/:sessionId", sessionController.Stop)
}
