package main

import (
	"log"

	"payfast-licensing/config"
	"payfast-licensing/database"
	adminapi "payfast-licensing/internal/api/admin"
	billingapi "payfast-licensing/internal/api/billing"
	payfastapi "payfast-licensing/internal/api/payfast"
	routes "payfast-licensing/internal/app/http"
	"payfast-licensing/internal/app/http/middleware"
	"payfast-licensing/internal/infra/payfast"
	pflog "payfast-licensing/internal/pkg/log"
	"payfast-licensing/internal/repository"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadEnv()

	logger, err := pflog.NewLogger(config.LOG_LEVEL, config.LOG_PATH)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.InitDB(config.DB_URL)
	if err != nil {
		logger.Fatalw("database init failed", "error", err)
	}
	logger.Info("connected and migrated")

	repo := repository.NewPaymentRepository(db)
	pf := config.PayFast()
	gateway := payfast.NewGatewayClient(pf.ValidateURL, pf.ValidateTimeout)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	routes.RegisterRoutes(r, routes.Handlers{
		PayFast:   payfastapi.NewHandler(pf, repo, gateway, logger),
		Billing:   billingapi.NewHandler(repo),
		Admin:     adminapi.NewHandler(repo),
		JWTSecret: config.JWT_SECRET,
	})

	logger.Infow("listening", "port", config.PORT, "sandbox", config.PAYFAST_SANDBOX)
	if err := r.Run(":" + config.PORT); err != nil {
		logger.Fatalw("server stopped", "error", err)
	}
}
