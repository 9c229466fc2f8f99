package main

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/NyashaEysenck/offline-wallet/internal/pkg/config"
	"github.com/NyashaEysenck/offline-wallet/internal/pkg/database"
	"github.com/NyashaEysenck/offline-wallet/internal/pkg/health"
	"github.com/NyashaEysenck/offline-wallet/internal/pkg/logger"
	"github.com/NyashaEysenck/offline-wallet/internal/pkg/middleware"
	nsqpkg "github.com/NyashaEysenck/offline-wallet/internal/pkg/nsq"
	"github.com/NyashaEysenck/offline-wallet/internal/pkg/server"
	gatewayNSQ "github.com/NyashaEysenck/offline-wallet/services/ledger/gateway/nsq"
	"github.com/NyashaEysenck/offline-wallet/services/ledger/handler"
	httpHandler "github.com/NyashaEysenck/offline-wallet/services/ledger/handler/http"
	"github.com/NyashaEysenck/offline-wallet/services/ledger/repository"
	"github.com/NyashaEysenck/offline-wallet/services/ledger/usecase"
)

func main() {
	appName := "ledger-service"
	configPath := "config/ledger.env"
	configs := config.InitConfig(configPath)

	zapLogger, err := logger.InitFromConfig(configs)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment))

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer postgresClient.Close()

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	defer redisClient.Close()

	// Initialize NSQ producer when event publishing is enabled
	var producer *nsqpkg.Producer
	if configs.NSQ.Enabled {
		producer, err = nsqpkg.NewProducer(configs.NSQ.Address)
		if err != nil {
			zapLogger.Fatal("Failed to connect to NSQ", logger.Err(err))
		}
		defer producer.Stop()
	}

	// Initialize repository
	ledgerRepo, err := repository.NewLedgerRepository(configs, postgresClient)
	if err != nil {
		zapLogger.Fatal("Failed to initialize ledger repository", logger.Err(err))
	}
	receiptCache := repository.NewReceiptCache(redisClient, repository.DefaultReceiptTTL)

	// Initialize Gateway
	ledgerGW := gatewayNSQ.NewLedgerGateway(producer)

	// Initialize UseCase
	ledgerUC := usecase.NewLedgerUC(configs, ledgerRepo, receiptCache, ledgerGW, zapLogger)

	// Handlers for HTTP
	ledgerHandler := httpHandler.NewLedgerHandler(ledgerUC)
	Handler := handler.NewHandler(ledgerHandler)

	// Initialize Echo router
	e := echo.New()

	// Add middlewares
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.EchoMiddleware(zapLogger))

	// Register health endpoints
	health.RegisterHealthEndpoints(e, appName)

	// Register service routes
	Handler.RegisterRoutes(e)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port)
	if err := srv.Start(); err != nil {
		zapLogger.Fatal("Server stopped with error",
			logger.String("app", appName),
			logger.Err(err))
	}
}
