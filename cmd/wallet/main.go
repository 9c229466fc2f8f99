package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/NyashaEysenck/offline-wallet/internal/pkg/config"
	"github.com/NyashaEysenck/offline-wallet/internal/pkg/database"
	"github.com/NyashaEysenck/offline-wallet/internal/pkg/health"
	"github.com/NyashaEysenck/offline-wallet/internal/pkg/logger"
	"github.com/NyashaEysenck/offline-wallet/internal/pkg/middleware"
	"github.com/NyashaEysenck/offline-wallet/internal/pkg/server"
	"github.com/NyashaEysenck/offline-wallet/services/wallet/connectivity"
	gatewayHTTP "github.com/NyashaEysenck/offline-wallet/services/wallet/gateway/http"
	"github.com/NyashaEysenck/offline-wallet/services/wallet/handler"
	httpHandler "github.com/NyashaEysenck/offline-wallet/services/wallet/handler/http"
	"github.com/NyashaEysenck/offline-wallet/services/wallet/payload"
	"github.com/NyashaEysenck/offline-wallet/services/wallet/repository"
	"github.com/NyashaEysenck/offline-wallet/services/wallet/usecase"
)

func main() {
	appName := "wallet-service"
	configPath := "config/wallet.env"
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
		logger.String("environment", configs.App.Environment),
		logger.String("identity", configs.Wallet.Identity))

	// Initialize the on-device SQLite store
	sqliteClient, err := database.NewSQLiteClient(configs.Wallet.StorePath)
	if err != nil {
		zapLogger.Fatal("Failed to open wallet store", logger.Err(err))
	}
	defer sqliteClient.Close()

	// Initialize repository
	walletRepo, err := repository.NewWalletRepository(configs, sqliteClient)
	if err != nil {
		zapLogger.Fatal("Failed to initialize wallet repository", logger.Err(err))
	}

	probeInterval := time.Duration(configs.Wallet.ProbeIntervalSeconds) * time.Second
	probeTimeout := time.Duration(configs.Wallet.ProbeTimeoutSeconds) * time.Second

	// Initialize Gateway
	ledgerGW := gatewayHTTP.NewLedgerGateway(configs.Wallet.LedgerURL, probeTimeout, zapLogger)

	// Initialize UseCase
	codec := payload.NewCodec(configs.Channels)
	walletUC := usecase.NewWalletUC(configs, walletRepo, ledgerGW, codec, zapLogger)

	// Connectivity monitor resumes from the last persisted status so a
	// restart while offline does not flip the wallet online prematurely
	ctx := context.Background()
	lastStatus, err := walletRepo.LastConnStatus(ctx)
	if err != nil {
		zapLogger.Fatal("Failed to load last connectivity status", logger.Err(err))
	}

	monitor := connectivity.NewMonitor(ledgerGW, walletRepo, lastStatus, probeInterval, probeTimeout, zapLogger)
	monitor.Subscribe(walletUC.OnConnectivityChange)
	monitor.Start(ctx)
	defer monitor.Stop()

	// Handlers for HTTP
	walletHandler := httpHandler.NewWalletHandler(walletUC, monitor)
	Handler := handler.NewHandler(walletHandler)

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
