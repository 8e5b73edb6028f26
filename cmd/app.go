/*
Package cmd - Application assembly.

Wires configuration, logging, persistence, the payment gateway, and the
HTTP surface together. All dependencies flow inward by injection; no
package reads process-wide state at call time.
*/
package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/api"
	"storefront/api/health"
	orderctrl "storefront/api/order"
	orderapp "storefront/application/order"
	"storefront/config"
	"storefront/domain/order"
	"storefront/domain/user"
	"storefront/infrastructure/persistence/mocks"
	"storefront/infrastructure/persistence/mysql"
	"storefront/payment"
	"storefront/payment/stripe"
	"storefront/pkg/logger"

	"go.uber.org/zap"
)

// App Application structure
type App struct {
	config *config.Config
	router *api.Router
	server *http.Server
}

// NewApp assembles the application from configuration.
func NewApp(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	orderRepo, userRepo, sqlDB, err := buildRepositories(cfg)
	if err != nil {
		return nil, err
	}

	gateway := buildGateway(cfg)

	orderService := orderapp.NewApplicationService(orderRepo, userRepo, gateway, orderapp.Config{
		Currency:       cfg.Payment.Currency,
		DeliveryCharge: cfg.Payment.DeliveryCharge,
	})

	healthController := health.NewController(cfg, sqlDB)
	orderController := orderctrl.NewController(orderService)

	router := api.NewRouter(cfg, healthController, orderController)
	router.SetupRoutes()

	logger.Info("Application assembled",
		zap.String("env", cfg.App.Env),
		zap.String("database", cfg.Database.Type),
		zap.String("gateway", gateway.Name()),
	)

	return &App{
		config: cfg,
		router: router,
		server: &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      router.GetEngine(),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}, nil
}

// buildRepositories selects the persistence layer by configuration.
// The sql.DB handle is returned for health checks; nil under mock.
func buildRepositories(cfg *config.Config) (order.Repository, user.Repository, *sql.DB, error) {
	if cfg.Database.Type != "mysql" {
		logger.Info("Using in-memory persistence layer")
		return mocks.NewMockOrderRepository(), mocks.NewMockUserRepository(), nil, nil
	}

	mysqlConfig := &mysql.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}

	db, err := mysqlConfig.Connect()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	return mysql.NewOrderRepository(db), mysql.NewUserRepository(db), sqlDB, nil
}

// buildGateway selects the hosted payment provider by configuration.
// Stripe requires a secret key; anything else falls back to the mock
// gateway so development environments run without credentials.
func buildGateway(cfg *config.Config) payment.Gateway {
	if cfg.Payment.Gateway.Provider == "stripe" && cfg.Payment.Gateway.SecretKey != "" {
		return stripe.New(cfg.Payment.Gateway.SecretKey)
	}
	if cfg.Payment.Gateway.Provider == "stripe" {
		logger.Warn("Stripe selected without a secret key, using mock gateway")
	}
	return payment.NewMockGateway()
}

// Run starts the HTTP server and blocks until shutdown completes.
func (a *App) Run() error {
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan

		logger.Info("Shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
		defer cancel()

		if err := a.server.Shutdown(ctx); err != nil {
			logger.Error("Graceful shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("Server starting",
		zap.String("addr", a.server.Addr),
		zap.String("health", "/api/v1/health"),
	)

	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	logger.Info("Server stopped")
	return logger.Sync()
}

// GetEngine exposes the gin engine for tests.
func (a *App) GetEngine() http.Handler {
	return a.router.GetEngine()
}
