// Package app wires configuration, storage, services and the HTTP server
// into a runnable process.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shoppinh/jp-order-BE/internal/config"
	"github.com/shoppinh/jp-order-BE/internal/database"
	"github.com/shoppinh/jp-order-BE/internal/http/handler"
	"github.com/shoppinh/jp-order-BE/internal/http/middleware"
	"github.com/shoppinh/jp-order-BE/internal/observability"
	"github.com/shoppinh/jp-order-BE/internal/repository"
	"github.com/shoppinh/jp-order-BE/internal/security"
	"github.com/shoppinh/jp-order-BE/internal/service"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	Config *config.Config
	Logger *slog.Logger
	Server *http.Server

	files           *service.FileService
	cleanupInterval time.Duration
}

// New builds the whole dependency graph from configuration.
func New(cfg *config.Config) (*App, error) {
	logger := observability.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if report, err := database.SeedSync(db); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	} else if !report.Noop {
		logger.Info("seeded baseline data", "roles", report.CreatedRoles, "setting", report.CreatedSetting)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	storage, err := service.NewMinIOStorage(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL)
	if err != nil {
		return nil, fmt.Errorf("object storage: %w", err)
	}

	users := repository.NewUserRepository(db)
	roles := repository.NewRoleRepository(db)
	sessions := repository.NewUserTokenRepository(db)
	addresses := repository.NewAddressRepository(db)
	categories := repository.NewCategoryRepository(db)
	products := repository.NewProductRepository(db)
	orders := repository.NewOrderRepository(db)
	orderItems := repository.NewOrderItemRepository(db)
	settings := repository.NewSettingRepository(db)
	files := repository.NewFileRepository(db)

	tokens := security.NewTokenManager(cfg.JWTSecret)

	authSvc := service.NewAuthService(users, sessions, tokens, cfg.JWTExpiredTime, cfg.JWTRememberTime, cfg.PhoneCountryCode, logger)
	userSvc := service.NewUserService(users, roles, cfg.PhoneCountryCode)
	roleSvc := service.NewRoleService(roles)
	categorySvc := service.NewCategoryService(categories)
	productSvc := service.NewProductService(products, categories)
	settingSvc := service.NewSettingService(settings, service.NewRedisSettingCacheStore(redisClient, "setting"), 0, logger)
	orderSvc := service.NewOrderService(orders, orderItems, products, addresses, settingSvc)
	addressSvc := service.NewAddressService(addresses)
	fileSvc := service.NewFileService(files, storage, logger)

	router := handler.NewRouter(handler.RouterDeps{
		Auth:           handler.NewAuthHandler(authSvc),
		Users:          handler.NewUserHandler(userSvc, roleSvc),
		Products:       handler.NewProductHandler(productSvc, categorySvc),
		Orders:         handler.NewOrderHandler(orderSvc),
		Addresses:      handler.NewAddressHandler(addressSvc),
		Settings:       handler.NewSettingHandler(settingSvc),
		Files:          handler.NewFileHandler(fileSvc),
		Validator:      authSvc,
		LoginLimiter:   middleware.NewRedisFixedWindowLimiter(redisClient, "login", cfg.LoginRateLimit, cfg.LoginRateWindow),
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		Config:          cfg,
		Logger:          logger,
		Server:          server,
		files:           fileSvc,
		cleanupInterval: cfg.FileCleanupInterval,
	}, nil
}

// Run serves HTTP until SIGINT/SIGTERM, then drains in-flight requests.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go a.cleanupLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("http server listening", "addr", a.Server.Addr, "env", a.Config.Env)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.Server.Shutdown(shutdownCtx)
}

// cleanupLoop periodically removes uploads that were never claimed.
func (a *App) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(a.cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := a.files.CleanupExpired(ctx)
			if err != nil {
				a.Logger.Warn("file cleanup failed", "error", err)
				continue
			}
			if removed > 0 {
				a.Logger.Info("removed expired uploads", "count", removed)
			}
		}
	}
}
