package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"startup-directory.backend/internal/config"
	"startup-directory.backend/internal/infrastructure/identity"
	"startup-directory.backend/internal/infrastructure/migrations"
	"startup-directory.backend/internal/infrastructure/repositories"
	"startup-directory.backend/internal/infrastructure/storage"
	"startup-directory.backend/internal/interfaces/http/handlers"
	"startup-directory.backend/internal/interfaces/http/middleware"
	"startup-directory.backend/internal/usecases"
	"startup-directory.backend/pkg/jwt"
	"startup-directory.backend/pkg/logger"
	"startup-directory.backend/pkg/redis"
)

const serviceName = "startup-directory"

// gormConfig maps driver errors onto gorm sentinels such as gorm.ErrDuplicatedKey
func gormConfig() *gorm.Config {
	return &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
	}
}

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), gormConfig())
	}
	getStdDB      = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
	runMigrations = migrations.Up
	newDraftStore = redis.NewDraftStore
	runServer     = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownSig   = func() <-chan os.Signal {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		return quit
	}
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	initLog(cfg.Server.Env)
	defer logger.Sync()
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	// Redis backs draft autosave and idempotency keys
	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer redis.Close()
	logger.Info(ctx, "Redis initialized")

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Warn(ctx, "Database not available, endpoints will return errors", zap.Error(err))
	} else if cfg.Database.AutoMigrate {
		version, err := runMigrations(sqlDB)
		if err != nil {
			return err
		}
		logger.Info(ctx, "Database migrated", zap.Uint("version", version))
	}

	httpClient := &http.Client{Timeout: 15 * time.Second}
	tokens := newTokenValidator(cfg.Auth, httpClient)

	// Repositories and gateways
	startupRepo := repositories.NewStartupRepository(db)
	submissionRepo := repositories.NewSubmissionRepository(db)
	claimRepo := repositories.NewOwnershipClaimRepository(db)
	uow := repositories.NewUnitOfWork(db)
	identityClient := identity.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey, cfg.Supabase.AnonKey, httpClient)
	storageClient := storage.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)
	draftStore, err := newDraftStore(cfg.Drafts.Secret, cfg.Drafts.TTL)
	if err != nil {
		return fmt.Errorf("failed to initialize draft store: %w", err)
	}

	buckets := usecases.StorageBuckets{
		Logos:      cfg.Storage.LogoBucket,
		PitchDecks: cfg.Storage.PitchDeckBucket,
	}

	// Usecases
	draftUsecase := usecases.NewDraftUsecase(draftStore, cfg.Drafts.Debounce)
	submissionUsecase := usecases.NewSubmissionUsecase(submissionRepo, storageClient, buckets)
	moderationUsecase := usecases.NewModerationUsecase(submissionRepo, startupRepo)
	claimUsecase := usecases.NewClaimUsecase(claimRepo, startupRepo, uow)
	startupUsecase := usecases.NewStartupUsecase(startupRepo, claimRepo, storageClient, buckets.PitchDecks, cfg.Storage.SignedURLTTL)
	adminUsecase := usecases.NewAdminUsecase(startupRepo, submissionRepo, claimRepo, storageClient, buckets, uow)
	userUsecase := usecases.NewUserUsecase(identityClient, claimRepo)
	authUsecase := usecases.NewAuthUsecase(identityClient)

	r := newRouter(routeDeps{
		submissionHandler: handlers.NewSubmissionHandler(submissionUsecase, moderationUsecase, draftUsecase),
		startupHandler:    handlers.NewStartupHandler(startupUsecase, claimUsecase),
		adminHandler:      handlers.NewAdminHandler(adminUsecase, claimUsecase, userUsecase),
		draftHandler:      handlers.NewDraftHandler(draftUsecase),
		authHandler:       handlers.NewAuthHandler(authUsecase),
		healthHandler: handlers.NewHealthHandler(serviceName, map[string]handlers.Pinger{
			"database": sqlDB.PingContext,
			"redis":    redis.Ping,
		}),
		requireSession: middleware.AuthMiddleware(tokens),
		optionalAuth:   middleware.OptionalAuth(tokens),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           withCORS(r, cfg.CORS.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := shutdownSig()
	serveErr := make(chan error, 1)
	go func() {
		logger.Info(ctx, "Startup directory backend starting", zap.String("port", cfg.Server.Port))
		serveErr <- runServer(srv)
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case sig := <-quit:
		logger.Info(ctx, "Shutting down server", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Server shutdown failed", zap.Error(err))
	}
	if err := draftUsecase.Flush(shutdownCtx); err != nil {
		logger.Error(ctx, "Failed to flush pending drafts", zap.Error(err))
	}
	return nil
}

// newTokenValidator verifies sessions with the shared secret, or with the
// provider's published keys when a JWKS URL is configured
func newTokenValidator(cfg config.AuthConfig, client *http.Client) *jwt.JWTService {
	var opts []jwt.Option
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.JWKSURL != "" {
		opts = append(opts, jwt.WithKeySet(jwt.NewJWKSKeySet(cfg.JWKSURL, client)))
	}
	return jwt.NewJWTService(cfg.JWTSecret, opts...)
}
