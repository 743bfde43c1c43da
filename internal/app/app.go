package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cars2customer_backend/database"
	"cars2customer_backend/internal/auth"
	"cars2customer_backend/internal/config"
	"cars2customer_backend/internal/email"
	"cars2customer_backend/internal/handlers"
	"cars2customer_backend/internal/imageprocessor"
	"cars2customer_backend/internal/lock"
	"cars2customer_backend/internal/logger"
	"cars2customer_backend/internal/middleware"
	"cars2customer_backend/internal/repositories"
	"cars2customer_backend/internal/repositories/memory"
	"cars2customer_backend/internal/repositories/mongodb"
	"cars2customer_backend/internal/repositories/postgres"
	"cars2customer_backend/internal/routes"
	"cars2customer_backend/internal/services"
	"cars2customer_backend/internal/storage"
	"cars2customer_backend/internal/validator"
	"cars2customer_backend/internal/workers"
	"cars2customer_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Dependencies are the collaborators SetupRouter wires together. Run builds
// them from config; tests pass in-memory versions.
type Dependencies struct {
	Store   *repositories.Store
	Locker  lock.Locker
	Mailer  services.OTPSender
	Storage storage.Storage
	Google  auth.GoogleVerifier
}

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrors.SetDebug(cfg.Server.Debug)
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, cleanup, err := buildDependencies(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize dependencies", "error", err)
	}
	defer cleanup()

	if cfg.Auth.JWTSecret == "" {
		secret, err := auth.RandomSecret()
		if err != nil {
			logger.Fatal("Failed to generate JWT secret", "error", err)
		}
		cfg.Auth.JWTSecret = secret
		logger.Warn("auth.jwt_secret is not set; admin tokens will not survive a restart")
	}

	ginRouter, svc := SetupRouter(cfg, deps)

	if err := seedTopAdmin(ctx, cfg, svc.AdminService); err != nil {
		logger.Fatal("Failed to seed top admin", "error", err)
	}

	cleanupWorker := workers.NewOTPCleanupWorker(deps.Store.Users, cfg.OTP.CleanupSchedule, cfg.OTP.UnverifiedRetention)
	if err := cleanupWorker.Start(ctx); err != nil {
		logger.Fatal("Failed to start OTP cleanup worker", "error", err)
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         address,
		Handler:      ginRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("Server starting", "address", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
}

// SetupRouter builds services, handlers and the gin engine.
func SetupRouter(cfg *config.Config, deps *Dependencies) (*gin.Engine, *services.ServiceContainer) {
	serviceContainer := initializeServices(cfg, deps)
	appHandlers := initializeHandlers(cfg, serviceContainer, deps)

	ginRouter := initializeGinRouter(cfg)
	requireAdmin := middleware.AdminAuthMiddleware(serviceContainer.AdminService, cfg.Auth.AllowLegacyUniqueID)
	routes.RegisterRoutes(ginRouter, appHandlers, requireAdmin)

	return ginRouter, serviceContainer
}

func initializeServices(cfg *config.Config, deps *Dependencies) *services.ServiceContainer {
	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)
	processor := imageprocessor.NewProcessor(cfg.Files.ImageQuality)

	return &services.ServiceContainer{
		AuthService: services.NewAuthService(deps.Store.Users, hasher, deps.Locker, deps.Mailer, services.AuthServiceConfig{
			MailTimeout: cfg.Email.SendTimeout,
			Google:      deps.Google,
		}),
		AdminService:    services.NewAdminService(deps.Store.Admins, hasher, tokens, deps.Locker, cfg.Auth.OpenAdminSignup),
		CarService:      services.NewCarService(deps.Store.Cars, deps.Storage, processor, cfg.Files.MaxSize),
		FavoriteService: services.NewFavoriteService(deps.Store.Users, deps.Store.Cars),
		BookingService:  services.NewBookingService(deps.Store.Bookings),
	}
}

func initializeHandlers(cfg *config.Config, svc *services.ServiceContainer, deps *Dependencies) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		AuthHandler:     handlers.NewAuthHandler(baseHandler, svc.AuthService),
		AdminHandler:    handlers.NewAdminHandler(baseHandler, svc.AdminService),
		CarHandler:      handlers.NewCarHandler(baseHandler, svc.CarService, cfg.Files.MaxSize),
		FavoriteHandler: handlers.NewFavoriteHandler(baseHandler, svc.FavoriteService),
		BookingHandler:  handlers.NewBookingHandler(baseHandler, svc.BookingService),
		FileHandler:     handlers.NewFileHandler(baseHandler, deps.Storage),
		HealthHandler:   handlers.NewHealthHandler(deps.Store.Conn),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	return router
}

// buildDependencies connects the configured backends. cleanup releases them.
func buildDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, cleanup, err
	}
	closers = append(closers, func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Conn.Close(closeCtx); err != nil {
			logger.Error("Failed to close store", "error", err)
		}
	})

	locker, closeLocker, err := newLocker(ctx, cfg)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	closers = append(closers, closeLocker)

	provider, err := newEmailProvider(cfg)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	closers = append(closers, func() { _ = provider.Close() })

	templates, err := email.NewDefaultTemplateManager()
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("failed to load email templates: %w", err)
	}

	files, err := storage.NewStorage(storage.Config{
		Type:       cfg.Files.Type,
		BasePath:   cfg.Files.BasePath,
		BaseURL:    cfg.Files.BaseURL,
		Bucket:     cfg.Files.Bucket,
		Region:     cfg.Files.Region,
		AccessKey:  cfg.Files.AccessKey,
		SecretKey:  cfg.Files.SecretKey,
		Endpoint:   cfg.Files.Endpoint,
		PublicRead: cfg.Files.PublicRead,
	})
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Info("Storage initialized", "type", cfg.Files.Type)

	var google auth.GoogleVerifier
	if cfg.Google.ClientID != "" {
		google = auth.NewGoogleVerifier(cfg.Google.ClientID)
	} else {
		logger.Warn("google.client_id is not set; Google sign-in is disabled")
	}

	return &Dependencies{
		Store:   store,
		Locker:  locker,
		Mailer:  email.NewOTPMailer(provider, templates, int(auth.OTPTTL/time.Minute)),
		Storage: files,
		Google:  google,
	}, cleanup, nil
}

func openStore(ctx context.Context, cfg *config.Config) (*repositories.Store, error) {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		logger.Warn("Using the in-memory store; data is lost on restart")
		return memory.NewStore(), nil

	case config.StorePostgres:
		db, err := database.Connect(cfg.Store.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, err
		}
		logger.Info("Database connected", "driver", "postgres")
		return postgres.NewStore(db), nil

	default:
		return mongodb.Connect(ctx, mongodb.Config{
			URI:            cfg.Store.Mongo.URI,
			Database:       cfg.Store.Mongo.Database,
			ConnectTimeout: cfg.Store.Mongo.ConnectTimeout,
		})
	}
}

func newLocker(ctx context.Context, cfg *config.Config) (lock.Locker, func(), error) {
	if cfg.Lock.Driver != config.LockRedis {
		return lock.NewLocal(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Lock.RedisAddr,
		Password: cfg.Lock.RedisPassword,
		DB:       cfg.Lock.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	logger.Info("Redis lock connected", "addr", cfg.Lock.RedisAddr)

	return lock.NewRedis(client, cfg.Lock.TTL), func() { _ = client.Close() }, nil
}

func newEmailProvider(cfg *config.Config) (email.Provider, error) {
	if !cfg.Email.Enabled {
		logger.Warn("Email delivery is disabled; OTP mails are only logged")
		return &MockEmailProvider{}, nil
	}

	provider := email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		UseSSL:    cfg.Email.UseSSL,
	})
	if err := provider.Validate(); err != nil {
		return nil, fmt.Errorf("invalid email configuration: %w", err)
	}
	return provider, nil
}

func seedTopAdmin(ctx context.Context, cfg *config.Config, adminService services.AdminService) error {
	if cfg.TopAdmin.Email == "" || cfg.TopAdmin.Password == "" {
		logger.Warn("TOP_ADMIN_EMAIL or TOP_ADMIN_PASSWORD is not set. Skipping top admin seeding.")
		return nil
	}

	created, err := adminService.SeedTopAdmin(ctx, cfg.TopAdmin.Email, cfg.TopAdmin.Password)
	if err != nil {
		return err
	}
	if created {
		logger.Info("Top admin created", "email", cfg.TopAdmin.Email)
	} else {
		logger.Info("Top admin already exists. Skipping creation.")
	}
	return nil
}
