package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	catalogapp "github.com/fliamecomm/storefront/internal/application/catalog"
	identityapp "github.com/fliamecomm/storefront/internal/application/identity"
	shoppingapp "github.com/fliamecomm/storefront/internal/application/shopping"
	"github.com/fliamecomm/storefront/internal/infrastructure/auth"
	"github.com/fliamecomm/storefront/internal/infrastructure/cache"
	"github.com/fliamecomm/storefront/internal/infrastructure/config"
	"github.com/fliamecomm/storefront/internal/infrastructure/event"
	"github.com/fliamecomm/storefront/internal/infrastructure/logger"
	"github.com/fliamecomm/storefront/internal/infrastructure/persistence"
	"github.com/fliamecomm/storefront/internal/infrastructure/storage"
	"github.com/fliamecomm/storefront/internal/infrastructure/telemetry"
	"github.com/fliamecomm/storefront/internal/interfaces/http/handler"
	"github.com/fliamecomm/storefront/internal/interfaces/http/middleware"
	"github.com/fliamecomm/storefront/internal/interfaces/http/router"
	"github.com/fliamecomm/storefront/internal/interfaces/http/web"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/fliamecomm/storefront/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Mobile Shopy API
//	@version		1.0
//	@description	Storefront for phones: catalog, likes, cart and staff product management.
//	@description	Pages are server-rendered; the like toggle is the JSON endpoint.

//	@host		localhost:8080
//	@BasePath	/

//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						sessionid

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: logger.DefaultTimeFormat,
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// Telemetry comes first so the log bridge can be attached to the final logger
	providers, err := telemetry.Setup(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := providers.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()
	if providers.Logs.IsEnabled() {
		otelCore := telemetry.NewZapOTELCore(cfg.Telemetry.ServiceName, providers.Logs, logger.ParseLevel(cfg.Log.Level))
		if log, err = logger.New(logCfg, otelCore); err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting storefront",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Telemetry.DBTraceEnabled {
		plugin := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:    true,
			LogFullSQL: cfg.Telemetry.DBLogFullSQL,
			DBName:     cfg.Database.DBName,
		}, log)
		if err := plugin.Register(db.DB); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}

	meter := providers.Meter.Meter("storefront")
	if providers.Meter.IsEnabled() {
		if sqlDB, err := db.DB.DB(); err == nil {
			if _, err := telemetry.RegisterDBPoolMetrics(meter, sqlDB); err != nil {
				log.Warn("Failed to register database pool metrics", zap.Error(err))
			}
		}
	}

	backends, err := cache.NewFactory(cfg.Redis, cache.WithLogger(log)).Create(ctx)
	if err != nil {
		log.Fatal("Failed to initialize cache backends", zap.Error(err))
	}
	defer func() {
		if err := backends.Close(); err != nil {
			log.Error("Error closing cache backends", zap.Error(err))
		}
	}()

	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if backends.Redis != nil {
		blacklist = auth.NewRedisTokenBlacklist(backends.Redis)
	}

	images, err := storage.New(ctx, &cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize image storage", zap.String("type", cfg.Storage.Type), zap.Error(err))
	}
	imageProcessor := storage.NewJPEGProcessor(cfg.Storage.ImageMaxWidth, cfg.Storage.ImageQuality)

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	brandRepo := persistence.NewGormBrandRepository(db.DB)
	likeRepo := persistence.NewGormLikeRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Event bus and subscribers
	eventBus := event.NewInMemoryEventBus(log)
	storefrontMetrics, err := telemetry.NewStorefrontMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create storefront metrics", zap.Error(err))
	}
	eventBus.Subscribe(storefrontMetrics)

	if cfg.Kafka.Enabled {
		forwarder, err := event.NewKafkaForwarder(cfg.Kafka, log)
		if err != nil {
			log.Fatal("Failed to connect to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.Error(err))
		}
		defer func() {
			if err := forwarder.Close(); err != nil {
				log.Error("Error closing Kafka producer", zap.Error(err))
			}
		}()
		eventBus.Subscribe(forwarder)
		log.Info("Forwarding domain events to Kafka",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic_prefix", cfg.Kafka.TopicPrefix),
		)
	}

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Application services
	sessions := auth.NewSessionService(cfg.Session)
	authService := identityapp.NewAuthService(userRepo, sessions, blacklist, eventBus, log,
		identityapp.WithLoginRecorder(storefrontMetrics))
	catalogService := catalogapp.NewCatalogService(productRepo, categoryRepo, brandRepo, likeRepo,
		images, imageProcessor, eventBus, log)
	likeService := shoppingapp.NewLikeService(productRepo, likeRepo, eventBus, log)
	cartService := shoppingapp.NewCartService(productRepo, cartRepo, eventBus, log)
	favoritesService := shoppingapp.NewFavoritesService(productRepo, likeRepo, cartRepo)

	// HTTP handlers
	base := handler.NewBaseHandler(handler.NewFlashStore(cfg.Session), cfg.Session)
	handlers := router.Handlers{
		Auth:     handler.NewAuthHandler(base, authService, cfg.Shop, nil),
		Catalog:  handler.NewCatalogHandler(base, catalogService),
		Shopping: handler.NewShoppingHandler(base, likeService, cartService, favoritesService),
		Admin:    handler.NewAdminHandler(base, catalogService),
		Health:   handler.NewHealthHandler(db),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	templates, err := web.Templates(cfg.App.TemplatesDir)
	if err != nil {
		log.Fatal("Failed to load templates", zap.String("dir", cfg.App.TemplatesDir), zap.Error(err))
	}
	engine.SetHTMLTemplate(templates)

	// Middleware order matters:
	// request id before logging, recovery right after so panics are logged with the id,
	// tracing before the session so user attributes land on the server span.
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log, func(c *gin.Context) {
		base.HandleDomainError(c, errors.New("panic recovered"))
	}))
	engine.Use(middleware.Secure(middleware.DefaultSecurityConfig()))
	engine.Use(middleware.CORS(cfg.HTTP.CORSAllowOrigins))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName, cfg.Telemetry.Enabled))
	engine.Use(middleware.Profiling(cfg.Telemetry.ProfilingEnabled))

	httpMetrics, err := middleware.HTTPMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create HTTP metrics", zap.Error(err))
	}
	engine.Use(httpMetrics)

	if cfg.HTTP.RateLimitEnabled {
		engine.Use(middleware.RateLimit(backends.Counter, middleware.RateLimitConfig{
			Name:   "global",
			Limit:  cfg.HTTP.RateLimitRequests,
			Window: cfg.HTTP.RateLimitWindow,
		}))
		handlers.AuthRateLimit = middleware.RateLimit(backends.Counter, middleware.RateLimitConfig{
			Name:   "auth",
			Limit:  cfg.HTTP.AuthRateLimitRequests,
			Window: cfg.HTTP.AuthRateLimitWindow,
		})
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
			zap.Int("auth_requests", cfg.HTTP.AuthRateLimitRequests),
		)
	}

	engine.Use(middleware.SessionIdentity(authService, cfg.Session.CookieName, log))
	engine.Use(middleware.SpanAttributes())

	engine.GET("/swagger/*any", middleware.SwaggerGate(cfg.Swagger.Enabled), ginSwagger.WrapHandler(swaggerFiles.Handler))
	engine.NoRoute(base.NotFound)

	router.NewRouter(engine).Register(router.Storefront(handlers)...).Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}
