package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	storefrontserver "github.com/Apurer/go-gin-storefront/go"

	cartmemory "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/memory"
	cartobs "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/observability"
	cartredis "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/redis"
	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	catalogmemory "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	ordersmemory "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-gin-storefront/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	paymentsfilesystem "github.com/Apurer/go-gin-storefront/internal/domains/payments/adapters/filesystem"
	paymentsinline "github.com/Apurer/go-gin-storefront/internal/domains/payments/adapters/inline"
	paymentsobs "github.com/Apurer/go-gin-storefront/internal/domains/payments/adapters/observability"
	paymentsqrcode "github.com/Apurer/go-gin-storefront/internal/domains/payments/adapters/qrcode"
	paymentsapp "github.com/Apurer/go-gin-storefront/internal/domains/payments/application"
	paymentsports "github.com/Apurer/go-gin-storefront/internal/domains/payments/ports"
	usermemory "github.com/Apurer/go-gin-storefront/internal/domains/users/adapters/memory"
	userobs "github.com/Apurer/go-gin-storefront/internal/domains/users/adapters/observability"
	userpostgres "github.com/Apurer/go-gin-storefront/internal/domains/users/adapters/persistence/postgres"
	userredis "github.com/Apurer/go-gin-storefront/internal/domains/users/adapters/redis"
	userapp "github.com/Apurer/go-gin-storefront/internal/domains/users/application"
	userports "github.com/Apurer/go-gin-storefront/internal/domains/users/ports"
	"github.com/Apurer/go-gin-storefront/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-storefront/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-storefront/internal/platform/postgres"
	platformredis "github.com/Apurer/go-gin-storefront/internal/platform/redis"
)

const serviceName = "storefront-api"

// inlineQRPath serves the QR image when no static directory is configured.
const inlineQRPath = "/payment/qr.png"

// Run boots the storefront HTTP server with observability, repositories, and workflows wired.
// It returns when ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	level, _ := cfg.SlogLevel()
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName,
		platformobservability.WithLogFile(cfg.LogFile),
		platformobservability.WithLogLevel(level),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	app, cleanup, err := Build(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer cleanup()

	if interval := time.Duration(cfg.Sessions.PurgeIntervalMinutes) * time.Minute; interval > 0 {
		go purgeSessionsEvery(ctx, interval, app.Users, logger)
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("storefront listening", slog.String("addr", cfg.Addr()))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("storefront server exited", slog.String("addr", cfg.Addr()), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("storefront shutting down")
		return server.Shutdown(shutdownCtx)
	}
}

// App is the assembled storefront: the router plus the services background jobs need.
type App struct {
	Router *gin.Engine
	Users  userports.Service
}

// Build wires repositories, services, and the router for cfg. Backends that are
// not configured or unreachable fall back to in-memory adapters.
func Build(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (*App, func(), error) {
	logger := effectiveLogger(instruments)
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	db, closeDB := platformpostgres.ConnectOrFallback(ctx, cfg.PostgresDSN, logger)
	cleanups = append(cleanups, closeDB)
	if db != nil {
		if err := migrations.Run(db); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	redisClient := connectRedis(ctx, cfg, logger)
	if redisClient != nil {
		cleanups = append(cleanups, func() { _ = redisClient.Close() })
	}

	catalogRepo := buildCatalogRepository(db)
	if seeded, err := SeedCatalog(ctx, catalogRepo); err != nil {
		logger.Warn("failed to seed demo catalog", slog.String("error", err.Error()))
	} else if seeded {
		logger.Info("seeded demo catalog")
	}
	catalogService := catalogobs.New(
		catalogapp.NewService(catalogRepo),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)

	cartService := cartobs.New(
		cartapp.NewService(buildCartStore(cfg, redisClient), catalogService),
		cartobs.WithLogger(logger),
		cartobs.WithTracer(instruments.Tracer("internal.cart.application")),
		cartobs.WithMeter(instruments.Meter("internal.cart.application")),
	)

	userService := userobs.New(
		userapp.NewService(buildUserRepository(db), buildLoginSessionStore(db, redisClient), userapp.WithSessionTTL(cfg.SessionTTL())),
		userobs.WithLogger(logger),
		userobs.WithTracer(instruments.Tracer("internal.users.application")),
		userobs.WithMeter(instruments.Meter("internal.users.application")),
	)

	orderRepo := buildOrderRepository(db)
	var orderWorkflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(orderRepo)
	if db == nil {
		logger.Info("order placement runs inline, durable workflows need postgres shared with the worker")
	} else if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		cleanups = append(cleanups, temporalClient.Close)
		orderWorkflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.Temporal.Namespace))
	}
	orderService := ordersobs.New(
		ordersapp.NewService(orderRepo, cartService, catalogService,
			ordersapp.WithOrchestrator(orderWorkflows),
			ordersapp.WithLogger(logger),
		),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	paymentService := paymentsobs.New(
		paymentsapp.NewService(
			paymentsapp.Config{UPIID: cfg.UPI.ID, PayeeName: cfg.UPI.PayeeName, QRSize: cfg.UPI.QRSize},
			cartService,
			paymentsqrcode.NewEncoder(),
			buildImageSink(cfg, logger),
		),
		paymentsobs.WithLogger(logger),
		paymentsobs.WithTracer(instruments.Tracer("internal.payments.application")),
		paymentsobs.WithMeter(instruments.Meter("internal.payments.application")),
	)

	sessions := storefrontserver.NewSessions(userService, cartService,
		storefrontserver.WithSecureCookies(cfg.Sessions.CookieSecure),
		storefrontserver.WithCookieMaxAge(cfg.SessionTTL()),
		storefrontserver.WithSessionLogger(logger),
	)
	handlers := storefrontserver.ApiHandleFunctions{
		Sessions:   sessions,
		CatalogAPI: storefrontserver.NewCatalogAPI(catalogService),
		CartAPI:    storefrontserver.NewCartAPI(cartService),
		OrderAPI:   storefrontserver.NewOrderAPI(orderService),
		UserAPI:    storefrontserver.NewUserAPI(userService, sessions),
		PaymentAPI: storefrontserver.NewPaymentAPI(paymentService),
		PageAPI:    storefrontserver.NewPageAPI(),
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		otelgin.Middleware(serviceName),
		storefrontserver.RequestLogger(logger),
		storefrontserver.Metrics(),
	)
	router.GET("/metrics", storefrontserver.MetricsHandler())
	if cfg.StaticDir != "" {
		router.Static("/static", cfg.StaticDir)
	}
	router = storefrontserver.NewRouterWithGinEngine(router, handlers)

	return &App{Router: router, Users: userService}, cleanup, nil
}

func connectRedis(ctx context.Context, cfg Config, logger *slog.Logger) *goredis.Client {
	if cfg.Redis.Addr == "" {
		logger.Warn("REDIS_ADDR not set, keeping carts in memory")
		return nil
	}
	client, err := platformredis.Connect(ctx, platformredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Warn("failed to connect to redis, keeping carts in memory", slog.String("error", err.Error()))
		return nil
	}
	logger.Info("redis connection established", slog.String("addr", cfg.Redis.Addr))
	return client
}

func buildCatalogRepository(db *gorm.DB) catalogports.Repository {
	if db == nil {
		return catalogmemory.NewRepository()
	}
	return catalogpostgres.NewRepository(db)
}

func buildOrderRepository(db *gorm.DB) ordersports.Repository {
	if db == nil {
		return ordersmemory.NewRepository()
	}
	return orderspostgres.NewRepository(db)
}

func buildUserRepository(db *gorm.DB) userports.Repository {
	if db == nil {
		return usermemory.NewRepository()
	}
	return userpostgres.NewRepository(db)
}

func buildCartStore(cfg Config, redisClient *goredis.Client) cartports.SessionStore {
	if redisClient == nil {
		return cartmemory.NewSessionStore()
	}
	return cartredis.NewSessionStore(redisClient, cartredis.WithTTL(cfg.CartTTL()))
}

// buildLoginSessionStore prefers redis, then postgres, then memory.
func buildLoginSessionStore(db *gorm.DB, redisClient *goredis.Client) userports.SessionStore {
	switch {
	case redisClient != nil:
		return userredis.NewSessionStore(redisClient)
	case db != nil:
		return userpostgres.NewSessionStore(db)
	default:
		return usermemory.NewSessionStore()
	}
}

func buildImageSink(cfg Config, logger *slog.Logger) paymentsports.ImageSink {
	if cfg.StaticDir != "" {
		sink, err := paymentsfilesystem.NewSink(filepath.Join(cfg.StaticDir, "qr"), "/static/qr")
		if err == nil {
			return sink
		}
		logger.Warn("static dir not writable, serving QR codes inline", slog.String("error", err.Error()))
	}
	return paymentsinline.NewSink(inlineQRPath)
}

func purgeSessionsEvery(ctx context.Context, interval time.Duration, users userports.Service, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := users.PurgeExpired(ctx)
			if err != nil {
				logger.Warn("session purge failed", slog.String("error", err.Error()))
				continue
			}
			logger.Info("session purge completed", slog.Int64("removed", removed))
		}
	}
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.Temporal.Disabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.Temporal.Address,
		Namespace: cfg.Temporal.Namespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
