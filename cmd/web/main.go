package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"couponweb/docs"
	"couponweb/internal/config"
	"couponweb/internal/database"
	"couponweb/internal/database/migration"
	handlers "couponweb/internal/http/handler"
	"couponweb/internal/http/middleware"
	"couponweb/internal/http/view"
	"couponweb/internal/logging"
	"couponweb/internal/otel"
	"couponweb/internal/repository/httpapi"
	"couponweb/internal/repository/postgres"
	"couponweb/internal/service"
	"couponweb/internal/storage"
)

// @title Coupon Manager API
// @version 1.0
// @description Session-gated JSON view of the coupons managed through the web front end.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := cfg.Location()
	logging.SetDefault(logging.New(os.Stdout, loc))
	log := logging.Default()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		fatal(log, "tracing_init_failed", err)
	}

	// Session store
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		fatal(log, "db_connect_failed", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		fatal(log, "db_migration_failed", err)
	}

	// Remote coupon service
	client := httpapi.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	couponRepo := httpapi.NewCouponHTTP(client)
	authRepo := httpapi.NewAuthHTTP(client)
	sessionRepo := postgres.NewSessionPostgres(db)

	svc := handlers.Services{
		Coupons:   service.NewCouponService(couponRepo, time.Now),
		Dashboard: service.NewDashboardService(couponRepo, time.Now),
		Auth:      service.NewAuthService(authRepo, sessionRepo, cfg.Session.TTL, time.Now),
	}

	// Exports are optional; without an endpoint the export button is hidden.
	if cfg.MinIO.Endpoint != "" {
		objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			fatal(log, "storage_init_failed", err)
		}
		svc.Export = service.NewExportService(svc.Coupons, objStore, time.Now)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		fatal(log, "metrics_init_failed", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		Views:        view.New(),
	})

	// Register global middleware
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger(loc))
	app.Use(metrics.Handler())
	app.Use(middleware.CSRF(cfg.Session))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	handlers.RegisterRoutes(app, db, svc, cfg.Session)

	go func() {
		<-ctx.Done()
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	addr := ":" + cfg.Port
	log.Log(logging.Fields{"event": "server_starting", "addr": addr, "export_enabled": svc.Export != nil})
	if err := app.Listen(addr); err != nil {
		fatal(log, "server_failed", err)
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		log.Error("tracing_shutdown_failed", err, nil)
	}
}

func fatal(log *logging.Logger, event string, err error) {
	log.Error(event, err, nil)
	os.Exit(1)
}
