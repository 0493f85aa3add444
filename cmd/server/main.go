package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appbilling "github.com/propledger/backend/internal/application/billing"
	appledger "github.com/propledger/backend/internal/application/ledger"
	"github.com/propledger/backend/internal/application/report"
	"github.com/propledger/backend/internal/domain/sequence"
	"github.com/propledger/backend/internal/domain/shared"
	"github.com/propledger/backend/internal/infrastructure/config"
	"github.com/propledger/backend/internal/infrastructure/logger"
	"github.com/propledger/backend/internal/infrastructure/persistence"
	"github.com/propledger/backend/internal/interfaces/http/handler"
	"github.com/propledger/backend/internal/interfaces/http/middleware"
	"github.com/propledger/backend/internal/interfaces/http/router"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: time.RFC3339,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting PropLedger backend",
		zap.String("version", version),
		zap.String("env", cfg.App.Env),
	)

	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("Failed to close database", zap.Error(closeErr))
		}
	}()

	// Repositories
	docRepo := persistence.NewGormDocumentRepository(db.DB)
	txRepo := persistence.NewGormTransactionRepository(db.DB)
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	contractRepo := persistence.NewGormContractRepository(db.DB)
	rentalRepo := persistence.NewGormRentalAgreementRepository(db.DB)
	projectAgreementRepo := persistence.NewGormProjectAgreementRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	buildingRepo := persistence.NewGormBuildingRepository(db.DB)
	staffRepo := persistence.NewGormStaffRepository(db.DB)
	seriesRepo := persistence.NewGormSeriesRepository(db.DB)

	if err := seedSeries(seriesRepo, &cfg.Billing); err != nil {
		log.Fatal("Failed to seed number series", zap.Error(err))
	}

	// Services
	numberingService := appbilling.NewNumberingService(seriesRepo, docRepo)
	documentService := appbilling.NewDocumentService(
		docRepo, contactRepo, propertyRepo, contractRepo,
		rentalRepo, projectAgreementRepo, categoryRepo, numberingService,
	)
	paymentService := appbilling.NewPaymentService(docRepo, txRepo)
	bulkPaymentService := appbilling.NewBulkPaymentService(
		docRepo, txRepo, accountRepo, rentalRepo, categoryRepo,
		appbilling.WithBulkLogger(log),
	)
	transactionService := appledger.NewTransactionService(txRepo, docRepo, accountRepo)
	treeService := report.NewTreeService(docRepo, projectRepo, buildingRepo, staffRepo)

	// Handlers
	documentHandler := handler.NewDocumentHandler(documentService, numberingService)
	paymentHandler := handler.NewPaymentHandler(paymentService, bulkPaymentService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	reportHandler := handler.NewReportHandler(treeService)
	systemHandler := handler.NewSystemHandler(version)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.Secure(),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
			AllowMethods:     cfg.HTTP.CORSAllowMethods,
			AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
			ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	engine.GET("/health", healthHandler(db, log))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(documentHandler.Routes())
	r.Register(paymentHandler.Routes())
	r.Register(transactionHandler.Routes())
	r.Register(reportHandler.Routes())
	r.Register(systemHandler.Routes())
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("Shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}

// seedSeries makes sure the three document number series exist with the
// configured prefixes. Existing series are left untouched so counters and
// prefixes survive restarts.
func seedSeries(repo sequence.SeriesRepository, cfg *config.BillingConfig) error {
	defs := []struct {
		key    sequence.SeriesKey
		prefix string
	}{
		{sequence.SeriesBill, cfg.BillPrefix},
		{sequence.SeriesRentalInvoice, cfg.RentalInvoicePrefix},
		{sequence.SeriesProjectInvoice, cfg.ProjectInvoicePrefix},
	}

	ctx := context.Background()
	for _, def := range defs {
		_, err := repo.FindByKey(ctx, def.key)
		if err == nil {
			continue
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		series, newErr := sequence.NewSeries(def.key, def.prefix, cfg.NumberPadWidth)
		if newErr != nil {
			return newErr
		}
		if saveErr := repo.Save(ctx, series); saveErr != nil {
			return saveErr
		}
	}
	return nil
}

// healthHandler reports service and database health for probes.
func healthHandler(db *persistence.Database, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			log.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"database": "ok",
		})
	}
}
