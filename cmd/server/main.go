package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/crm/api/handler"
	"github.com/fastygo/crm/internal/config"
	"github.com/fastygo/crm/internal/infrastructure/joblog"
	"github.com/fastygo/crm/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/crm/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/crm/internal/infrastructure/redis"
	"github.com/fastygo/crm/internal/jobs"
	"github.com/fastygo/crm/internal/middleware"
	"github.com/fastygo/crm/internal/router"
	"github.com/fastygo/crm/internal/services/lifecycle"
	"github.com/fastygo/crm/pkg/httpcontext"
	"github.com/fastygo/crm/pkg/logger"
	"github.com/fastygo/crm/repository/postgres"
	redisRepo "github.com/fastygo/crm/repository/redis"
	customerUC "github.com/fastygo/crm/usecase/customer"
	orderUC "github.com/fastygo/crm/usecase/order"
	productUC "github.com/fastygo/crm/usecase/product"
	reportUC "github.com/fastygo/crm/usecase/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis, zapLogger)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	jobLogStore, err := joblog.Open(cfg.JobLog.Path)
	if err != nil {
		zapLogger.Fatal("failed to open job log store", zap.Error(err))
	}
	manager.Register("joblog", func(ctx context.Context) error {
		return jobLogStore.Close()
	})

	mon := monitor.New(pool, redisClient, jobLogStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	countCache := redisRepo.NewCountCache(redisClient, cfg.Cache.CountTTL)

	customerUseCase := customerUC.New(customerRepo, countCache, zapLogger)
	productUseCase := productUC.New(productRepo, zapLogger)
	orderUseCase := orderUC.New(orderRepo, customerRepo, productRepo, countCache, zapLogger)
	reportUseCase := reportUC.New(customerRepo, orderRepo, countCache, zapLogger)

	maintenance := jobs.New(productUseCase, orderUseCase, reportUseCase, jobLogStore, zapLogger, jobs.Config{
		Timeout:    cfg.Jobs.Timeout,
		MaxRetries: cfg.Jobs.MaxRetries,
		Retention:  time.Duration(cfg.JobLog.RetentionHours) * time.Hour,
	})
	scheduler, err := jobs.NewScheduler(maintenance, jobs.Schedules{
		Heartbeat:     cfg.Jobs.HeartbeatSpec,
		LowStockSweep: cfg.Jobs.LowStockSweepSpec,
		ReminderScan:  cfg.Jobs.ReminderScanSpec,
		NightlyReport: cfg.Jobs.NightlyReportSpec,
		LogTrim:       cfg.Jobs.LogTrimSpec,
	}, zapLogger)
	if err != nil {
		zapLogger.Fatal("invalid job schedule", zap.Error(err))
	}
	scheduler.Start()
	manager.Register("job_scheduler", func(ctx context.Context) error {
		scheduler.Stop(ctx)
		return nil
	})

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Customer: apiHandler.NewCustomerHandler(customerUseCase, ctxAdapter, zapLogger),
		Product:  apiHandler.NewProductHandler(productUseCase, ctxAdapter, zapLogger),
		Order:    apiHandler.NewOrderHandler(orderUseCase, ctxAdapter, zapLogger),
		Report:   apiHandler.NewReportHandler(reportUseCase, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
		JobLog:   apiHandler.NewJobLogHandler(jobLogStore, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)
	requestLogger := middleware.RequestLogger(zapLogger)

	server := &fasthttp.Server{
		Handler:      requestLogger(r.Handler),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
