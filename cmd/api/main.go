package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/seedkitapp/seedkit-backend/api"
	"github.com/seedkitapp/seedkit-backend/api/routes"
	"github.com/seedkitapp/seedkit-backend/internal/collections"
	"github.com/seedkitapp/seedkit-backend/internal/cron"
	"github.com/seedkitapp/seedkit-backend/internal/document"
	"github.com/seedkitapp/seedkit-backend/internal/quota"
	"github.com/seedkitapp/seedkit-backend/internal/session"
	"github.com/seedkitapp/seedkit-backend/pkg/config"
	"github.com/seedkitapp/seedkit-backend/pkg/db"
	"github.com/seedkitapp/seedkit-backend/pkg/enums"
	"github.com/seedkitapp/seedkit-backend/pkg/kv"
	"github.com/seedkitapp/seedkit-backend/pkg/logger"
	"github.com/seedkitapp/seedkit-backend/pkg/metrics"
	"github.com/seedkitapp/seedkit-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "seedkit"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seedkit",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	substrate, err := buildSubstrate(context.Background(), cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap substrate", err)
		os.Exit(1)
	}
	defer func() {
		if err := substrate.Close(); err != nil {
			logg.Error(context.Background(), "error closing substrate", err)
		}
	}()

	registry := prometheus.NewRegistry()
	storageMetrics := metrics.NewStorageMetrics(registry)
	cronMetrics := metrics.NewCronJobMetrics(registry)

	store, err := document.NewStore(document.StoreParams{
		Substrate: substrate,
		Key:       cfg.Store.DocumentKey,
		AdminCode: cfg.Admin.AccessCode,
		Logger:    logg,
		Metrics:   storageMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create document store", err)
		os.Exit(1)
	}
	if err := store.Load(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to load document", err)
		os.Exit(1)
	}

	estimator, err := quota.NewEstimator(substrate, cfg.Storage)
	if err != nil {
		logg.Error(context.Background(), "failed to create storage estimator", err)
		os.Exit(1)
	}

	collectionsService, err := collections.NewService(collections.ServiceParams{
		Store:     store,
		Estimator: estimator,
		Media:     cfg.Media,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create collections service", err)
		os.Exit(1)
	}

	sessions, err := session.NewManager(session.ManagerParams{
		Store:   store,
		Catalog: collectionsService,
		TTL:     cfg.Session.TTL,
		Logger:  logg,
		Metrics: storageMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	watchdog, err := cron.NewStorageWatchdogJob(cron.StorageWatchdogParams{
		Logger:    logg,
		Estimator: estimator,
		Store:     store,
		Metrics:   storageMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create storage watchdog", err)
		os.Exit(1)
	}
	sessionCleanup, err := cron.NewSessionCleanupJob(cron.SessionCleanupParams{
		Logger:   logg,
		Sessions: sessions,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create session cleanup job", err)
		os.Exit(1)
	}
	cronService, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(watchdog, sessionCleanup),
		Lock:     cron.NewLocalLock(),
		Metrics:  cronMetrics,
		Interval: cfg.Cron.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(
		cfg,
		logg,
		substrate,
		collectionsService,
		sessions,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	startCtx := logg.WithFields(ctx, map[string]any{
		"env":    cfg.App.Env,
		"addr":   addr,
		"driver": cfg.Store.Driver,
	})
	logg.Info(startCtx, "starting seedkit server")

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return api.Serve(groupCtx, addr, router, logg)
	})
	group.Go(func() error {
		return cronService.Run(groupCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(startCtx, "server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(startCtx, "shutdown complete")
}

// buildSubstrate picks the key-value backend from config. Closing the
// returned substrate closes the underlying client.
func buildSubstrate(ctx context.Context, cfg *config.Config, logg *logger.Logger) (kv.Substrate, error) {
	driver, err := cfg.Store.DriverEnum()
	if err != nil {
		return nil, err
	}

	switch driver {
	case enums.StoreDriverMemory:
		return kv.NewMemory(cfg.Store.KeyPrefix), nil
	case enums.StoreDriverSQLite, enums.StoreDriverPostgres:
		client, err := db.New(ctx, cfg.Store, cfg.DB, logg)
		if err != nil {
			return nil, err
		}
		return kv.NewSQL(client, cfg.Store.KeyPrefix)
	case enums.StoreDriverRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, err
		}
		return kv.NewRedis(client, cfg.Store.KeyPrefix)
	default:
		return nil, fmt.Errorf("unsupported store driver %s", driver)
	}
}
