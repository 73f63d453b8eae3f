package app

import (
	"context"
	"errors"

	"github.com/unibna/employee-search/internal/bootstrap"
	"github.com/unibna/employee-search/internal/config"
	"github.com/unibna/employee-search/internal/database"
	"github.com/unibna/employee-search/internal/metrics"
	"github.com/unibna/employee-search/internal/ratelimit"
	"github.com/unibna/employee-search/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App owns the long lived dependencies built at startup.
type App struct {
	Audit bootstrap.AuditLogger

	cancel  context.CancelFunc
	closers []func() error
}

// Close stops background work and releases connections, newest first.
func (a *App) Close() error {
	if a.cancel != nil {
		a.cancel()
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func BuildApp(cfg *config.Config, router *gin.Engine) (*App, error) {
	log := zap.L().Named("app")
	a := &App{}

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, sqlDB.Close)
	log.Info("Database connection established")

	if cfg.DB.AutoMigrate {
		if err := database.AutoMigrate(gormDB); err != nil {
			_ = a.Close()
			return nil, err
		}
		log.Info("Database schema migrated")
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		// statistics are best effort; the API keeps serving without Redis
		rdb, err = connection.ConnectRedisWithRetry(cfg.Redis, 1)
		if err != nil {
			log.Warn("Redis unavailable, rate limit statistics disabled", zap.Error(err))
			rdb = nil
		} else {
			a.closers = append(a.closers, rdb.Close)
			log.Info("Redis connection established")
		}
	}

	if cfg.Audit.KafkaBroker != "" {
		writer := connection.NewKafkaWriter(cfg.Audit.KafkaBroker)
		a.closers = append(a.closers, writer.Close)
		a.Audit = bootstrap.NewKafkaAuditLogger(writer, cfg.Audit.Topic, cfg.App.Name)
		log.Info("Kafka audit logger enabled", zap.String("topic", cfg.Audit.Topic))
	} else {
		a.Audit = bootstrap.NewStdoutAuditLogger()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	mc := metrics.New(reg)

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	limiter := ratelimit.NewSlidingWindow()
	limiter.StartJanitor(ctx, cfg.RateLimit.SweepEvery, cfg.RateLimit.Window, func(removed, tracked int) {
		mc.SetTrackedKeys(tracked)
		if removed > 0 {
			log.Debug("rate limit keys swept", zap.Int("removed", removed), zap.Int("tracked", tracked))
		}
	})

	// Register Modules & Routes
	registerModules(router, modules{
		cfg:     cfg,
		db:      gormDB,
		rdb:     rdb,
		limiter: limiter,
		audit:   a.Audit,
		metrics: mc,
	})

	return a, nil
}
