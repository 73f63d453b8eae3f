package app

import (
	"context"

	"github.com/unibna/employee-search/internal/bootstrap"
	"github.com/unibna/employee-search/internal/company"
	"github.com/unibna/employee-search/internal/config"
	"github.com/unibna/employee-search/internal/department"
	"github.com/unibna/employee-search/internal/employee"
	"github.com/unibna/employee-search/internal/health"
	"github.com/unibna/employee-search/internal/metrics"
	"github.com/unibna/employee-search/internal/middleware"
	"github.com/unibna/employee-search/internal/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type modules struct {
	cfg     *config.Config
	db      *gorm.DB
	rdb     *redis.Client
	limiter *ratelimit.SlidingWindow
	audit   bootstrap.AuditLogger
	metrics *metrics.Collection
}

func registerModules(router *gin.Engine, m modules) {
	logger := zap.L()

	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		middleware.AccessLog(logger),
		m.metrics.Middleware(),
	)

	// --- Infrastructure endpoints ---
	checks := map[string]health.Pinger{}
	if sqlDB, err := m.db.DB(); err == nil {
		checks["postgres"] = sqlDB
	}
	if m.rdb != nil {
		rdb := m.rdb
		checks["redis"] = health.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}
	router.GET("/healthz", health.NewHandler(checks, 0).Check)
	router.GET("/metrics", m.metrics.Handler())

	// --- Rate limiting, one budget per client across the API ---
	rateLimitOpts := middleware.RateLimitOptions{
		Limit:   m.cfg.RateLimit.Requests,
		Window:  m.cfg.RateLimit.Window,
		Audit:   m.audit,
		Metrics: m.metrics,
	}
	if m.rdb != nil {
		rateLimitOpts.Stats = newStatsStore(m.rdb, m.cfg.RateLimit)
	}

	rateLimit := middleware.RateLimitByIP(m.limiter, rateLimitOpts)

	// --- Repositories ---
	employeeRepo := employee.NewRepository(m.db)
	companyRepo := company.NewRepository(m.db)
	departmentRepo := department.NewRepository(m.db)

	// --- Services ---
	employeeService := employee.NewService(employeeRepo, m.cfg.DB.QueryTimeout, m.metrics)
	companyService := company.NewService(companyRepo, m.cfg.DB.QueryTimeout)
	departmentService := department.NewService(departmentRepo, m.cfg.DB.QueryTimeout)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	companyHandler := company.NewHandler(companyService)
	departmentHandler := department.NewHandler(departmentService)

	// --- Routes Registration ---
	api := router.Group(m.cfg.App.APIPrefix)
	{
		employee.RegisterRoutes(api, employeeHandler, rateLimit)
		company.RegisterRoutes(api, companyHandler, rateLimit)
		department.RegisterRoutes(api, departmentHandler, rateLimit)
	}
}

func newStatsStore(rdb redis.Cmdable, cfg config.RateLimitConfig) *ratelimit.RedisStatsStore {
	return ratelimit.NewRedisStatsStore(rdb,
		ratelimit.WithStatsPrefix(cfg.StatsPrefix),
		ratelimit.WithStatsTTL(cfg.StatsTTL),
		ratelimit.WithStatsBucket(cfg.StatsBucket),
		ratelimit.WithStatsTrackKeys(cfg.StatsTrackKeys),
	)
}
