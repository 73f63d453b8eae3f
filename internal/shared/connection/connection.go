package connection

import (
	"context"
	"fmt"
	"time"

	"github.com/unibna/employee-search/internal/config"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var retryDelay = 5 * time.Second

func ConnectGORMWithRetry(cfg config.DBConfig) (*gorm.DB, error) {
	log := zap.L().Named("connection.postgres")
	maxRetries := max(cfg.MaxRetries, 1)

	var lastErr error

	for i := 1; i <= maxRetries; i++ {
		if i > 1 {
			time.Sleep(retryDelay)
		}

		db, err := gorm.Open(postgres.Open(cfg.ConnString()), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err != nil {
			lastErr = err
			log.Warn("GORM open failed", zap.Int("attempt", i), zap.Int("max_retries", maxRetries), zap.Error(err))
			continue
		}

		sqlDB, err := db.DB()
		if err != nil {
			lastErr = err
			log.Warn("get sql.DB failed", zap.Int("attempt", i), zap.Int("max_retries", maxRetries), zap.Error(err))
			continue
		}

		if err := sqlDB.Ping(); err != nil {
			lastErr = err
			log.Warn("DB ping failed", zap.Int("attempt", i), zap.Int("max_retries", maxRetries), zap.Error(err))
			_ = sqlDB.Close()
			continue
		}

		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

		log.Info("GORM connected to database",
			zap.String("host", cfg.Host),
			zap.String("database", cfg.Name),
			zap.Int("max_open_conns", cfg.MaxOpenConns),
		)
		return db, nil
	}

	return nil, fmt.Errorf("database connection failed after %d retries: %w", maxRetries, lastErr)
}

func ConnectRedisWithRetry(cfg config.RedisConfig, maxRetries int) (*redis.Client, error) {
	log := zap.L().Named("connection.redis")
	maxRetries = max(maxRetries, 1)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	var lastErr error
	for i := 1; i <= maxRetries; i++ {
		if i > 1 {
			time.Sleep(retryDelay)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		lastErr = rdb.Ping(ctx).Err()
		cancel()
		if lastErr == nil {
			log.Info("Connected to Redis", zap.String("addr", cfg.Addr))
			return rdb, nil
		}

		log.Warn("Redis ping failed", zap.Int("attempt", i), zap.Int("max_retries", maxRetries), zap.Error(lastErr))
	}

	_ = rdb.Close()
	return nil, fmt.Errorf("failed to connect redis after %d retries: %w", maxRetries, lastErr)
}

// NewKafkaWriter builds an async writer with no fixed topic; every message
// names its own. Async writes never block the caller, errors surface through
// the writer's Completion callback.
func NewKafkaWriter(broker string) *kafkago.Writer {
	log := zap.L().Named("connection.kafka")

	return &kafkago.Writer{
		Addr:                   kafkago.TCP(broker),
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		Async:                  true,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
		Completion: func(messages []kafkago.Message, err error) {
			if err != nil {
				log.Warn("kafka async write failed", zap.Int("messages", len(messages)), zap.Error(err))
			}
		},
	}
}
