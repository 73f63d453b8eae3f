package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	DB        DBConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Audit     AuditConfig
	Log       LogConfig
}

type AppConfig struct {
	Name      string `mapstructure:"app_name"`
	Port      string `mapstructure:"app_port"`
	APIPrefix string `mapstructure:"api_prefix"`
}

type HTTPConfig struct {
	ReadTimeout     time.Duration `mapstructure:"http_read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"http_write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"http_idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"http_shutdown_timeout"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"db_dsn"`
	Host            string        `mapstructure:"db_host"`
	User            string        `mapstructure:"db_user"`
	Password        string        `mapstructure:"db_password"`
	Name            string        `mapstructure:"db_name"`
	Port            string        `mapstructure:"db_port"`
	SSLMode         string        `mapstructure:"db_sslmode"`
	MaxRetries      int           `mapstructure:"db_max_retries"`
	MaxOpenConns    int           `mapstructure:"db_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"db_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"db_conn_max_lifetime"`
	QueryTimeout    time.Duration `mapstructure:"db_query_timeout"`
	AutoMigrate     bool          `mapstructure:"db_auto_migrate"`
}

// ConnString returns DSN when set, otherwise a key/value DSN built from the parts.
func (c DBConfig) ConnString() string {
	if c.DSN != "" {
		return c.DSN
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

type RateLimitConfig struct {
	Requests    int           `mapstructure:"rate_limit_requests"`
	Window      time.Duration `mapstructure:"rate_limit_window"`
	SweepEvery  time.Duration `mapstructure:"rate_limit_sweep_every"`
	StatsPrefix string        `mapstructure:"rate_limit_stats_prefix"`
	StatsTTL    time.Duration `mapstructure:"rate_limit_stats_ttl"`
	// StatsBucket is "minute" for per minute counters or "none".
	StatsBucket    string `mapstructure:"rate_limit_stats_bucket"`
	StatsTrackKeys bool   `mapstructure:"rate_limit_stats_track_keys"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

type AuditConfig struct {
	KafkaBroker string `mapstructure:"kafka_broker"`
	Topic       string `mapstructure:"audit_topic"`
}

type LogConfig struct {
	Level  string `mapstructure:"log_level"`
	Format string `mapstructure:"log_format"`
}

var defaults = map[string]any{
	"app_name":                    "employee-search",
	"app_port":                    "3000",
	"api_prefix":                  "/api/v1",
	"http_read_timeout":           "5s",
	"http_write_timeout":          "10s",
	"http_idle_timeout":           "60s",
	"http_shutdown_timeout":       "10s",
	"db_dsn":                      "",
	"db_host":                     "localhost",
	"db_user":                     "postgres",
	"db_password":                 "",
	"db_name":                     "employee_search",
	"db_port":                     "5432",
	"db_sslmode":                  "disable",
	"db_max_retries":              5,
	"db_max_open_conns":           25,
	"db_max_idle_conns":           10,
	"db_conn_max_lifetime":        "1h",
	"db_query_timeout":            "5s",
	"db_auto_migrate":             false,
	"rate_limit_requests":         5,
	"rate_limit_window":           "30s",
	"rate_limit_sweep_every":      "1m",
	"rate_limit_stats_prefix":     "ratelimit:stats",
	"rate_limit_stats_ttl":        "24h",
	"rate_limit_stats_bucket":     "minute",
	"rate_limit_stats_track_keys": false,
	"redis_addr":                  "",
	"redis_password":              "",
	"redis_db":                    0,
	"kafka_broker":                "",
	"audit_topic":                 "employee-search.audit.v1",
	"log_level":                   "info",
	"log_format":                  "json",
}

// Load reads configuration from the environment on top of the defaults above.
// Call godotenv.Load before Load so .env values are visible.
func Load() (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	sections := []struct {
		name   string
		target any
	}{
		{"app", &cfg.App},
		{"http", &cfg.HTTP},
		{"db", &cfg.DB},
		{"rate limit", &cfg.RateLimit},
		{"redis", &cfg.Redis},
		{"audit", &cfg.Audit},
		{"log", &cfg.Log},
	}
	for _, s := range sections {
		if err := v.Unmarshal(s.target); err != nil {
			return Config{}, fmt.Errorf("decode %s config: %w", s.name, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.RateLimit.Requests <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_REQUESTS must be positive"))
	}
	if c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WINDOW must be positive"))
	}
	switch strings.ToLower(strings.TrimSpace(c.RateLimit.StatsBucket)) {
	case "minute", "none":
	default:
		errs = append(errs, fmt.Errorf("RATE_LIMIT_STATS_BUCKET must be minute or none, got %q", c.RateLimit.StatsBucket))
	}
	if c.DB.QueryTimeout <= 0 {
		errs = append(errs, errors.New("DB_QUERY_TIMEOUT must be positive"))
	}
	if c.DB.MaxRetries <= 0 {
		errs = append(errs, errors.New("DB_MAX_RETRIES must be positive"))
	}
	if c.App.Port == "" {
		errs = append(errs, errors.New("APP_PORT is required"))
	}
	return errors.Join(errs...)
}
