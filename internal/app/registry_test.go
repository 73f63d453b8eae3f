package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/unibna/employee-search/internal/bootstrap"
	"github.com/unibna/employee-search/internal/config"
	"github.com/unibna/employee-search/internal/metrics"
	"github.com/unibna/employee-search/internal/ratelimit"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type recordingAudit struct {
	mu      sync.Mutex
	actions []string
}

func (r *recordingAudit) Log(ctx context.Context, entry bootstrap.AuditLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, entry.Action)
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "employee-search", Port: "0", APIPrefix: "/api/v1"},
		DB:  config.DBConfig{QueryTimeout: time.Second},
		RateLimit: config.RateLimitConfig{
			Requests: 2,
			Window:   time.Minute,
		},
	}
}

func setupRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, *recordingAudit) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	mock.MatchExpectationsInOrder(false)

	mock.ExpectPing()
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	audit := &recordingAudit{}
	r := gin.New()
	registerModules(r, modules{
		cfg:     testConfig(),
		db:      gormDB,
		limiter: ratelimit.NewSlidingWindow(),
		audit:   audit,
		metrics: metrics.New(prometheus.NewRegistry()),
	})
	return r, mock, audit
}

func TestRegisterModules_Employees(t *testing.T) {
	r, mock, audit := setupRouter(t)

	for i := 0; i < 2; i++ {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "employees"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`LEFT JOIN companies`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
	}

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{"page":1,"page_size":10,"total":0,"total_pages":0,"data":[]}`, w.Body.String())
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, []string{bootstrap.AuditRateLimitExceeded}, audit.actions)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterModules_ValidationBeforeStore(t *testing.T) {
	r, mock, _ := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/employees?page_size=101", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterModules_Infrastructure(t *testing.T) {
	r, mock, _ := setupRouter(t)
	mock.ExpectPing()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "employee_search_http_requests_total")
}

func TestRegisterModules_LookupsShareRateLimit(t *testing.T) {
	r, mock, _ := setupRouter(t)

	mock.ExpectQuery(`FROM "companies"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "organisation_id"}).AddRow(1, "Acme", 1))
	mock.ExpectQuery(`SELECT DISTINCT employees\.position`).
		WillReturnRows(sqlmock.NewRows([]string{"position"}).AddRow("Engineer"))
	mock.ExpectQuery(`SELECT DISTINCT employees\.location`).
		WillReturnRows(sqlmock.NewRows([]string{"location"}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/companies", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/employees/options", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"positions":["Engineer"]`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/departments", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewStatsStore_UsesRateLimitConfig(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := newStatsStore(rdb, config.RateLimitConfig{
		StatsPrefix:    "rl",
		StatsTTL:       time.Hour,
		StatsBucket:    "none",
		StatsTrackKeys: true,
	})

	mock.ExpectHIncrBy("rl:total", "denied", 1).SetVal(1)
	mock.ExpectHIncrBy("rl:key:10.0.0.9", "denied", 1).SetVal(1)
	mock.ExpectExpire("rl:key:10.0.0.9", time.Hour).SetVal(true)

	err := store.Record(context.Background(), ratelimit.StatsEvent{Key: "10.0.0.9"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
