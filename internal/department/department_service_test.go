package department_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/unibna/employee-search/internal/department"
	departmenterrors "github.com/unibna/employee-search/internal/department/errors"
	"github.com/unibna/employee-search/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupTest(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	svc := department.NewService(department.NewRepository(db), time.Second)
	r := gin.New()
	department.RegisterRoutes(r.Group("/api/v1"), department.NewHandler(svc))
	return r, mock
}

var deptColumns = []string{"id", "name", "company_id", "organisation_id"}

func TestDepartment_List(t *testing.T) {
	t.Run("filters by company and organisation", func(t *testing.T) {
		r, mock := setupTest(t)

		mock.ExpectQuery(regexp.QuoteMeta(
			`SELECT * FROM "departments" WHERE departments.company_id IN ($1,$2) AND departments.organisation_id = $3 ORDER BY departments.name ASC, departments.id ASC`,
		)).
			WithArgs(int64(1), int64(2), int64(5)).
			WillReturnRows(sqlmock.NewRows(deptColumns).AddRow(10, "Engineering", 1, 5))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
			"/api/v1/departments?company_ids[]=1&company_ids[]=2&organisation_id=5", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t,
			`{"ok":true,"data":[{"id":10,"company_id":1,"name":"Engineering","organisation_id":5}]}`,
			w.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects non positive company id", func(t *testing.T) {
		r, mock := setupTest(t)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/departments?company_ids[]=0", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("store failure", func(t *testing.T) {
		r, mock := setupTest(t)

		mock.ExpectQuery(`FROM "departments"`).WillReturnError(errors.New("syntax error"))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/departments", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestDepartment_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		sqlDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer sqlDB.Close()
		db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
		require.NoError(t, err)

		mock.ExpectQuery(`FROM "departments" WHERE departments\.id = \$1`).
			WillReturnRows(sqlmock.NewRows(deptColumns))

		_, err = department.NewService(department.NewRepository(db), time.Second).GetByID(ctx, 4)
		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
		assert.Equal(t, http.StatusNotFound, apperror.ToHTTP(err).Status)
	})

	t.Run("stalled store is a 503", func(t *testing.T) {
		sqlDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer sqlDB.Close()
		db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
		require.NoError(t, err)

		mock.ExpectQuery(`FROM "departments"`).
			WillDelayFor(time.Second).
			WillReturnRows(sqlmock.NewRows(deptColumns).AddRow(4, "Sales", 1, 1))

		start := time.Now()
		_, err = department.NewService(department.NewRepository(db), 20*time.Millisecond).GetByID(ctx, 4)
		assert.Less(t, time.Since(start), 500*time.Millisecond)
		assert.ErrorIs(t, err, apperror.ErrServiceUnavailable)
		assert.Equal(t, http.StatusServiceUnavailable, apperror.ToHTTP(err).Status)
	})

	t.Run("malformed id", func(t *testing.T) {
		r, _ := setupTest(t)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/departments/x", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
