package company_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/unibna/employee-search/internal/company"
	companyerrors "github.com/unibna/employee-search/internal/company/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeCompanyService struct {
	GetAllFn  func(ctx context.Context, organisationID *int64) ([]company.CompanyResponse, error)
	GetByIDFn func(ctx context.Context, id int64) (company.CompanyResponse, error)
}

func (f *fakeCompanyService) GetAll(ctx context.Context, organisationID *int64) ([]company.CompanyResponse, error) {
	return f.GetAllFn(ctx, organisationID)
}

func (f *fakeCompanyService) GetByID(ctx context.Context, id int64) (company.CompanyResponse, error) {
	return f.GetByIDFn(ctx, id)
}

func setupRouter(svc company.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	company.RegisterRoutes(r.Group("/api/v1"), company.NewHandler(svc))
	return r
}

func TestCompanyHandler(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		svc := &fakeCompanyService{
			GetAllFn: func(ctx context.Context, organisationID *int64) ([]company.CompanyResponse, error) {
				assert.Equal(t, int64(4), *organisationID)
				return []company.CompanyResponse{{ID: 1, Name: "Acme", OrganisationID: 4}}, nil
			},
		}

		w := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/companies?organisation_id=4", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true,"data":[{"id":1,"name":"Acme","organisation_id":4}]}`, w.Body.String())
	})

	t.Run("invalid organisation id", func(t *testing.T) {
		w := httptest.NewRecorder()
		setupRouter(&fakeCompanyService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/companies?organisation_id=-2", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("get by id not found", func(t *testing.T) {
		svc := &fakeCompanyService{
			GetByIDFn: func(ctx context.Context, id int64) (company.CompanyResponse, error) {
				return company.CompanyResponse{}, companyerrors.ErrCompanyNotFound
			},
		}

		w := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/companies/9", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("get by id malformed", func(t *testing.T) {
		w := httptest.NewRecorder()
		setupRouter(&fakeCompanyService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/companies/abc", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
