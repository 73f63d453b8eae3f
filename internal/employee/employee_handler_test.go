package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/unibna/employee-search/internal/employee"
	employeeerrors "github.com/unibna/employee-search/internal/employee/errors"
	"github.com/unibna/employee-search/internal/shared/apperror"
	"github.com/unibna/employee-search/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeService struct {
	ListFn       func(ctx context.Context, filter employee.Filter) (employee.EmployeeListResponse, error)
	GetOptionsFn func(ctx context.Context, organisationID *int64) (employee.OptionsResponse, error)
}

func (f *fakeEmployeeService) List(ctx context.Context, filter employee.Filter) (employee.EmployeeListResponse, error) {
	return f.ListFn(ctx, filter)
}

func (f *fakeEmployeeService) GetOptions(ctx context.Context, organisationID *int64) (employee.OptionsResponse, error) {
	return f.GetOptionsFn(ctx, organisationID)
}

func setupRouter(svc employee.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	apperror.Init()

	r := gin.New()
	employee.RegisterRoutes(r.Group("/api/v1"), employee.NewHandler(svc))
	return r
}

type errorBody struct {
	Ok    bool `json:"ok"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestEmployeeHandler_List(t *testing.T) {
	t.Run("binds repeated parameters", func(t *testing.T) {
		var got employee.Filter
		svc := &fakeEmployeeService{
			ListFn: func(ctx context.Context, f employee.Filter) (employee.EmployeeListResponse, error) {
				got = f
				return response.NewPage([]employee.EmployeeResponse{
					{ID: 1, FirstName: "Ann", LastName: "Lee", Email: "ann@acme.test", Status: employee.StatusActive},
				}, 11, f.Page, f.PageSize), nil
			},
		}
		r := setupRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/employees?page=2&page_size=5"+
				"&statuses[]=ACTIVE&statuses[]=INACTIVE"+
				"&company_ids[]=1&company_ids[]=2&department_ids[]=7"+
				"&positions[]=Engineer&locations[]=Singapore&search=ann&organisation_id=3", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []employee.Status{employee.StatusActive, employee.StatusInactive}, got.Statuses)
		assert.Equal(t, []int64{1, 2}, got.CompanyIDs)
		assert.Equal(t, []int64{7}, got.DepartmentIDs)
		assert.Equal(t, []string{"Engineer"}, got.Positions)
		assert.Equal(t, []string{"Singapore"}, got.Locations)
		assert.Equal(t, "ann", got.Search)
		require.NotNil(t, got.OrganisationID)
		assert.Equal(t, int64(3), *got.OrganisationID)
		assert.Equal(t, 2, got.Page)
		assert.Equal(t, 5, got.PageSize)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, float64(2), body["page"])
		assert.Equal(t, float64(5), body["page_size"])
		assert.Equal(t, float64(11), body["total"])
		assert.Equal(t, float64(3), body["total_pages"])

		rows := body["data"].([]any)
		require.Len(t, rows, 1)
		row := rows[0].(map[string]any)
		assert.Equal(t, "Ann", row["first_name"])
		assert.Contains(t, row, "department_name")
		assert.Nil(t, row["department_name"])
	})

	t.Run("defaults pagination", func(t *testing.T) {
		var got employee.Filter
		svc := &fakeEmployeeService{
			ListFn: func(ctx context.Context, f employee.Filter) (employee.EmployeeListResponse, error) {
				got = f
				return response.NewPage[employee.EmployeeResponse](nil, 0, f.Page, f.PageSize), nil
			},
		}
		r := setupRouter(svc)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, got.Page)
		assert.Equal(t, 10, got.PageSize)
		assert.JSONEq(t, `{"page":1,"page_size":10,"total":0,"total_pages":0,"data":[]}`, w.Body.String())
	})

	t.Run("long free text values are passed through", func(t *testing.T) {
		longSearch := strings.Repeat("a", 201)
		longPosition := strings.Repeat("p", 151)
		var got employee.Filter
		svc := &fakeEmployeeService{
			ListFn: func(ctx context.Context, f employee.Filter) (employee.EmployeeListResponse, error) {
				got = f
				return response.NewPage[employee.EmployeeResponse](nil, 0, f.Page, f.PageSize), nil
			},
		}
		r := setupRouter(svc)

		q := url.Values{}
		q.Set("search", longSearch)
		q.Add("positions[]", longPosition)
		q.Add("locations[]", longPosition)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/employees?"+q.Encode(), nil))

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, longSearch, got.Search)
		assert.Equal(t, []string{longPosition}, got.Positions)
		assert.Equal(t, []string{longPosition}, got.Locations)
	})

	validationCases := []struct {
		name  string
		query string
	}{
		{"page zero", "page=0"},
		{"negative page", "page=-1"},
		{"page size over max", "page_size=101"},
		{"page size zero", "page_size=0"},
		{"unknown status", "statuses[]=RETIRED"},
		{"non numeric page", "page=abc"},
		{"non numeric company id", "company_ids[]=x"},
	}
	for _, tc := range validationCases {
		t.Run("422 "+tc.name, func(t *testing.T) {
			svc := &fakeEmployeeService{
				ListFn: func(ctx context.Context, f employee.Filter) (employee.EmployeeListResponse, error) {
					t.Fatal("service must not be called on invalid input")
					return employee.EmployeeListResponse{}, nil
				},
			}
			r := setupRouter(svc)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/employees?"+tc.query, nil))

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			var body errorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Ok)
			assert.Equal(t, apperror.CodeValidation, body.Error.Code)
		})
	}

	t.Run("page size error names the field", func(t *testing.T) {
		r := setupRouter(&fakeEmployeeService{})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/employees?page_size=500", nil))

		var body errorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Page Size is invalid", body.Error.Message)
	})

	t.Run("store unavailable", func(t *testing.T) {
		svc := &fakeEmployeeService{
			ListFn: func(ctx context.Context, f employee.Filter) (employee.EmployeeListResponse, error) {
				return employee.EmployeeListResponse{}, employeeerrors.ErrStoreUnavailable
			},
		}
		r := setupRouter(svc)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		var body errorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, apperror.CodeServiceUnavailable, body.Error.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		svc := &fakeEmployeeService{
			ListFn: func(ctx context.Context, f employee.Filter) (employee.EmployeeListResponse, error) {
				return employee.EmployeeListResponse{}, employeeerrors.ErrStoreFailure
			},
		}
		r := setupRouter(svc)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestEmployeeHandler_GetOptions(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotOrg *int64
		svc := &fakeEmployeeService{
			GetOptionsFn: func(ctx context.Context, organisationID *int64) (employee.OptionsResponse, error) {
				gotOrg = organisationID
				return employee.OptionsResponse{
					Statuses:  employee.AllStatuses(),
					Positions: []string{"Engineer"},
					Locations: []string{},
				}, nil
			},
		}
		r := setupRouter(svc)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/employees/options?organisation_id=4", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, gotOrg)
		assert.Equal(t, int64(4), *gotOrg)
		assert.JSONEq(t, `{
			"ok": true,
			"data": {
				"statuses": ["ACTIVE", "INACTIVE", "TERMINATED"],
				"positions": ["Engineer"],
				"locations": []
			}
		}`, w.Body.String())
	})

	t.Run("invalid organisation id", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetOptionsFn: func(ctx context.Context, organisationID *int64) (employee.OptionsResponse, error) {
				t.Fatal("service must not be called")
				return employee.OptionsResponse{}, nil
			},
		}
		r := setupRouter(svc)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/employees/options?organisation_id=0", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
