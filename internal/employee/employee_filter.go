package employee

import (
	"strings"

	"github.com/unibna/employee-search/internal/tenant"

	"gorm.io/gorm"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Filter is the canonical, already validated input of the query engine. Empty
// slices place no constraint on their field.
type Filter struct {
	Statuses       []Status
	CompanyIDs     []int64
	DepartmentIDs  []int64
	Positions      []string
	Locations      []string
	Search         string
	OrganisationID *int64
	Page           int
	PageSize       int
}

func (f Filter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// Scopes returns one gorm scope per active predicate. The same slice is applied
// to the count and the page query so both always filter identically.
func (f Filter) Scopes() []func(*gorm.DB) *gorm.DB {
	var scopes []func(*gorm.DB) *gorm.DB

	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		scopes = append(scopes, whereIn("employees.status", statuses))
	}
	if len(f.CompanyIDs) > 0 {
		scopes = append(scopes, whereIn("employees.company_id", f.CompanyIDs))
	}
	if len(f.DepartmentIDs) > 0 {
		scopes = append(scopes, whereIn("employees.department_id", f.DepartmentIDs))
	}
	if len(f.Positions) > 0 {
		scopes = append(scopes, whereIn("employees.position", f.Positions))
	}
	if len(f.Locations) > 0 {
		scopes = append(scopes, whereIn("employees.location", f.Locations))
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		scopes = append(scopes, searchScope(search))
	}
	if f.OrganisationID != nil {
		scopes = append(scopes, tenant.Scope("employees", *f.OrganisationID))
	}

	return scopes
}

func whereIn[T any](column string, values []T) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" IN ?", values)
	}
}

func searchScope(search string) func(*gorm.DB) *gorm.DB {
	pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"(LOWER(employees.first_name) LIKE ? ESCAPE '\\' OR "+
				"LOWER(employees.last_name) LIKE ? ESCAPE '\\' OR "+
				"LOWER(employees.email) LIKE ? ESCAPE '\\')",
			pattern, pattern, pattern,
		)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in user input match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Normalize fills pagination defaults, trims the search term and drops blank
// or repeated values from the multi-value predicates.
func (f Filter) Normalize() Filter {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	f.Search = strings.TrimSpace(f.Search)
	f.Statuses = dedupe(f.Statuses)
	f.CompanyIDs = dedupe(f.CompanyIDs)
	f.DepartmentIDs = dedupe(f.DepartmentIDs)
	f.Positions = dedupe(trimAll(f.Positions))
	f.Locations = dedupe(trimAll(f.Locations))
	return f
}

func trimAll(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func dedupe[T comparable](values []T) []T {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[T]struct{}, len(values))
	out := make([]T, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
