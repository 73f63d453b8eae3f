package employee

import (
	"context"

	"github.com/unibna/employee-search/internal/tenant"

	"gorm.io/gorm"
)

const pageColumns = `employees.id,
	employees.first_name,
	employees.last_name,
	employees.email,
	employees.phone_number,
	employees.status,
	companies.name AS company_name,
	departments.name AS department_name,
	employees.position,
	employees.location`

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	Count(ctx context.Context, filter Filter) (int64, error)
	FindPage(ctx context.Context, filter Filter) ([]EmployeeView, error)
	DistinctValues(ctx context.Context, column string, organisationID *int64) ([]string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Count counts matching employees. It never joins, so the total does not depend
// on whether a company or department row exists.
func (r *repository) Count(ctx context.Context, filter Filter) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(filter.Scopes()...).
		Count(&total).Error
	return total, err
}

// FindPage returns one page ordered by id. LEFT JOINs keep employees without a
// department in the page, with a null department name.
func (r *repository) FindPage(ctx context.Context, filter Filter) ([]EmployeeView, error) {
	rows := make([]EmployeeView, 0, filter.PageSize)
	err := r.db.WithContext(ctx).
		Table("employees").
		Select(pageColumns).
		Joins("LEFT JOIN companies ON companies.id = employees.company_id").
		Joins("LEFT JOIN departments ON departments.id = employees.department_id").
		Scopes(filter.Scopes()...).
		Order("employees.id ASC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Scan(&rows).Error
	return rows, err
}

// DistinctValues lists the non-null values of one free-text employee column,
// sorted. column must be a trusted identifier such as "position".
func (r *repository) DistinctValues(ctx context.Context, column string, organisationID *int64) ([]string, error) {
	qualified := "employees." + column
	values := []string{}
	q := r.db.WithContext(ctx).
		Model(&Employee{}).
		Distinct(qualified).
		Where(qualified + " IS NOT NULL AND " + qualified + " <> ''")
	if organisationID != nil {
		q = q.Scopes(tenant.Scope("employees", *organisationID))
	}
	err := q.Order(qualified+" ASC").Pluck(qualified, &values).Error
	return values, err
}
