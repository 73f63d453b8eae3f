package department

import (
	"context"

	"github.com/unibna/employee-search/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	FindAll(ctx context.Context, filter ListFilter) ([]Department, error)
	FindByID(ctx context.Context, id int64) (*Department, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Department, error) {
	depts := []Department{}
	q := r.db.WithContext(ctx)
	if len(filter.CompanyIDs) > 0 {
		q = q.Where("departments.company_id IN ?", filter.CompanyIDs)
	}
	if filter.OrganisationID != nil {
		q = q.Scopes(tenant.Scope("departments", *filter.OrganisationID))
	}
	err := q.Order("departments.name ASC, departments.id ASC").Find(&depts).Error
	return depts, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Department, error) {
	var dept Department
	err := r.db.WithContext(ctx).Where("departments.id = ?", id).First(&dept).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}
