package company

import (
	"context"

	"github.com/unibna/employee-search/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	FindAll(ctx context.Context, organisationID *int64) ([]Company, error)
	FindByID(ctx context.Context, id int64) (*Company, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAll(ctx context.Context, organisationID *int64) ([]Company, error) {
	companies := []Company{}
	q := r.db.WithContext(ctx)
	if organisationID != nil {
		q = q.Scopes(tenant.Scope("companies", *organisationID))
	}
	err := q.Order("companies.name ASC, companies.id ASC").Find(&companies).Error
	return companies, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Company, error) {
	var c Company
	err := r.db.WithContext(ctx).Where("companies.id = ?", id).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}
