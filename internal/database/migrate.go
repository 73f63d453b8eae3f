package database

import (
	"fmt"

	"github.com/unibna/employee-search/internal/company"
	"github.com/unibna/employee-search/internal/department"
	"github.com/unibna/employee-search/internal/employee"
	"github.com/unibna/employee-search/internal/organisation"

	"gorm.io/gorm"
)

// Models lists every table owned by the service, parents first.
func Models() []any {
	return []any{
		&organisation.Organisation{},
		&organisation.Settings{},
		&company.Company{},
		&department.Department{},
		&employee.Employee{},
	}
}

// AutoMigrate creates or updates the schema. Intended for local development
// and integration tests; production schemas are managed out of band.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
