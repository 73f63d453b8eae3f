package tenant

import "gorm.io/gorm"

// Scope restricts a query to one organisation. table qualifies the column so the
// scope stays unambiguous when the query joins other tenant-owned tables.
func Scope(table string, organisationID int64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".organisation_id = ?", organisationID)
	}
}
