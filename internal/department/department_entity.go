package department

// Department belongs to a company. OrganisationID duplicates the company's
// organisation for query convenience; the two are not cross-checked.
type Department struct {
	ID             int64  `gorm:"primaryKey"`
	Name           string `gorm:"type:varchar(150);not null;index"`
	CompanyID      int64  `gorm:"not null;index"`
	OrganisationID int64  `gorm:"not null;index"`
}

func (Department) TableName() string {
	return "departments"
}
