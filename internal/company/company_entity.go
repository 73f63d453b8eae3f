package company

type Company struct {
	ID             int64  `gorm:"primaryKey"`
	Name           string `gorm:"type:varchar(150);not null;index"`
	OrganisationID int64  `gorm:"not null;index"`
}

func (Company) TableName() string {
	return "companies"
}
