package organisation

import "gorm.io/datatypes"

// Organisation is the root tenant. Companies, departments, employees and
// settings all reference it.
type Organisation struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(150);not null;index"`
}

func (Organisation) TableName() string {
	return "organisations"
}

// Settings holds arbitrary JSON configuration for one organisation.
type Settings struct {
	ID             int64             `gorm:"primaryKey"`
	OrganisationID int64             `gorm:"not null;index"`
	Settings       datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"`
}

func (Settings) TableName() string {
	return "organisation_settings"
}
