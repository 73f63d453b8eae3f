package employee

type Status string

const (
	StatusActive     Status = "ACTIVE"
	StatusInactive   Status = "INACTIVE"
	StatusTerminated Status = "TERMINATED"
)

// AllStatuses returns the accepted statuses in display order.
func AllStatuses() []Status {
	return []Status{StatusActive, StatusInactive, StatusTerminated}
}

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusTerminated:
		return true
	}
	return false
}

type Employee struct {
	ID             int64   `gorm:"primaryKey"`
	FirstName      string  `gorm:"type:varchar(100);not null;index"`
	LastName       string  `gorm:"type:varchar(100);not null;index"`
	Email          string  `gorm:"type:varchar(255);not null;uniqueIndex"`
	PhoneNumber    *string `gorm:"type:varchar(50)"`
	Status         Status  `gorm:"type:varchar(20);not null;index"`
	CompanyID      int64   `gorm:"not null;index"`
	DepartmentID   *int64  `gorm:"index"`
	OrganisationID int64   `gorm:"not null;index"`
	Position       *string `gorm:"type:varchar(150);index"`
	Location       *string `gorm:"type:varchar(150);index"`
}

func (Employee) TableName() string {
	return "employees"
}

// EmployeeView is one row of the page query: the employee joined with the
// names of its company and department.
type EmployeeView struct {
	ID             int64
	FirstName      string
	LastName       string
	Email          string
	PhoneNumber    *string
	Status         Status
	CompanyName    *string
	DepartmentName *string
	Position       *string
	Location       *string
}
