package employee

import "github.com/unibna/employee-search/internal/shared/response"

// ListEmployeesRequest binds the query string of GET /employees. Repeated
// parameters use the bracket suffix (statuses[]=ACTIVE&statuses[]=INACTIVE).
type ListEmployeesRequest struct {
	Page           int      `form:"page,default=1" binding:"min=1"`
	PageSize       int      `form:"page_size,default=10" binding:"min=1,max=100"`
	Statuses       []Status `form:"statuses[]" binding:"omitempty,dive,oneof=ACTIVE INACTIVE TERMINATED"`
	CompanyIDs     []int64  `form:"company_ids[]" binding:"omitempty,dive,gt=0"`
	DepartmentIDs  []int64  `form:"department_ids[]" binding:"omitempty,dive,gt=0"`
	Positions      []string `form:"positions[]"`
	Locations      []string `form:"locations[]"`
	Search         string   `form:"search"`
	OrganisationID *int64   `form:"organisation_id" binding:"omitempty,gt=0"`
}

func (r ListEmployeesRequest) ToFilter() Filter {
	return Filter{
		Statuses:       r.Statuses,
		CompanyIDs:     r.CompanyIDs,
		DepartmentIDs:  r.DepartmentIDs,
		Positions:      r.Positions,
		Locations:      r.Locations,
		Search:         r.Search,
		OrganisationID: r.OrganisationID,
		Page:           r.Page,
		PageSize:       r.PageSize,
	}.Normalize()
}

// EmployeeResponse is the public shape of one listed employee. Optional
// attributes serialize as null, never omitted.
type EmployeeResponse struct {
	ID             int64   `json:"id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	PhoneNumber    *string `json:"phone_number"`
	Status         Status  `json:"status"`
	CompanyName    *string `json:"company_name"`
	DepartmentName *string `json:"department_name"`
	Position       *string `json:"position"`
	Location       *string `json:"location"`
}

type EmployeeListResponse = response.Page[EmployeeResponse]

func mapToResponse(v EmployeeView) EmployeeResponse {
	return EmployeeResponse{
		ID:             v.ID,
		FirstName:      v.FirstName,
		LastName:       v.LastName,
		Email:          v.Email,
		PhoneNumber:    v.PhoneNumber,
		Status:         v.Status,
		CompanyName:    v.CompanyName,
		DepartmentName: v.DepartmentName,
		Position:       v.Position,
		Location:       v.Location,
	}
}

type OptionsRequest struct {
	OrganisationID *int64 `form:"organisation_id" binding:"omitempty,gt=0"`
}

// OptionsResponse lists the values accepted by the listing filters.
type OptionsResponse struct {
	Statuses  []Status `json:"statuses"`
	Positions []string `json:"positions"`
	Locations []string `json:"locations"`
}
