package department

type ListDepartmentsRequest struct {
	CompanyIDs     []int64 `form:"company_ids[]" binding:"omitempty,dive,gt=0"`
	OrganisationID *int64  `form:"organisation_id" binding:"omitempty,gt=0"`
}

// ListFilter narrows the department lookup. Empty CompanyIDs means all
// companies.
type ListFilter struct {
	CompanyIDs     []int64
	OrganisationID *int64
}

func (r ListDepartmentsRequest) ToFilter() ListFilter {
	return ListFilter{CompanyIDs: r.CompanyIDs, OrganisationID: r.OrganisationID}
}

type DepartmentResponse struct {
	ID             int64  `json:"id"`
	CompanyID      int64  `json:"company_id"`
	Name           string `json:"name"`
	OrganisationID int64  `json:"organisation_id"`
}

func mapToResponse(d Department) DepartmentResponse {
	return DepartmentResponse{
		ID:             d.ID,
		CompanyID:      d.CompanyID,
		Name:           d.Name,
		OrganisationID: d.OrganisationID,
	}
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	out := make([]DepartmentResponse, 0, len(depts))
	for _, d := range depts {
		out = append(out, mapToResponse(d))
	}
	return out
}
