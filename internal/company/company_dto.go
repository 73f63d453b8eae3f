package company

type ListCompaniesRequest struct {
	OrganisationID *int64 `form:"organisation_id" binding:"omitempty,gt=0"`
}

type CompanyResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	OrganisationID int64  `json:"organisation_id"`
}

func mapToResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:             c.ID,
		Name:           c.Name,
		OrganisationID: c.OrganisationID,
	}
}

func mapToListResponse(companies []Company) []CompanyResponse {
	out := make([]CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, mapToResponse(c))
	}
	return out
}
