package companyerrors

import (
	"net/http"

	"github.com/unibna/employee-search/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeValidation,
		"Invalid company ID",
		http.StatusUnprocessableEntity,
	)
)
