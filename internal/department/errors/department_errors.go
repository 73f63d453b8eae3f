package departmenterrors

import (
	"net/http"

	"github.com/unibna/employee-search/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)

	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeValidation,
		"Invalid department ID",
		http.StatusUnprocessableEntity,
	)
)
